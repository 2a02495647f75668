package gallery

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, mtime int64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	if mtime > 0 {
		ts := time.Unix(mtime, 0)
		require.NoError(t, os.Chtimes(path, ts, ts))
	}
}

func TestBuildManifest_MixedDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 100)
	writeFile(t, filepath.Join(root, "b.png"), 200)
	writeFile(t, filepath.Join(root, "notes.txt"), 300)
	require.NoError(t, os.Mkdir(filepath.Join(root, "trip"), 0o755))

	m, err := BuildManifest(root, "")
	require.NoError(t, err)

	require.Len(t, m.All, 2)
	assert.Equal(t, "a.jpg", m.All[0].Path)
	assert.Equal(t, float64(100), m.All[0].Time)
	assert.Equal(t, "b.png", m.All[1].Path)
	assert.Equal(t, float64(200), m.All[1].Time)
	assert.Equal(t, []string{"trip"}, m.Dirs)
	assert.Equal(t, "b.png", m.Latest.Path)
	assert.Equal(t, float64(200), m.Latest.Time)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"all": [{"path": "a.jpg", "time": 100}, {"path": "b.png", "time": 200}],
		"dirs": ["trip"],
		"latest": {"path": "b.png", "time": 200}
	}`, string(data))
}

func TestBuildManifest_SortedAscending(t *testing.T) {
	root := t.TempDir()
	times := map[string]int64{
		"z.jpg":  500,
		"m.gif":  100,
		"a.webp": 400,
		"q.png":  300,
		"c.jpeg": 200,
	}
	for name, ts := range times {
		writeFile(t, filepath.Join(root, name), ts)
	}

	m, err := BuildManifest(root, "")
	require.NoError(t, err)
	require.Len(t, m.All, len(times))

	for i := 1; i < len(m.All); i++ {
		assert.Less(t, m.All[i-1].Time, m.All[i].Time)
	}
	assert.Equal(t, "z.jpg", m.Latest.Path)
	assert.Equal(t, m.All[len(m.All)-1], m.Latest)
}

func TestBuildManifest_EqualTimesKeepNameOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "c.jpg"), 100)
	writeFile(t, filepath.Join(root, "a.jpg"), 100)
	writeFile(t, filepath.Join(root, "b.jpg"), 100)
	writeFile(t, filepath.Join(root, "early.jpg"), 50)

	m, err := BuildManifest(root, "")
	require.NoError(t, err)

	var names []string
	for _, e := range m.All {
		names = append(names, e.Path)
	}
	assert.Equal(t, []string{"early.jpg", "a.jpg", "b.jpg", "c.jpg"}, names)
	assert.Equal(t, "c.jpg", m.Latest.Path)
}

func TestBuildManifest_OnlyNonImages(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"empty directory", nil},
		{"text files", []string{"notes.txt", "readme.md"}},
		{"no extension", []string{"Makefile", "LICENSE"}},
		{"video and audio", []string{"clip.mp4", "song.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, f), 100)
			}
			require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

			m, err := BuildManifest(root, "")
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrEmptyGallery)
			assert.NotErrorIs(t, err, ErrScanFailed)

			var empty *EmptyError
			require.ErrorAs(t, err, &empty)
			assert.Equal(t, []string{"sub"}, empty.Dirs)
		})
	}
}

func TestBuildManifest_Subdirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.jpg"), 100)
	writeFile(t, filepath.Join(root, "trip", "day1.jpg"), 200)
	writeFile(t, filepath.Join(root, "trip", "beach", "wave.jpg"), 300)
	writeFile(t, filepath.Join(root, "trip", "beach", "deeper", "x.jpg"), 400)
	require.NoError(t, os.Mkdir(filepath.Join(root, "trip", "city"), 0o755))

	m, err := BuildManifest(root, "trip")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"beach", "city"}, m.Dirs)
	require.Len(t, m.All, 1)
	assert.Equal(t, "day1.jpg", m.Latest.Path)

	m, err = BuildManifest(root, "trip/beach")
	require.NoError(t, err)
	assert.Equal(t, []string{"deeper"}, m.Dirs)
	assert.Equal(t, "wave.jpg", m.Latest.Path)
}

func TestBuildManifest_ScanFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 100)

	_, err := BuildManifest(root, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanFailed)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = BuildManifest(filepath.Join(root, "nope"), "")
	assert.ErrorIs(t, err, ErrScanFailed)

	_, err = BuildManifest(root, "a.jpg")
	assert.ErrorIs(t, err, ErrScanFailed)
}

func TestBuildManifest_RejectsEscapingSubdir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 100)

	for _, subdir := range []string{"..", "../..", "trip/../../etc", `..\windows`} {
		t.Run(subdir, func(t *testing.T) {
			_, err := BuildManifest(root, subdir)
			assert.ErrorIs(t, err, ErrPathEscape)
		})
	}
}

func TestBuildManifest_Symlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(root, "real.jpg"), 100)
	writeFile(t, filepath.Join(outside, "secret.jpg"), 200)

	if err := os.Symlink(filepath.Join(root, "real.jpg"), filepath.Join(root, "alias.jpg")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "elsewhere")))

	require.NoError(t, os.Mkdir(filepath.Join(root, "trip"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "trip"), filepath.Join(root, "shortcut")))

	m, err := BuildManifest(root, "")
	require.NoError(t, err)
	assert.Len(t, m.All, 2)
	assert.Equal(t, []string{"shortcut", "trip"}, m.Dirs)
	assert.NotContains(t, m.Dirs, "elsewhere")

	_, err = BuildManifest(root, "elsewhere")
	assert.ErrorIs(t, err, ErrPathEscape)
}

func TestBuildManifest_SkipsLinksOutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 100)
	writeFile(t, filepath.Join(outside, "secret.jpg"), 900)
	require.NoError(t, os.Mkdir(filepath.Join(outside, "private"), 0o755))

	if err := os.Symlink(filepath.Join(outside, "secret.jpg"), filepath.Join(root, "z.jpg")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "private"), filepath.Join(root, "private")))

	m, err := BuildManifest(root, "")
	require.NoError(t, err)

	require.Len(t, m.All, 1)
	assert.Equal(t, "a.jpg", m.All[0].Path)
	assert.Equal(t, "a.jpg", m.Latest.Path)
	assert.Equal(t, float64(100), m.Latest.Time)
	assert.Empty(t, m.Dirs)
}

func TestBuildManifest_OnlyOutsideLinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.jpg"), 900)

	if err := os.Symlink(filepath.Join(outside, "secret.jpg"), filepath.Join(root, "z.jpg")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := BuildManifest(root, "")
	assert.ErrorIs(t, err, ErrEmptyGallery)
}

func TestBuildManifest_UnreadableSubdir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "locked", "a.jpg"), 100)
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := BuildManifest(root, "locked")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanFailed)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestBuildManifest_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 100)
	writeFile(t, filepath.Join(root, "b.jpg"), 100)
	writeFile(t, filepath.Join(root, "c.png"), 150)
	require.NoError(t, os.Mkdir(filepath.Join(root, "x"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "y"), 0o755))

	first, err := BuildManifest(root, "")
	require.NoError(t, err)
	second, err := BuildManifest(root, "")
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBuildManifest_FractionalTime(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.jpg")
	writeFile(t, path, 0)
	ts := time.Unix(100, 500_000_000)
	require.NoError(t, os.Chtimes(path, ts, ts))

	m, err := BuildManifest(root, "")
	require.NoError(t, err)
	assert.InDelta(t, 100.5, m.Latest.Time, 1e-9)
}
