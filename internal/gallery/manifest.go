// Package gallery scans gallery directories and resolves image requests
// against the gallery root.
package gallery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/lehigh-university-libraries/livegallery/internal/models"
)

// BuildManifest scans root/subdir and returns its image entries sorted by
// modification time, its immediate subdirectories and the latest image.
//
// Entries are enumerated in lexical name order (os.ReadDir) and sorted
// stably, so images sharing a modification time keep name order.
func BuildManifest(root, subdir string) (*models.Manifest, error) {
	dir, err := SafeJoin(root, subdir)
	if err != nil {
		return nil, err
	}
	if err := checkReal(root, dir); err != nil {
		if errors.Is(err, ErrPathEscape) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrScanFailed, subdir, err)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrScanFailed, subdir, err)
	}

	manifest := &models.Manifest{
		All:  make([]models.Entry, 0, len(dirEntries)),
		Dirs: make([]string, 0),
	}

	for _, de := range dirEntries {
		if de.Type()&fs.ModeSymlink != 0 {
			if err := checkReal(root, filepath.Join(dir, de.Name())); err != nil {
				slog.Debug("Skipping linked gallery entry", "dir", dir, "name", de.Name(), "err", err)
				continue
			}
		}

		info, err := entryInfo(dir, de)
		if err != nil {
			// removed between listing and stat
			slog.Debug("Skipping gallery entry", "dir", dir, "name", de.Name(), "err", err)
			continue
		}

		switch {
		case info.IsDir():
			manifest.Dirs = append(manifest.Dirs, de.Name())
		case info.Mode().IsRegular():
			if _, ok := ClassifyImage(de.Name()); !ok {
				continue
			}
			manifest.All = append(manifest.All, models.NewEntry(de.Name(), info.ModTime()))
		}
	}

	if len(manifest.All) == 0 {
		return nil, &EmptyError{Subdir: subdir, Dirs: manifest.Dirs}
	}

	sort.SliceStable(manifest.All, func(i, j int) bool {
		return manifest.All[i].ModTime.Before(manifest.All[j].ModTime)
	})
	manifest.Latest = manifest.All[len(manifest.All)-1]

	return manifest, nil
}

// entryInfo stats a directory entry, following symlinks so a link to an
// image or directory is listed like its target.
func entryInfo(dir string, de fs.DirEntry) (fs.FileInfo, error) {
	if de.Type()&fs.ModeSymlink != 0 {
		return os.Stat(filepath.Join(dir, de.Name()))
	}
	return de.Info()
}
