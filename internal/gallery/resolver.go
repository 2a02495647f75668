package gallery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/lehigh-university-libraries/livegallery/internal/models"
)

// ResolveImage maps name inside root/subdir to a regular file that can be
// streamed to a client.
func ResolveImage(root, subdir, name string) (*models.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	path, err := SafeJoin(root, subdir, name)
	if err != nil {
		return nil, err
	}
	if err := checkReal(root, path); err != nil {
		if errors.Is(err, ErrPathEscape) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, name)
	}

	contentType := ContentType(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.Image{
		Path:        path,
		Name:        info.Name(),
		ContentType: contentType,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}
