package gallery

import (
	"errors"
	"fmt"
)

var (
	// ErrPathEscape is returned when a requested path would leave the gallery root.
	ErrPathEscape = errors.New("path escapes gallery root")

	// ErrScanFailed wraps the OS error from listing a gallery directory.
	ErrScanFailed = errors.New("scan failed")

	// ErrEmptyGallery is returned when a scan finds no image files.
	ErrEmptyGallery = errors.New("no images found")

	// ErrNotFound is returned when a requested image does not exist.
	ErrNotFound = errors.New("image not found")

	// ErrNotRegularFile is returned when a requested image path names a
	// directory or other non-regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)

// EmptyError reports a scan that found no images. It carries the
// subdirectories found so a client can still navigate away.
type EmptyError struct {
	Subdir string
	Dirs   []string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("%v in %q", ErrEmptyGallery, e.Subdir)
}

func (e *EmptyError) Unwrap() error {
	return ErrEmptyGallery
}
