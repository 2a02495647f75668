package models

import "time"

// Entry is one image in a gallery directory.
type Entry struct {
	Path string `json:"path"`
	// Time is the modification time in Unix seconds.
	Time float64 `json:"time"`

	ModTime time.Time `json:"-"`
}

// NewEntry builds an Entry for name modified at mod.
func NewEntry(name string, mod time.Time) Entry {
	return Entry{
		Path:    name,
		Time:    float64(mod.UnixNano()) / 1e9,
		ModTime: mod,
	}
}

// Manifest is a snapshot of one gallery directory.
type Manifest struct {
	All    []Entry  `json:"all"`
	Dirs   []string `json:"dirs"`
	Latest Entry    `json:"latest"`
}

// Image is a resolved gallery file ready to be streamed.
type Image struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
}
