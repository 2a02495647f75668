package gallery

import (
	"mime"
	"path/filepath"
	"strings"
)

// Extensions the platform mime tables frequently miss. Cameras and phones
// write most of these.
var fallbackTypes = map[string]string{
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
	".ico":  "image/x-icon",
	".jfif": "image/jpeg",
	".jpe":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".avif": "image/avif",
}

// ContentType guesses the MIME type of name from its extension. It returns
// "" when the extension is unknown.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}

	t := mime.TypeByExtension(ext)
	if t == "" {
		t = fallbackTypes[ext]
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// ClassifyImage returns the MIME type of name and whether it is an image.
func ClassifyImage(name string) (string, bool) {
	t := ContentType(name)
	return t, strings.HasPrefix(t, "image/")
}
