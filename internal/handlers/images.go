package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/lehigh-university-libraries/livegallery/internal/gallery"
)

// HandleImage streams a single gallery file.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	subdir := r.URL.Query().Get("subdir")
	name := r.PathValue("name")

	img, err := gallery.ResolveImage(h.root, subdir, name)
	if err != nil {
		switch {
		case errors.Is(err, gallery.ErrPathEscape):
			slog.Warn("Rejected image request outside gallery root",
				"subdir", subdir,
				"name", name,
				"remote_addr", r.RemoteAddr,
				"err", err,
			)
			h.writeError(w, "Invalid file path", http.StatusBadRequest)
		case errors.Is(err, gallery.ErrNotFound), errors.Is(err, gallery.ErrNotRegularFile):
			h.writeError(w, "Image not found", http.StatusNotFound)
		default:
			slog.Error("Failed to resolve image", "subdir", subdir, "name", name, "err", err)
			h.writeError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	f, err := os.Open(img.Path)
	if err != nil {
		// removed after it was resolved
		slog.Info("Image vanished before streaming", "path", img.Path, "err", err)
		h.writeError(w, "Image not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", img.ContentType)
	http.ServeContent(w, r, img.Name, img.ModTime, f)
}
