package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"syscall"

	"github.com/lehigh-university-libraries/livegallery/internal/gallery"
)

// HandleFiles answers the manifest poll for the directory named by the
// subdir query parameter.
func (h *Handler) HandleFiles(w http.ResponseWriter, r *http.Request) {
	subdir := r.URL.Query().Get("subdir")

	manifest, err := gallery.BuildManifest(h.root, subdir)
	w.Header().Set("Cache-Control", "no-store")
	if err != nil {
		h.writeManifestError(w, r, subdir, err)
		return
	}

	h.writeJSON(w, manifest)
}

func (h *Handler) writeManifestError(w http.ResponseWriter, r *http.Request, subdir string, err error) {
	switch {
	case errors.Is(err, gallery.ErrPathEscape):
		slog.Warn("Rejected manifest request outside gallery root",
			"subdir", subdir,
			"remote_addr", r.RemoteAddr,
			"err", err,
		)
		h.writeJSONError(w, errorResponse{Error: "Invalid subdir", Code: "path_escape"}, http.StatusBadRequest)
	case errors.Is(err, gallery.ErrEmptyGallery):
		slog.Debug("No images in gallery directory", "subdir", subdir)
		resp := errorResponse{Error: "No images found", Code: "empty_gallery"}
		var empty *gallery.EmptyError
		if errors.As(err, &empty) {
			resp.Dirs = empty.Dirs
		}
		h.writeJSONError(w, resp, http.StatusNotFound)
	case errors.Is(err, gallery.ErrScanFailed) && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)):
		slog.Info("Gallery directory not found", "subdir", subdir)
		h.writeJSONError(w, errorResponse{Error: "Directory not found", Code: "scan_failed"}, http.StatusNotFound)
	case errors.Is(err, gallery.ErrScanFailed) && errors.Is(err, fs.ErrPermission):
		slog.Error("Gallery directory not readable", "subdir", subdir, "err", err)
		h.writeJSONError(w, errorResponse{Error: "Directory not readable", Code: "scan_failed"}, http.StatusForbidden)
	default:
		slog.Error("Failed to scan gallery directory", "subdir", subdir, "err", err)
		h.writeJSONError(w, errorResponse{Error: "Failed to scan directory", Code: "scan_failed"}, http.StatusInternalServerError)
	}
}
