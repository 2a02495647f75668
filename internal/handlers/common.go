package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

type Handler struct {
	root string
	page *template.Template
	poll time.Duration
}

// New returns a Handler serving the gallery rooted at root. The root must
// already be validated, absolute and clean.
func New(root string, pollInterval time.Duration) (*Handler, error) {
	page, err := template.ParseFS(staticFS, "static/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Handler{
		root: root,
		page: page,
		poll: pollInterval,
	}, nil
}

// Routes returns the gallery HTTP surface wrapped in the traversal guard
// and request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /files.json", h.HandleFiles)
	mux.HandleFunc("GET /img/{name}", h.HandleImage)
	mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	return logRequests(rejectTraversal(mux))
}

type errorResponse struct {
	Error string   `json:"error"`
	Code  string   `json:"code,omitempty"`
	Dirs  []string `json:"dirs,omitempty"`
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, resp errorResponse, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Unable to encode JSON error", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	http.Error(w, message, code)
}
