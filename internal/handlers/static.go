package handlers

import (
	"embed"
	"log/slog"
	"net/http"
)

//go:embed static/index.html
var staticFS embed.FS

type pageData struct {
	PollIntervalMS int64
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{PollIntervalMS: h.poll.Milliseconds()}
	if err := h.page.Execute(w, data); err != nil {
		slog.Error("Unable to render gallery page", "err", err)
	}
}
