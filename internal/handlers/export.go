package handlers

import (
	"fmt"
	"net/http"
	"time"

	"daybook/internal/journal"
	"daybook/internal/store"
)

type ExportHandler struct {
	store *store.Store
}

func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{store: st}
}

// Get streams the full journal as a downloadable file. format=json
// (default) gives the structured export, format=txt the readable one.
func (h *ExportHandler) Get(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	entries, err := h.store.List(r.Context(), statsFetchLimit)
	if err != nil {
		http.Error(w, "could not fetch entries", http.StatusInternalServerError)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "json":
		payload, err = journal.ExportJSON(entries)
		if err != nil {
			http.Error(w, "could not render export", http.StatusInternalServerError)
			return
		}
		contentType = "application/json"
	case "txt":
		payload = journal.ExportText(entries)
		contentType = "text/plain; charset=utf-8"
	default:
		http.Error(w, "invalid format; expected json or txt", http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("journal_export_%s.%s", time.Now().Format("20060102_150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(payload)
}
