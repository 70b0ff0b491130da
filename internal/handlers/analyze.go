package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"daybook/internal/assistant"
	"daybook/internal/store"
)

const defaultAnalysisDays = 30

type AnalyzeHandler struct {
	store *store.Store
	ai    *assistant.Assistant // nil when AI is not configured
}

func NewAnalyzeHandler(st *store.Store, ai *assistant.Assistant) *AnalyzeHandler {
	return &AnalyzeHandler{store: st, ai: ai}
}

// Get analyzes emotional patterns over the entries of the last ?days=N
// days (default 30). An empty window returns a zero count instead of
// calling the assistant.
func (h *AnalyzeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		http.Error(w, "AI features are not available", http.StatusServiceUnavailable)
		return
	}

	days := defaultAnalysisDays
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}
		days = n
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	entries, err := h.store.ListByDateRange(r.Context(), start, end)
	if err != nil {
		http.Error(w, "could not fetch entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(entries) == 0 {
		json.NewEncoder(w).Encode(map[string]any{
			"days":             days,
			"entries_analyzed": 0,
			"analysis":         "",
		})
		return
	}

	analysis, err := h.ai.AnalyzePatterns(r.Context(), entries)
	if err != nil {
		http.Error(w, "AI is unavailable right now", http.StatusServiceUnavailable)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"days":             days,
		"entries_analyzed": analysis.EntriesAnalyzed,
		"analysis":         analysis.Analysis,
	})
}
