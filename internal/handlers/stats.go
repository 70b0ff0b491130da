package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"daybook/internal/journal"
	"daybook/internal/store"
)

// statsFetchLimit bounds how many entries feed the aggregate views.
const statsFetchLimit = 1000

type StatsHandler struct {
	store       *store.Store
	aiAvailable bool
}

func NewStatsHandler(st *store.Store, aiAvailable bool) *StatsHandler {
	return &StatsHandler{store: st, aiAvailable: aiAvailable}
}

type dateRange struct {
	Oldest string `json:"oldest"`
	Newest string `json:"newest"`
}

type statsResponse struct {
	ReferenceDate     string         `json:"reference_date"`
	TotalEntries      int            `json:"total_entries"`
	ThisWeek          int            `json:"this_week"`
	ThisMonth         int            `json:"this_month"`
	MoodCounts        map[string]int `json:"mood_counts"`
	TagCounts         map[string]int `json:"tag_counts"`
	DateRange         *dateRange     `json:"date_range,omitempty"`
	CurrentStreakDays int            `json:"current_streak_days"`
	AIAvailable       bool           `json:"ai_available"`
}

// Get computes the aggregate views over the journal. An optional
// local_date query param (YYYY-MM-DD) sets the reference "today" so
// clients in other timezones get a correct streak.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	refDate := time.Now().UTC()
	if s := r.URL.Query().Get("local_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			http.Error(w, "invalid local_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		refDate = parsed
	}

	entries, err := h.store.List(r.Context(), statsFetchLimit)
	if err != nil {
		http.Error(w, "could not fetch entries", http.StatusInternalServerError)
		return
	}

	resp := statsResponse{
		ReferenceDate:     refDate.Format("2006-01-02"),
		TotalEntries:      len(entries),
		MoodCounts:        journal.MoodHistogram(entries),
		TagCounts:         journal.TagHistogram(entries),
		CurrentStreakDays: journal.WritingStreak(entries, refDate),
		AIAvailable:       h.aiAvailable,
	}

	weekCutoff := refDate.AddDate(0, 0, -7)
	monthCutoff := refDate.AddDate(0, 0, -30)
	for _, e := range entries {
		if !e.Date.Before(weekCutoff) {
			resp.ThisWeek++
		}
		if !e.Date.Before(monthCutoff) {
			resp.ThisMonth++
		}
	}

	if oldest, newest, ok := journal.DateSpan(entries); ok {
		resp.DateRange = &dateRange{
			Oldest: oldest.Format("2006-01-02"),
			Newest: newest.Format("2006-01-02"),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
