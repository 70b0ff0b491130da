package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"daybook/internal/assistant"
	"daybook/internal/models"
	"daybook/internal/store"
)

const (
	defaultListLimit = 100
	defaultPerPage   = 10
	maxPerPage       = 100
	untitledFallback = "Untitled Entry"
)

type EntryHandler struct {
	store *store.Store
	ai    *assistant.Assistant // nil when AI is not configured
}

func NewEntryHandler(st *store.Store, ai *assistant.Assistant) *EntryHandler {
	return &EntryHandler{store: st, ai: ai}
}

// Create stores a new entry. When the assistant is configured it fills
// in the missing title, mood, tags and insights; any assistant failure
// falls back to saving the entry exactly as written.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	req.Title = strings.TrimSpace(req.Title)
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	entry := models.JournalEntry{
		Title:    req.Title,
		Content:  req.Content,
		Mood:     req.Mood,
		Tags:     req.Tags,
		Insights: req.Insights,
	}
	if req.Date != "" {
		date, err := parseEntryDate(req.Date)
		if err != nil {
			http.Error(w, "invalid date; expected RFC 3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		entry.Date = date
	}

	aiProcessed := false
	if h.ai != nil {
		if cls, err := h.ai.ProcessEntry(r.Context(), req.Content); err == nil {
			aiProcessed = true
			if entry.Title == "" {
				entry.Title = cls.Title
			}
			if entry.Mood == nil && cls.Mood != "" {
				entry.Mood = &cls.Mood
			}
			if entry.Tags == nil {
				entry.Tags = cls.Tags
			}
			if entry.Insights == nil && cls.Insights != "" {
				entry.Insights = &cls.Insights
			}
		}
	}
	if entry.Title == "" {
		entry.Title = untitledFallback
	}

	stored, err := h.store.Create(r.Context(), &entry)
	if err != nil {
		if store.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "could not save entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"entry":        stored,
		"ai_processed": aiProcessed,
	})
}

// List returns entries ordered by business date. Optional start_date and
// end_date (YYYY-MM-DD, inclusive) narrow the window.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultListLimit
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	startStr, endStr := q.Get("start_date"), q.Get("end_date")
	var entries []models.JournalEntry
	var err error
	if startStr != "" || endStr != "" {
		start := time.Time{}
		end := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		if startStr != "" {
			if start, err = time.Parse("2006-01-02", startStr); err != nil {
				http.Error(w, "invalid start_date format; expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		if endStr != "" {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				http.Error(w, "invalid end_date format; expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			// Make the calendar day itself inclusive.
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		entries, err = h.store.ListByDateRange(r.Context(), start.UTC(), end.UTC())
	} else {
		entries, err = h.store.List(r.Context(), limit)
	}
	if err != nil {
		http.Error(w, "could not fetch entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Page returns a 1-indexed page of entries in insertion order.
func (h *EntryHandler) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}
	perPage := defaultPerPage
	if s := q.Get("per_page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPerPage {
			http.Error(w, "invalid per_page", http.StatusBadRequest)
			return
		}
		perPage = n
	}

	entries, err := h.store.Paginate(r.Context(), page, perPage)
	if err != nil {
		http.Error(w, "could not fetch entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	total, err := h.store.Count(r.Context())
	if err != nil {
		http.Error(w, "could not count entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"entries":       entries,
		"page":          page,
		"per_page":      perPage,
		"total_entries": total,
		"total_pages":   (total + perPage - 1) / perPage,
	})
}

// Get returns a single entry by id, 404 when it does not exist.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	entry, err := h.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "could not fetch entry", http.StatusInternalServerError)
		return
	}
	if entry == nil {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// Update replaces the mutable fields of an entry.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	entry := models.JournalEntry{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Mood:     req.Mood,
		Tags:     req.Tags,
		Insights: req.Insights,
	}
	updated, err := h.store.Update(r.Context(), id, &entry)
	if err != nil {
		if store.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "could not update entry", http.StatusInternalServerError)
		return
	}
	if updated == nil {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete removes an entry permanently.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	existed, err := h.store.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, "could not delete entry", http.StatusInternalServerError)
		return
	}
	if !existed {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
