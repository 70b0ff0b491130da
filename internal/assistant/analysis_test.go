package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"daybook/internal/models"
)

func analysisEntries(n int) []models.JournalEntry {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	mood := "peaceful"
	entries := make([]models.JournalEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.JournalEntry{
			ID:      int64(i + 1),
			Date:    day.AddDate(0, 0, i),
			Title:   fmt.Sprintf("day %d", i+1),
			Content: fmt.Sprintf("content of day %d", i+1),
			Mood:    &mood,
		})
	}
	return entries
}

func TestAnalyzePatternsWindowsLastTenEntries(t *testing.T) {
	var seenPrompt string
	srv := completionServer(t, func(prompt string) string {
		seenPrompt = prompt
		return "  Recurring calm mornings.  "
	})
	defer srv.Close()
	a := newTestAssistant(t, srv.URL)

	entries := analysisEntries(12)
	analysis, err := a.AnalyzePatterns(context.Background(), entries)
	if err != nil {
		t.Fatalf("analyze patterns: %v", err)
	}
	if analysis.Analysis != "Recurring calm mornings." {
		t.Fatalf("unexpected analysis %q", analysis.Analysis)
	}
	if analysis.EntriesAnalyzed != 12 {
		t.Fatalf("expected full window count 12, got %d", analysis.EntriesAnalyzed)
	}

	// Only the last ten entries feed the prompt.
	if strings.Contains(seenPrompt, "content of day 2\n") || strings.Contains(seenPrompt, "content of day 1\n") {
		t.Fatalf("prompt includes entries outside the ten-entry window:\n%s", seenPrompt)
	}
	if !strings.Contains(seenPrompt, "content of day 3") || !strings.Contains(seenPrompt, "content of day 12") {
		t.Fatalf("prompt missing windowed entries:\n%s", seenPrompt)
	}
	if !strings.Contains(seenPrompt, "Mood: peaceful") || !strings.Contains(seenPrompt, "Date: 2026-08-03") {
		t.Fatalf("prompt missing entry metadata:\n%s", seenPrompt)
	}
}

func TestAnalyzePatternsTruncatesLongContent(t *testing.T) {
	var seenPrompt string
	srv := completionServer(t, func(prompt string) string {
		seenPrompt = prompt
		return "ok"
	})
	defer srv.Close()
	a := newTestAssistant(t, srv.URL)

	entries := analysisEntries(1)
	entries[0].Content = strings.Repeat("x", 600)
	if _, err := a.AnalyzePatterns(context.Background(), entries); err != nil {
		t.Fatalf("analyze patterns: %v", err)
	}
	if !strings.Contains(seenPrompt, strings.Repeat("x", 500)+"...") {
		t.Fatal("expected content truncated to 500 characters with ellipsis")
	}
	if strings.Contains(seenPrompt, strings.Repeat("x", 501)) {
		t.Fatal("content not truncated")
	}
}

func TestAnalyzePatternsRequiresEntries(t *testing.T) {
	srv := completionServer(t, func(string) string { return "unused" })
	defer srv.Close()
	a := newTestAssistant(t, srv.URL)

	if _, err := a.AnalyzePatterns(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty window")
	}
}

func TestAnalyzePatternsUnavailableService(t *testing.T) {
	srv := completionServer(t, func(string) string { return "unused" })
	srv.Close()
	a := newTestAssistant(t, srv.URL)

	_, err := a.AnalyzePatterns(context.Background(), analysisEntries(2))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestWeeklySummary(t *testing.T) {
	var seenPrompt string
	srv := completionServer(t, func(prompt string) string {
		seenPrompt = prompt
		return "A steady, restful week."
	})
	defer srv.Close()
	a := newTestAssistant(t, srv.URL)

	summary, err := a.WeeklySummary(context.Background(), analysisEntries(3))
	if err != nil {
		t.Fatalf("weekly summary: %v", err)
	}
	if summary != "A steady, restful week." {
		t.Fatalf("unexpected summary %q", summary)
	}
	if !strings.Contains(seenPrompt, "Title: day 1") || !strings.Contains(seenPrompt, "Title: day 3") {
		t.Fatalf("prompt missing entry titles:\n%s", seenPrompt)
	}
}

func TestWeeklySummaryEmptyWindowSkipsAPI(t *testing.T) {
	srv := completionServer(t, func(string) string {
		t.Error("API called for empty window")
		return ""
	})
	defer srv.Close()
	a := newTestAssistant(t, srv.URL)

	summary, err := a.WeeklySummary(context.Background(), nil)
	if err != nil {
		t.Fatalf("weekly summary: %v", err)
	}
	if summary != "No entries to summarize this week." {
		t.Fatalf("unexpected empty-window summary %q", summary)
	}
}
