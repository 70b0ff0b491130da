package journal

import (
	"strings"
	"testing"
	"time"

	"daybook/internal/models"
)

func sampleEntries() []models.JournalEntry {
	created := time.Date(2026, 8, 20, 18, 45, 12, 0, time.UTC)
	return []models.JournalEntry{
		{
			ID:        2,
			Date:      time.Date(2026, 8, 20, 18, 30, 0, 0, time.UTC),
			Title:     "Busy day",
			Content:   "Back to back meetings.",
			Mood:      strPtr("tired"),
			Tags:      models.TagList{"work", "meetings"},
			Insights:  strPtr("Consider blocking focus time."),
			CreatedAt: created,
			UpdatedAt: created.Add(time.Minute),
		},
		{
			ID:        1,
			Date:      time.Date(2026, 8, 19, 8, 0, 0, 0, time.UTC),
			Title:     "Quick note",
			Content:   "Nothing much happened.",
			CreatedAt: created.AddDate(0, 0, -1),
			UpdatedAt: created.AddDate(0, 0, -1),
		},
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	entries := sampleEntries()

	data, err := ExportJSON(entries)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(parsed) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(parsed))
	}

	for i, want := range entries {
		got := parsed[i]
		if got.ID != want.ID || got.Title != want.Title || got.Content != want.Content {
			t.Fatalf("entry %d mismatch: %+v", i, got)
		}
		if !got.Date.Equal(want.Date) || !got.CreatedAt.Equal(want.CreatedAt) || !got.UpdatedAt.Equal(want.UpdatedAt) {
			t.Fatalf("entry %d timestamps mismatch: %+v", i, got)
		}
		if (got.Mood == nil) != (want.Mood == nil) {
			t.Fatalf("entry %d mood presence mismatch", i)
		}
		if want.Mood != nil && *got.Mood != *want.Mood {
			t.Fatalf("entry %d mood mismatch: %v", i, *got.Mood)
		}
		if len(got.Tags) != len(want.Tags) {
			t.Fatalf("entry %d tags mismatch: %v", i, got.Tags)
		}
		if (got.Insights == nil) != (want.Insights == nil) {
			t.Fatalf("entry %d insights presence mismatch", i)
		}
	}
}

func TestExportJSONEmptyCollection(t *testing.T) {
	data, err := ExportJSON(nil)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %s", data)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("parse empty export: %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected no entries, got %d", len(parsed))
	}
}

func TestExportTextRendering(t *testing.T) {
	out := string(ExportText(sampleEntries()))

	if !strings.HasPrefix(out, "Daily Journal Assistant - Export\n"+strings.Repeat("=", 50)+"\n\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	for _, want := range []string{
		"Entry #2\n",
		"Date: 2026-08-20 18:30\n",
		"Title: Busy day\n",
		"Mood: tired\n",
		"Tags: work, meetings\n",
		strings.Repeat("-", 30) + "\n",
		"Back to back meetings.\n",
		"\nAI Insights:\nConsider blocking focus time.\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	// Optional fields of the second entry render as placeholders; no
	// insights section is emitted at all.
	if !strings.Contains(out, "Mood: Not specified\n") {
		t.Fatalf("missing mood placeholder:\n%s", out)
	}
	if !strings.Contains(out, "Tags: None\n") {
		t.Fatalf("missing tags placeholder:\n%s", out)
	}
	if strings.Count(out, "AI Insights:") != 1 {
		t.Fatalf("unexpected insights sections:\n%s", out)
	}

	// Blocks keep input order.
	if strings.Index(out, "Entry #2") > strings.Index(out, "Entry #1") {
		t.Fatalf("entries out of order:\n%s", out)
	}
}

func TestExportTextEmptyCollection(t *testing.T) {
	out := string(ExportText(nil))
	if !strings.Contains(out, "Daily Journal Assistant - Export") {
		t.Fatalf("expected header even when empty, got:\n%s", out)
	}
	if strings.Contains(out, "Entry #") {
		t.Fatalf("unexpected entry block:\n%s", out)
	}
}
