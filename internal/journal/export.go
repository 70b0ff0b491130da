package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"daybook/internal/models"
)

// ExportRecord is the structured export shape. Timestamps are RFC 3339
// strings so exports stay portable and re-importable without loss.
type ExportRecord struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      *string  `json:"mood"`
	Tags      []string `json:"tags"`
	Insights  *string  `json:"insights"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ExportJSON renders the entries as an indented JSON array, preserving
// the input order.
func ExportJSON(entries []models.JournalEntry) ([]byte, error) {
	records := make([]ExportRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, ExportRecord{
			ID:        e.ID,
			Date:      e.Date.Format(time.RFC3339Nano),
			Title:     e.Title,
			Content:   e.Content,
			Mood:      e.Mood,
			Tags:      e.Tags,
			Insights:  e.Insights,
			CreatedAt: e.CreatedAt.Format(time.RFC3339Nano),
			UpdatedAt: e.UpdatedAt.Format(time.RFC3339Nano),
		})
	}
	return json.MarshalIndent(records, "", "  ")
}

// ParseJSON decodes a structured export back into entries.
func ParseJSON(data []byte) ([]models.JournalEntry, error) {
	var records []ExportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	entries := make([]models.JournalEntry, 0, len(records))
	for _, r := range records {
		date, err := time.Parse(time.RFC3339Nano, r.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date of entry %d: %w", r.ID, err)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of entry %d: %w", r.ID, err)
		}
		updatedAt, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at of entry %d: %w", r.ID, err)
		}
		entries = append(entries, models.JournalEntry{
			ID:        r.ID,
			Date:      date,
			Title:     r.Title,
			Content:   r.Content,
			Mood:      r.Mood,
			Tags:      r.Tags,
			Insights:  r.Insights,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}
	return entries, nil
}

// ExportText renders a human-readable export, one block per entry in
// input order. Missing moods print "Not specified" and missing tags
// "None" so a reader can tell absence from an empty value.
func ExportText(entries []models.JournalEntry) []byte {
	var b strings.Builder
	b.WriteString("Daily Journal Assistant - Export\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "Entry #%d\n", e.ID)
		fmt.Fprintf(&b, "Date: %s\n", e.Date.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "Title: %s\n", e.Title)

		mood := "Not specified"
		if e.Mood != nil && *e.Mood != "" {
			mood = *e.Mood
		}
		fmt.Fprintf(&b, "Mood: %s\n", mood)

		tags := "None"
		if len(e.Tags) > 0 {
			tags = strings.Join(e.Tags, ", ")
		}
		fmt.Fprintf(&b, "Tags: %s\n", tags)

		b.WriteString(strings.Repeat("-", 30) + "\n")
		b.WriteString(e.Content + "\n")
		if e.Insights != nil && *e.Insights != "" {
			b.WriteString("\nAI Insights:\n")
			b.WriteString(*e.Insights + "\n")
		}
		b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
	}
	return []byte(b.String())
}
