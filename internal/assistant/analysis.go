package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daybook/internal/models"
)

const (
	maxAnalysisEntries   = 10
	analysisContentLimit = 500
	summaryContentLimit  = 300
)

// PatternAnalysis is the cross-entry view of the journal over a window.
type PatternAnalysis struct {
	Analysis        string `json:"analysis"`
	EntriesAnalyzed int    `json:"entries_analyzed"`
}

// AnalyzePatterns looks for emotional themes and mood trends across
// entries. Only the last ten entries feed the prompt so the request
// stays bounded; the reported count covers the whole window.
func (a *Assistant) AnalyzePatterns(ctx context.Context, entries []models.JournalEntry) (*PatternAnalysis, error) {
	if len(entries) == 0 {
		return nil, errors.New("no entries to analyze")
	}

	window := entries
	if len(window) > maxAnalysisEntries {
		window = window[len(window)-maxAnalysisEntries:]
	}

	blocks := make([]string, 0, len(window))
	for _, e := range window {
		mood := "Unknown"
		if e.Mood != nil && *e.Mood != "" {
			mood = *e.Mood
		}
		blocks = append(blocks, fmt.Sprintf("Date: %s\nMood: %s\nContent: %s",
			e.Date.Format("2006-01-02"), mood, truncate(e.Content, analysisContentLimit)))
	}

	out, err := a.complete(ctx, []ChatMessage{{Role: "user", Content: fmt.Sprintf(analysisPrompt, strings.Join(blocks, "\n\n"))}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &PatternAnalysis{Analysis: strings.TrimSpace(out), EntriesAnalyzed: len(entries)}, nil
}

// WeeklySummary narrates the given entries as one reflective summary.
// An empty window short-circuits without calling the API.
func (a *Assistant) WeeklySummary(ctx context.Context, entries []models.JournalEntry) (string, error) {
	if len(entries) == 0 {
		return "No entries to summarize this week.", nil
	}

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, fmt.Sprintf("Date: %s\nTitle: %s\nContent: %s",
			e.Date.Format("2006-01-02"), e.Title, truncate(e.Content, summaryContentLimit)))
	}

	out, err := a.complete(ctx, []ChatMessage{{Role: "user", Content: fmt.Sprintf(summaryPrompt, strings.Join(blocks, "\n\n"))}})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(out), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
