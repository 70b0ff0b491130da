// Package journal holds the derived, read-only views over an entry
// collection: histograms, streaks, date spans and exports. Everything
// here is a pure function of its input; empty input is a normal result.
package journal

import (
	"time"

	"daybook/internal/models"
)

const dayFormat = "2006-01-02"

// MoodHistogram counts entries per mood label. Entries without a mood
// contribute nothing.
func MoodHistogram(entries []models.JournalEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Mood != nil && *e.Mood != "" {
			counts[*e.Mood]++
		}
	}
	return counts
}

// TagHistogram counts every tag occurrence across all entries. An entry
// listing the same tag twice contributes two counts to that label.
func TagHistogram(entries []models.JournalEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, tag := range e.Tags {
			counts[tag]++
		}
	}
	return counts
}

// WritingStreak counts consecutive calendar days, walking backward from
// asOf, on which at least one entry was written. A gap stops the walk;
// the result is 0 when asOf itself has no entry.
func WritingStreak(entries []models.JournalEntry, asOf time.Time) int {
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		days[e.Date.Format(dayFormat)] = struct{}{}
	}

	streak := 0
	for d := asOf; ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d.Format(dayFormat)]; !ok {
			break
		}
		streak++
	}
	return streak
}

// DateSpan returns the earliest and latest business dates in the
// collection. ok is false when there are no entries.
func DateSpan(entries []models.JournalEntry) (oldest, newest time.Time, ok bool) {
	if len(entries) == 0 {
		return time.Time{}, time.Time{}, false
	}
	oldest, newest = entries[0].Date, entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(oldest) {
			oldest = e.Date
		}
		if e.Date.After(newest) {
			newest = e.Date
		}
	}
	return oldest, newest, true
}
