// Package history aggregates writing activity into one entry per calendar
// day and derives productivity statistics from those entries.
package history

import (
	"slices"
	"time"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/textstat"
)

// Delta is the change in word count between two versions of a text.
func Delta(oldText, newText string) int {
	return textstat.Words(newText) - textstat.Words(oldText)
}

// Record adds delta words to the entry for now's calendar day, creating it
// when missing. draftTotal, when given, overwrites the day's draft word
// count. Deltas that are not positive are ignored and entries is returned
// as it is. The returned slice is sorted by date.
func Record(entries []models.WritingHistoryEntry, delta int, draftTotal *int, now time.Time) []models.WritingHistoryEntry {
	if delta <= 0 {
		return entries
	}
	day := models.DayOf(now)
	next := slices.Clone(entries)
	i := slices.IndexFunc(next, func(e models.WritingHistoryEntry) bool {
		return models.DayOf(e.Date).Equal(day)
	})
	if i < 0 {
		next = append(next, models.WritingHistoryEntry{Date: day})
		i = len(next) - 1
	}
	next[i].WordsWritten += delta
	if draftTotal != nil {
		total := *draftTotal
		next[i].DraftWordCount = &total
	}
	sortByDate(next)
	return next
}

// AddSession accumulates d into the session duration of now's entry. It
// does nothing when no entry exists for that day.
func AddSession(entries []models.WritingHistoryEntry, d time.Duration, now time.Time) []models.WritingHistoryEntry {
	if d <= 0 {
		return entries
	}
	day := models.DayOf(now)
	i := slices.IndexFunc(entries, func(e models.WritingHistoryEntry) bool {
		return models.DayOf(e.Date).Equal(day)
	})
	if i < 0 {
		return entries
	}
	next := slices.Clone(entries)
	total := d
	if next[i].SessionDuration != nil {
		total += *next[i].SessionDuration
	}
	next[i].SessionDuration = &total
	return next
}

func sortByDate(entries []models.WritingHistoryEntry) {
	slices.SortStableFunc(entries, func(a, b models.WritingHistoryEntry) int {
		return a.Date.Compare(b.Date)
	})
}

// days returns the distinct calendar days of entries in ascending order.
func days(entries []models.WritingHistoryEntry) []time.Time {
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.DayOf(e.Date))
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(out, func(a, b time.Time) bool { return a.Equal(b) })
}
