package models

import "time"

// WritingHistoryEntry aggregates one calendar day of writing.
type WritingHistoryEntry struct {
	Date            time.Time      `json:"date" yaml:"date"`
	WordsWritten    int            `json:"words_written" yaml:"words_written"`
	DraftWordCount  *int           `json:"draft_word_count,omitempty" yaml:"draft_word_count,omitempty"`
	SessionDuration *time.Duration `json:"session_duration,omitempty" yaml:"session_duration,omitempty"`
}

// DayOf maps t to midnight UTC of its local calendar date. Two times fall
// on the same writing day iff their DayOf values are equal.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b, where both
// are DayOf values.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
