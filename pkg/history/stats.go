package history

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/grovetools/manuscript/pkg/models"
)

// Bucket is the word total of one calendar period.
type Bucket struct {
	Key   string `json:"key" yaml:"key"`
	Words int    `json:"words" yaml:"words"`
}

// Stats are the derived figures for a writing history. They are computed
// on demand and never stored.
type Stats struct {
	TotalWords    int       `json:"total_words" yaml:"total_words"`
	DaysWritten   int       `json:"days_written" yaml:"days_written"`
	AveragePerDay float64   `json:"average_per_day" yaml:"average_per_day"`
	BestDay       *Bucket   `json:"best_day,omitempty" yaml:"best_day,omitempty"`
	CurrentStreak int       `json:"current_streak" yaml:"current_streak"`
	LongestStreak int       `json:"longest_streak" yaml:"longest_streak"`
	Last7Days     int       `json:"last_7_days" yaml:"last_7_days"`
	Last30Days    int       `json:"last_30_days" yaml:"last_30_days"`
	ByWeek        []Bucket  `json:"by_week" yaml:"by_week"`
	ByMonth       []Bucket  `json:"by_month" yaml:"by_month"`
	AsOf          time.Time `json:"as_of" yaml:"as_of"`
}

// Compute derives every statistic relative to now's calendar day.
func Compute(entries []models.WritingHistoryEntry, now time.Time) Stats {
	st := Stats{
		TotalWords:    Total(entries),
		DaysWritten:   DaysWritten(entries),
		AveragePerDay: Average(entries),
		CurrentStreak: CurrentStreak(entries, now),
		LongestStreak: LongestStreak(entries),
		Last7Days:     Rolling(entries, 7, now),
		Last30Days:    Rolling(entries, 30, now),
		ByWeek:        ByISOWeek(entries),
		ByMonth:       ByMonth(entries),
		AsOf:          models.DayOf(now),
	}
	if e, ok := BestDay(entries); ok {
		st.BestDay = &Bucket{Key: models.DayOf(e.Date).Format(time.DateOnly), Words: e.WordsWritten}
	}
	return st
}

// Total sums the words written across all entries.
func Total(entries []models.WritingHistoryEntry) int {
	n := 0
	for _, e := range entries {
		n += e.WordsWritten
	}
	return n
}

// DaysWritten counts the distinct days with an entry.
func DaysWritten(entries []models.WritingHistoryEntry) int {
	return len(days(entries))
}

// Average is the mean words per day written, or zero without entries.
func Average(entries []models.WritingHistoryEntry) float64 {
	n := DaysWritten(entries)
	if n == 0 {
		return 0
	}
	return float64(Total(entries)) / float64(n)
}

// BestDay returns the entry with the most words. Ties go to the earliest.
func BestDay(entries []models.WritingHistoryEntry) (models.WritingHistoryEntry, bool) {
	if len(entries) == 0 {
		return models.WritingHistoryEntry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.WordsWritten > best.WordsWritten ||
			(e.WordsWritten == best.WordsWritten && e.Date.Before(best.Date)) {
			best = e
		}
	}
	return best, true
}

// CurrentStreak walks back from the most recent day. The streak starts at
// today, or at yesterday when nothing has been written yet today, and
// extends while each earlier day is exactly one before the expected date.
func CurrentStreak(entries []models.WritingHistoryEntry, now time.Time) int {
	ds := days(entries)
	expected := models.DayOf(now)
	streak := 0
	for i := len(ds) - 1; i >= 0; i-- {
		d := ds[i]
		switch {
		case d.Equal(expected):
		case streak == 0 && d.Equal(expected.AddDate(0, 0, -1)):
		default:
			return streak
		}
		streak++
		expected = d.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak scans forward for the longest run of consecutive days.
func LongestStreak(entries []models.WritingHistoryEntry) int {
	ds := days(entries)
	if len(ds) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(ds); i++ {
		switch models.DaysBetween(ds[i-1], ds[i]) {
		case 0:
			continue
		case 1:
			run++
		default:
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// Rolling sums the words of the last n calendar days, today included.
func Rolling(entries []models.WritingHistoryEntry, n int, now time.Time) int {
	today := models.DayOf(now)
	sum := 0
	for _, e := range entries {
		ago := models.DaysBetween(models.DayOf(e.Date), today)
		if ago >= 0 && ago < n {
			sum += e.WordsWritten
		}
	}
	return sum
}

// ByISOWeek groups words by ISO 8601 week, keyed "2006-W01", oldest first.
func ByISOWeek(entries []models.WritingHistoryEntry) []Bucket {
	return group(entries, func(t time.Time) string {
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	})
}

// ByMonth groups words by calendar month, keyed "2006-01", oldest first.
func ByMonth(entries []models.WritingHistoryEntry) []Bucket {
	return group(entries, func(t time.Time) string {
		return t.Format("2006-01")
	})
}

func group(entries []models.WritingHistoryEntry, key func(time.Time) string) []Bucket {
	idx := make(map[string]int)
	var out []Bucket
	for _, e := range entries {
		k := key(models.DayOf(e.Date))
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Bucket{Key: k})
		}
		out[i].Words += e.WordsWritten
	}
	slices.SortFunc(out, func(a, b Bucket) int { return cmp.Compare(a.Key, b.Key) })
	return out
}
