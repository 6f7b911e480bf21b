package reminder

import (
	"fmt"
	"time"

	"sahayata/models"
)

const (
	DateLayout = models.DateLayout
	TimeLayout = models.TimeLayout

	// DefaultWindow is how far ahead an item may be and still be reminded.
	DefaultWindow = 60 * time.Minute
)

// CandidateDates is the coarse date pre-filter for a scan at now: today and
// the date at now+window, which differ when the window crosses midnight.
func CandidateDates(now time.Time, loc *time.Location, window time.Duration) []string {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	today := local.Format(DateLayout)
	soon := local.Add(window).Format(DateLayout)
	if soon == today {
		return []string{today}
	}
	return []string{today, soon}
}

// DueAt combines a stored date and time of day into an instant in loc.
func DueAt(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	when, err := models.ParseLayout(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule %q %q: %w", date, clock, err)
	}
	return when, nil
}

// IsDue reports whether when falls in [now, now+window], both ends inclusive.
func IsDue(when, now time.Time, window time.Duration) bool {
	diff := when.Sub(now)
	return diff >= 0 && diff <= window
}

// FilterDue keeps the items due within the window. Items whose date or time
// cannot be parsed are returned separately and never qualify.
func FilterDue[T Scheduled](items []T, now time.Time, loc *time.Location, window time.Duration) (due, invalid []T) {
	for _, item := range items {
		base := item.Base()
		when, err := DueAt(base.Date, base.Time, loc)
		if err != nil {
			invalid = append(invalid, item)
			continue
		}
		if IsDue(when, now, window) {
			due = append(due, item)
		}
	}
	return due, invalid
}
