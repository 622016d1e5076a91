package engine

import "time"

// Day anchor hours. Streaks, daily points and daily XP roll over at noon;
// task completion sets roll over at midnight. The two key spaces are
// independent and must never be compared to each other.
const (
	AnchorNoon     = 12
	AnchorMidnight = 0
)

// Clock supplies wall-clock time. Injected so every day-boundary rule is
// testable with a fixed instant.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns the production clock.
func RealClock() Clock { return realClock{} }

// DayKey formats now as YYYY-MM-DD under the given anchor hour. Before the
// anchor hour the key is still yesterday's date.
func DayKey(now time.Time, anchorHour int) string {
	if now.Hour() < anchorHour {
		now = now.AddDate(0, 0, -1)
	}
	return now.Format("2006-01-02")
}

// NeedsReset reports whether lastKey belongs to an earlier logical day than
// now under the given anchor. An empty lastKey always needs a reset.
func NeedsReset(lastKey string, now time.Time, anchorHour int) bool {
	if lastKey == "" {
		return true
	}
	return lastKey != DayKey(now, anchorHour)
}
