package engine

import "time"

// UpdateStreak bumps the consecutive-day streak, at most once per noon day.
// Activity yesterday continues the streak; a gap resets it to 1; a second
// call within the same logical day returns the streak unchanged.
func UpdateStreak(p *PlayerRecord, now time.Time) int {
	today := DayKey(now, AnchorNoon)
	if p.StreakUpdatedDay == today {
		return p.Streak
	}

	yesterday := DayKey(now.AddDate(0, 0, -1), AnchorNoon)
	switch {
	case p.LastActivityDate == yesterday:
		p.Streak++
	case p.LastActivityDate != today:
		p.Streak = 1
	default:
		// Same-day activity recorded without the guard flag (older payloads);
		// leave the streak alone.
		p.StreakUpdatedDay = today
		return p.Streak
	}

	p.LastActivityDate = today
	p.StreakUpdatedDay = today
	return p.Streak
}
