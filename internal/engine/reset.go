package engine

import "time"

// ResetDailyIfNeeded performs the noon rollover: daily counters, the spent
// points tracker and the streak guard all clear. Calling it twice within the
// same logical day is a no-op the second time.
func ResetDailyIfNeeded(p *PlayerRecord, now time.Time) bool {
	if !NeedsReset(p.LastDailyReset, now, AnchorNoon) {
		return false
	}
	p.DailyTasksCompleted = 0
	p.DailyXPEarned = 0
	p.SpentTodayPoints = 0
	p.StreakUpdatedDay = ""
	p.LastDailyReset = DayKey(now, AnchorNoon)
	return true
}

// ResetTasksIfNeeded performs the midnight rollover: completion sets clear,
// rank tasks regenerate for the new tier and, when withDailies is set, fresh
// daily quests are dealt.
func ResetTasksIfNeeded(p *PlayerRecord, now time.Time, withDailies bool) bool {
	if !NeedsReset(p.LastTaskReset, now, AnchorMidnight) {
		return false
	}
	p.CustomTasksCompleted = map[string]bool{}
	p.RankTasksCompleted = map[string]bool{}
	p.RankTasks = GenerateRankTasks(p)

	pruneFinishedDailies(p)
	if withDailies {
		for _, q := range GenerateDailyQuests(now) {
			_ = AddQuest(p, q)
		}
	}

	p.LastTaskReset = DayKey(now, AnchorMidnight)
	return true
}
