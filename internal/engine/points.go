package engine

// Point rates.
const (
	TaskPointRate   = 20 // per task completed today
	XPPointRate     = 10 // per full 100 XP earned today
	StreakPointRate = 6  // per streak day
)

// PointsBreakdown reports where today's points came from.
type PointsBreakdown struct {
	Tasks  int
	XP     int
	Streak int
}

// Points is the result of TotalAvailable.
type Points struct {
	Total     int
	Lifetime  int
	Today     int
	Breakdown PointsBreakdown
}

// TotalAvailable computes the spendable balance. Today's points are derived
// from the daily counters each call rather than stored; spending against them
// is tracked via spent_today_points so a noon reset cannot double-count.
func TotalAvailable(p *PlayerRecord) Points {
	b := PointsBreakdown{
		Tasks:  p.DailyTasksCompleted * TaskPointRate,
		XP:     p.DailyXPEarned / 100 * XPPointRate,
		Streak: p.Streak * StreakPointRate,
	}
	today := b.Tasks + b.XP + b.Streak - p.SpentTodayPoints
	if today < 0 {
		today = 0
	}
	return Points{
		Total:     p.TotalPoints + today,
		Lifetime:  p.TotalPoints,
		Today:     today,
		Breakdown: b,
	}
}

// AddPoints credits the lifetime balance.
func AddPoints(p *PlayerRecord, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	p.TotalPoints += amount
	return nil
}

// DeductPoints spends amount, today's pool first, remainder from the lifetime
// balance. Fails with ErrInsufficientPoints and no mutation when the combined
// balance is short.
func DeductPoints(p *PlayerRecord, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	avail := TotalAvailable(p)
	if amount > avail.Total {
		return ErrInsufficientPoints
	}

	fromToday := amount
	if fromToday > avail.Today {
		fromToday = avail.Today
	}
	p.SpentTodayPoints += fromToday

	remainder := amount - fromToday
	p.TotalPoints -= remainder
	if p.TotalPoints < 0 {
		p.TotalPoints = 0
	}
	return nil
}
