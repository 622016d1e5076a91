package engine

import "math"

const (
	// InitialMaxXP is the level-1 XP bar size.
	InitialMaxXP = 500

	// XPGrowthFactor scales max_xp on each level-up.
	XPGrowthFactor = 1.25
)

// GrantXP applies base*multiplier XP to the record and resolves cascading
// level-ups. After it returns, 0 <= xp < max_xp always holds and total_xp
// has grown by the effective amount. Returns the number of levels gained.
// A negative base fails with ErrInvalidAmount and leaves the record untouched.
func GrantXP(p *PlayerRecord, base int, multiplier float64) (int, error) {
	if base < 0 {
		return 0, ErrInvalidAmount
	}
	if multiplier < 1 {
		multiplier = 1
	}

	effective := int(math.Floor(float64(base) * multiplier))
	p.XP += effective
	p.TotalXP += effective

	levels := 0
	for p.XP >= p.MaxXP {
		p.XP -= p.MaxXP
		p.Level++
		p.MaxXP = int(math.Round(float64(p.MaxXP) * XPGrowthFactor))
		levels++
	}
	return levels, nil
}

// LoseXP removes XP within the current level, floored at 0. Levels already
// earned are never taken back; this matches quest-penalty semantics.
func LoseXP(p *PlayerRecord, amount int) {
	if amount <= 0 {
		return
	}
	p.XP -= amount
	if p.XP < 0 {
		p.XP = 0
	}
}
