package engine

import (
	"time"

	"github.com/google/uuid"
)

// Effect kinds carried by TimedEffect.Effect.
const (
	EffectXPMultiplier = "xp_multiplier"
	EffectTaskBonus    = "task_bonus"
)

// Boosts is the aggregate of all active timed effects. XPMultiplier starts
// at the 1.0 baseline and each active xp effect adds its magnitude on top;
// stacked effects add, they do not multiply. TaskBonus is the plain sum and
// applies only to task completions.
type Boosts struct {
	XPMultiplier float64
	TaskBonus    float64
}

// ActiveEffects returns the effects still live at now, preserving order.
func ActiveEffects(p *PlayerRecord, now time.Time) []TimedEffect {
	var live []TimedEffect
	for _, e := range p.ActiveItems {
		if e.ExpiresAt.After(now) {
			live = append(live, e)
		}
	}
	return live
}

// PruneExpired drops expired effects from the record and reports whether
// anything changed, so the caller knows to persist. There is no background
// sweeper; pruning happens only on read.
func PruneExpired(p *PlayerRecord, now time.Time) bool {
	live := ActiveEffects(p, now)
	if len(live) == len(p.ActiveItems) {
		return false
	}
	p.ActiveItems = live
	return true
}

// AggregateBoosts sums effect contributions.
func AggregateBoosts(effects []TimedEffect) Boosts {
	b := Boosts{XPMultiplier: 1}
	for _, e := range effects {
		switch e.Effect {
		case EffectXPMultiplier:
			b.XPMultiplier += e.Magnitude
		case EffectTaskBonus:
			b.TaskBonus += e.Magnitude
		}
	}
	return b
}

// Activate appends a timed effect built from the item definition.
func Activate(p *PlayerRecord, item ItemDef, now time.Time) TimedEffect {
	e := TimedEffect{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		Name:      item.Name,
		Effect:    item.Effect,
		Magnitude: item.Magnitude,
		CreatedAt: now,
		ExpiresAt: now.Add(item.Duration),
	}
	p.ActiveItems = append(p.ActiveItems, e)
	return e
}
