package engine

import (
	"testing"
	"time"
)

func TestActiveEffectsFiltersExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	p := NewPlayerRecord("rook")
	p.ActiveItems = []TimedEffect{
		{ID: "a", Effect: EffectXPMultiplier, Magnitude: 1, ExpiresAt: now.Add(time.Hour)},
		{ID: "b", Effect: EffectXPMultiplier, Magnitude: 2, ExpiresAt: now.Add(-time.Minute)},
		{ID: "c", Effect: EffectTaskBonus, Magnitude: 0.3, ExpiresAt: now.Add(24 * time.Hour)},
	}

	live := ActiveEffects(p, now)
	if len(live) != 2 || live[0].ID != "a" || live[1].ID != "c" {
		t.Fatalf("live=%v, want [a c]", live)
	}

	// An effect expiring exactly at now is already dead.
	p.ActiveItems[0].ExpiresAt = now
	if live := ActiveEffects(p, now); len(live) != 1 {
		t.Fatalf("live=%v, want just c", live)
	}
}

func TestPruneExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	p := NewPlayerRecord("rook")
	p.ActiveItems = []TimedEffect{
		{ID: "a", ExpiresAt: now.Add(time.Hour)},
		{ID: "b", ExpiresAt: now.Add(-time.Hour)},
	}

	if !PruneExpired(p, now) {
		t.Fatalf("prune must report a change")
	}
	if len(p.ActiveItems) != 1 || p.ActiveItems[0].ID != "a" {
		t.Fatalf("activeItems=%v, want [a]", p.ActiveItems)
	}
	if PruneExpired(p, now) {
		t.Fatalf("second prune must be a no-op")
	}
}

func TestAggregateBoostsAdditiveStacking(t *testing.T) {
	b := AggregateBoosts([]TimedEffect{
		{Effect: EffectXPMultiplier, Magnitude: 1},
		{Effect: EffectXPMultiplier, Magnitude: 0.5},
		{Effect: EffectTaskBonus, Magnitude: 0.3},
	})
	if b.XPMultiplier != 2.5 {
		t.Fatalf("xpMultiplier=%v, want 2.5", b.XPMultiplier)
	}
	if b.TaskBonus != 0.3 {
		t.Fatalf("taskBonus=%v, want 0.3", b.TaskBonus)
	}

	if b := AggregateBoosts(nil); b.XPMultiplier != 1 || b.TaskBonus != 0 {
		t.Fatalf("empty boosts=%+v, want baseline 1/0", b)
	}
}

func TestActivate(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	p := NewPlayerRecord("rook")

	item, ok := FindItem("double_xp_potion")
	if !ok {
		t.Fatalf("catalog missing double_xp_potion")
	}
	e := Activate(p, item, now)
	if e.ID == "" || e.ItemID != item.ID {
		t.Fatalf("effect=%+v", e)
	}
	if !e.ExpiresAt.Equal(now.Add(item.Duration)) {
		t.Fatalf("expiresAt=%v, want now+%v", e.ExpiresAt, item.Duration)
	}
	if len(p.ActiveItems) != 1 {
		t.Fatalf("activeItems=%d, want 1", len(p.ActiveItems))
	}
}
