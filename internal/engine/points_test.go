package engine

import (
	"errors"
	"testing"
)

func TestTotalAvailableBreakdown(t *testing.T) {
	p := NewPlayerRecord("rook")
	p.DailyTasksCompleted = 3
	p.DailyXPEarned = 250
	p.Streak = 2

	got := TotalAvailable(p)
	if got.Breakdown.Tasks != 60 || got.Breakdown.XP != 20 || got.Breakdown.Streak != 12 {
		t.Fatalf("breakdown=%+v, want tasks=60 xp=20 streak=12", got.Breakdown)
	}
	if got.Today != 92 || got.Total != 92 || got.Lifetime != 0 {
		t.Fatalf("points=%+v, want today=92 total=92 lifetime=0", got)
	}
}

func TestDeductPointsTodayFirst(t *testing.T) {
	p := NewPlayerRecord("rook")
	p.DailyTasksCompleted = 3
	p.DailyXPEarned = 250
	p.Streak = 2
	p.TotalPoints = 100

	if err := DeductPoints(p, 50); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if p.SpentTodayPoints != 50 || p.TotalPoints != 100 {
		t.Fatalf("spentToday=%d lifetime=%d, want 50/100", p.SpentTodayPoints, p.TotalPoints)
	}
	if got := TotalAvailable(p); got.Today != 42 || got.Total != 142 {
		t.Fatalf("after deduct: today=%d total=%d, want 42/142", got.Today, got.Total)
	}

	// Spend past today's pool; remainder comes out of lifetime.
	if err := DeductPoints(p, 100); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if p.SpentTodayPoints != 92 || p.TotalPoints != 42 {
		t.Fatalf("spentToday=%d lifetime=%d, want 92/42", p.SpentTodayPoints, p.TotalPoints)
	}
}

func TestDeductPointsInsufficient(t *testing.T) {
	p := NewPlayerRecord("rook")
	p.TotalPoints = 30

	if err := DeductPoints(p, 31); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("err=%v, want ErrInsufficientPoints", err)
	}
	if p.TotalPoints != 30 || p.SpentTodayPoints != 0 {
		t.Fatalf("record mutated on failed deduct")
	}
}

func TestAddPointsRejectsNegative(t *testing.T) {
	p := NewPlayerRecord("rook")
	if err := AddPoints(p, -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err=%v, want ErrInvalidAmount", err)
	}
}
