package engine

import (
	"context"
	"errors"
	"testing"
)

// memRepo is an in-memory RecordRepo. failNext makes the next Set fail so
// persistence-failure paths can be exercised.
type memRepo struct {
	data     map[string][]byte
	failNext bool
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	if m.failNext {
		m.failNext = false
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func TestOpenStoreFreshRecord(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, newMemRepo(), "rook")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	p := s.Get()
	if p.Username != "rook" || p.Level != 1 || p.MaxXP != InitialMaxXP {
		t.Fatalf("fresh record=%+v", p)
	}
	if p.Health != 100 || p.Motivation != 100 {
		t.Fatalf("fresh stats: health=%d motivation=%d, want 100/100", p.Health, p.Motivation)
	}
}

func TestOpenStoreRequiresUsername(t *testing.T) {
	if _, err := OpenStore(context.Background(), newMemRepo(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err=%v, want ErrNoSession", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	s, err := OpenStore(ctx, repo, "rook")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := s.Get()
	if _, err := GrantXP(p, 600, 1); err != nil {
		t.Fatalf("grant: %v", err)
	}
	p.Streak = 3
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	// A second store over the same repo must see the persisted state.
	s2, err := OpenStore(ctx, repo, "rook")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := s2.Get()
	if got.Level != 2 || got.XP != 100 || got.TotalXP != 600 || got.Streak != 3 {
		t.Fatalf("reloaded record=%+v", got)
	}
}

func TestStoreSnapshotsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, newMemRepo(), "rook")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	p := s.Get()
	p.Inventory["xp_crystal"] = 5
	p.TotalPoints = 999

	if got := s.Get(); got.TotalPoints != 0 || len(got.Inventory) != 0 {
		t.Fatalf("mutating a snapshot leaked into the store: %+v", got)
	}
}

func TestStorePutClampsMonotonicCounters(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, newMemRepo(), "rook")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	p := s.Get()
	p.TotalTasksCompleted = 10
	p.TotalXP = 800
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	// An errant write that regresses the counters is clamped, not rejected.
	stale := s.Get()
	stale.TotalTasksCompleted = 4
	stale.TotalXP = 100
	stale.Streak = 7
	if err := s.Put(ctx, stale); err != nil {
		t.Fatalf("put: %v", err)
	}

	got := s.Get()
	if got.TotalTasksCompleted != 10 || got.TotalXP != 800 {
		t.Fatalf("counters regressed: tasks=%d xp=%d", got.TotalTasksCompleted, got.TotalXP)
	}
	if got.Streak != 7 {
		t.Fatalf("non-monotonic field dropped: streak=%d, want 7", got.Streak)
	}
}

func TestStorePutKeepsMemoryOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	s, err := OpenStore(ctx, repo, "rook")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := s.Get()
	p.TotalPoints = 50
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	repo.failNext = true
	p = s.Get()
	p.TotalPoints = 200
	if err := s.Put(ctx, p); !errors.Is(err, ErrPersistence) {
		t.Fatalf("err=%v, want ErrPersistence", err)
	}

	if got := s.Get(); got.TotalPoints != 50 {
		t.Fatalf("in-memory state advanced past a failed persist: points=%d", got.TotalPoints)
	}
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, newMemRepo(), "rook")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var seen []int
	s.Subscribe(func(p PlayerRecord) { seen = append(seen, p.TotalPoints) })
	s.Subscribe(func(p PlayerRecord) { seen = append(seen, p.TotalPoints*10) })

	p := s.Get()
	p.TotalPoints = 3
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(seen) != 2 || seen[0] != 3 || seen[1] != 30 {
		t.Fatalf("observer calls=%v, want [3 30]", seen)
	}

	// A failed Put must not notify anyone.
	repo := newMemRepo()
	s2, _ := OpenStore(ctx, repo, "rook")
	called := false
	s2.Subscribe(func(PlayerRecord) { called = true })
	repo.failNext = true
	if err := s2.Put(ctx, s2.Get()); err == nil {
		t.Fatalf("expected persist failure")
	}
	if called {
		t.Fatalf("observer notified on failed persist")
	}
}
