package engine_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"lifequest/internal/engine"
	"lifequest/internal/storage"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

// newTestService opens a service over a throwaway sqlite DB with a fixed
// clock, mirroring how the CLI wires everything at startup.
func newTestService(t *testing.T, at time.Time) (*engine.Service, *testClock) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := engine.OpenStore(ctx, storage.NewRecordRepo(db), "rook")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	clock := &testClock{t: at}
	svc := engine.NewService(store, clock)
	if err := svc.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	return svc, clock
}

var testStart = time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

func TestServiceCompleteCustomTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStart)

	task, err := svc.AddCustomTask(ctx, "Write journal", 100)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	res, err := svc.CompleteCustomTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.XPAwarded != 100 || res.Streak != 1 {
		t.Fatalf("result=%+v, want xp=100 streak=1", res)
	}

	p := svc.Player()
	if p.TotalTasksCompleted != 1 || p.DailyTasksCompleted != 1 || p.DailyXPEarned != 100 {
		t.Fatalf("counters: total=%d daily=%d dailyXp=%d", p.TotalTasksCompleted, p.DailyTasksCompleted, p.DailyXPEarned)
	}
	if !p.CustomTasksCompleted[task.ID] {
		t.Fatalf("task not marked done")
	}

	// Second completion the same day is rejected.
	var done engine.TaskDoneError
	if _, err := svc.CompleteCustomTask(ctx, task.ID); !errors.As(err, &done) {
		t.Fatalf("err=%v, want TaskDoneError", err)
	}
	if p := svc.Player(); p.TotalTasksCompleted != 1 {
		t.Fatalf("double completion counted")
	}
}

func TestServiceCompletionFeedsQuests(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStart)

	task, err := svc.AddCustomTask(ctx, "Stretch", 100)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	// The generated "Daily Focus" quest tracks task completions once accepted.
	quests, err := svc.Quests(ctx)
	if err != nil {
		t.Fatalf("quests: %v", err)
	}
	var focusID string
	for _, q := range quests {
		if q.Objective.Type == engine.ObjectiveTasks && q.Type == engine.QuestDaily {
			focusID = q.ID
		}
	}
	if focusID == "" {
		t.Fatalf("no daily tasks quest generated")
	}
	if _, err := svc.Accept(ctx, focusID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.CompleteCustomTask(ctx, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	quests, _ = svc.Quests(ctx)
	for _, q := range quests {
		if q.ID == focusID && q.Progress.Current != 1 {
			t.Fatalf("quest progress=%d, want 1", q.Progress.Current)
		}
	}
}

func TestServiceBuyBoostAppliesToCompletions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStart)

	// Can't afford anything yet.
	if _, err := svc.Buy(ctx, "double_xp_potion"); !errors.Is(err, engine.ErrInsufficientPoints) {
		t.Fatalf("err=%v, want ErrInsufficientPoints", err)
	}

	store := svc.Store()
	p := store.Get()
	p.TotalPoints = 600
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("seed points: %v", err)
	}

	res, err := svc.Buy(ctx, "double_xp_potion")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if res.Effect == nil {
		t.Fatalf("boost purchase must return the activated effect")
	}
	if got := svc.Points(); got.Lifetime != 100 {
		t.Fatalf("lifetime points=%d after purchase, want 100", got.Lifetime)
	}

	task, err := svc.AddCustomTask(ctx, "Deep work", 100)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	cres, err := svc.CompleteCustomTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if cres.XPAwarded != 200 {
		t.Fatalf("boosted xp=%d, want 200", cres.XPAwarded)
	}
}

func TestServiceBoostExpiryIsLazy(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, testStart)

	store := svc.Store()
	p := store.Get()
	p.TotalPoints = 500
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("seed points: %v", err)
	}
	if _, err := svc.Buy(ctx, "double_xp_potion"); err != nil {
		t.Fatalf("buy: %v", err)
	}

	effects, boosts, err := svc.ActiveBoosts(ctx)
	if err != nil || len(effects) != 1 || boosts.XPMultiplier != 2 {
		t.Fatalf("effects=%v boosts=%+v err=%v", effects, boosts, err)
	}

	// 25 hours later the 24h potion is gone and gets pruned from the record.
	clock.t = clock.t.Add(25 * time.Hour)
	effects, boosts, err = svc.ActiveBoosts(ctx)
	if err != nil || len(effects) != 0 || boosts.XPMultiplier != 1 {
		t.Fatalf("after expiry: effects=%v boosts=%+v err=%v", effects, boosts, err)
	}
	if got := svc.Player(); len(got.ActiveItems) != 0 {
		t.Fatalf("expired effect not pruned: %v", got.ActiveItems)
	}
}

func TestServiceTickRollsTheDayOver(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, testStart)

	task, err := svc.AddCustomTask(ctx, "Run", 100)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := svc.CompleteCustomTask(ctx, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Next afternoon both anchors have passed: daily counters cleared, the
	// completion set cleared, yesterday's dailies replaced.
	clock.t = clock.t.Add(24 * time.Hour)
	if err := svc.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}

	p := svc.Player()
	if p.DailyTasksCompleted != 0 || p.DailyXPEarned != 0 {
		t.Fatalf("daily counters survived the rollover: %+v", p)
	}
	if p.CustomTasksCompleted[task.ID] {
		t.Fatalf("completion set survived the midnight reset")
	}
	if p.TotalTasksCompleted != 1 || p.Streak != 1 {
		t.Fatalf("lifetime counters touched by the rollover: total=%d streak=%d", p.TotalTasksCompleted, p.Streak)
	}

	// The task can be completed again and the streak continues.
	res, err := svc.CompleteCustomTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("complete next day: %v", err)
	}
	if res.Streak != 2 {
		t.Fatalf("streak=%d, want 2", res.Streak)
	}
}

func TestServiceUseInventoryItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStart)

	store := svc.Store()
	p := store.Get()
	p.Health = 40
	p.Inventory[engine.ItemHealthPotion] = 2
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.UseItem(ctx, engine.ItemHealthPotion); err != nil {
		t.Fatalf("use: %v", err)
	}
	got := svc.Player()
	if got.Health != 60 {
		t.Fatalf("health=%d, want 60", got.Health)
	}
	if got.Inventory[engine.ItemHealthPotion] != 1 {
		t.Fatalf("inventory=%d, want 1", got.Inventory[engine.ItemHealthPotion])
	}

	if _, err := svc.UseItem(ctx, engine.ItemXPCrystal); !errors.Is(err, engine.ErrItemNotFound) {
		t.Fatalf("err=%v, want ErrItemNotFound for unowned item", err)
	}
}

func TestServiceDecorationFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStart)

	store := svc.Store()
	p := store.Get()
	p.TotalPoints = 1500
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("seed points: %v", err)
	}

	// Buying a decoration owns it and equips it in one step.
	res, err := svc.Buy(ctx, "border_gold")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if res.Effect != nil {
		t.Fatalf("decoration purchase must not start a timed effect")
	}
	got := svc.Player()
	if got.Decorations[engine.SlotAvatarBorderStatic] != "gold" {
		t.Fatalf("slot=%q, want gold", got.Decorations[engine.SlotAvatarBorderStatic])
	}
	if got.Inventory["border_gold"] != 1 {
		t.Fatalf("inventory=%d, want 1", got.Inventory["border_gold"])
	}
	if pts := svc.Points(); pts.Lifetime != 900 {
		t.Fatalf("lifetime points=%d after purchase, want 900", pts.Lifetime)
	}

	// Equipping an unowned decoration is rejected.
	if _, err := svc.Equip(ctx, "border_silver"); !errors.Is(err, engine.ErrItemNotFound) {
		t.Fatalf("err=%v, want ErrItemNotFound for unowned decoration", err)
	}

	// A second decoration for the same slot displaces the first on purchase;
	// the first stays owned and can be re-equipped.
	if _, err := svc.Buy(ctx, "border_silver"); err != nil {
		t.Fatalf("buy silver: %v", err)
	}
	if got := svc.Player(); got.Decorations[engine.SlotAvatarBorderStatic] != "silver" {
		t.Fatalf("slot=%q, want silver", got.Decorations[engine.SlotAvatarBorderStatic])
	}
	item, err := svc.Equip(ctx, "border_gold")
	if err != nil {
		t.Fatalf("equip: %v", err)
	}
	if item.ID != "border_gold" {
		t.Fatalf("equipped item=%s", item.ID)
	}
	if got := svc.Player(); got.Decorations[engine.SlotAvatarBorderStatic] != "gold" {
		t.Fatalf("slot=%q after re-equip, want gold", got.Decorations[engine.SlotAvatarBorderStatic])
	}

	// Using a decoration re-equips without consuming it.
	if _, err := svc.UseItem(ctx, "border_silver"); err != nil {
		t.Fatalf("use: %v", err)
	}
	got = svc.Player()
	if got.Decorations[engine.SlotAvatarBorderStatic] != "silver" {
		t.Fatalf("slot=%q after use, want silver", got.Decorations[engine.SlotAvatarBorderStatic])
	}
	if got.Inventory["border_silver"] != 1 {
		t.Fatalf("decoration consumed by use: inventory=%d", got.Inventory["border_silver"])
	}
}

func TestServiceDungeonLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, testStart)

	q, err := svc.SpawnDungeon(ctx)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if q.Status != engine.StatusInProgress || q.ExpiresAt == nil {
		t.Fatalf("dungeon=%+v", q)
	}

	healthBefore := svc.Player().Health

	// Miss the deadline; the next quest read applies the penalty.
	clock.t = q.ExpiresAt.Add(time.Minute)
	quests, err := svc.Quests(ctx)
	if err != nil {
		t.Fatalf("quests: %v", err)
	}
	var failed *engine.Quest
	for i := range quests {
		if quests[i].ID == q.ID {
			failed = &quests[i]
		}
	}
	if failed == nil || failed.Status != engine.StatusFailed {
		t.Fatalf("dungeon not failed: %+v", failed)
	}
	if got := svc.Player(); got.Health > healthBefore {
		t.Fatalf("penalty not applied: health %d -> %d", healthBefore, got.Health)
	}
}

func TestServiceSetClassRetitlesRank(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStart)

	if err := svc.SetClass(ctx, "wizard"); err == nil {
		t.Fatalf("unknown class accepted")
	}
	if err := svc.SetClass(ctx, engine.ClassProgrammer); err != nil {
		t.Fatalf("set class: %v", err)
	}
	if got := svc.Rank(); got.Title != "Coder" {
		t.Fatalf("rank=%+v, want Coder title", got)
	}
}
