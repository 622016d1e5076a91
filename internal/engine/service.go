package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates the progression engine for one logged-in player. All
// mutations read a snapshot from the store, transform it and write it back
// in one Put, so observers see whole transitions only.
type Service struct {
	store       *Store
	clock       Clock
	dailyQuests bool
}

func NewService(store *Store, clock Clock) *Service {
	if clock == nil {
		clock = RealClock()
	}
	return &Service{store: store, clock: clock, dailyQuests: true}
}

// SetDailyQuests toggles daily quest generation at the midnight reset.
func (s *Service) SetDailyQuests(enabled bool) { s.dailyQuests = enabled }

func (s *Service) Store() *Store { return s.store }

// Player returns a snapshot of the current record.
func (s *Service) Player() *PlayerRecord { return s.store.Get() }

// Tick runs the lazy day-boundary maintenance: noon and midnight resets,
// quest expiry and timed-effect pruning. It persists at most once and is
// idempotent within a logical day. Commands call it on startup; there is no
// background scheduler.
func (s *Service) Tick(ctx context.Context) error {
	now := s.clock.Now()
	rec := s.store.Get()

	changed := ResetDailyIfNeeded(rec, now)
	changed = ResetTasksIfNeeded(rec, now, s.dailyQuests) || changed
	changed = ExpireQuests(rec, now) || changed
	changed = PruneExpired(rec, now) || changed

	if !changed {
		return nil
	}
	return s.store.Put(ctx, rec)
}

// CompleteResult reports a task completion.
type CompleteResult struct {
	TaskID       string
	Name         string
	XPAwarded    int
	LevelBefore  int
	LevelAfter   int
	LevelsGained int
	Streak       int
}

// AddCustomTask registers a user-authored daily task.
func (s *Service) AddCustomTask(ctx context.Context, name string, xp int) (CustomTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomTask{}, fmt.Errorf("task name is required")
	}
	if xp <= 0 {
		return CustomTask{}, ErrInvalidAmount
	}

	rec := s.store.Get()
	t := CustomTask{
		ID:        "task_" + uuid.NewString(),
		Name:      name,
		XP:        xp,
		CreatedAt: s.clock.Now(),
	}
	rec.CustomTasks = append(rec.CustomTasks, t)
	if err := s.store.Put(ctx, rec); err != nil {
		return CustomTask{}, err
	}
	return t, nil
}

// RemoveCustomTask deletes a custom task by id.
func (s *Service) RemoveCustomTask(ctx context.Context, id string) error {
	rec := s.store.Get()
	idx := -1
	for i := range rec.CustomTasks {
		if rec.CustomTasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	rec.CustomTasks = append(rec.CustomTasks[:idx], rec.CustomTasks[idx+1:]...)
	delete(rec.CustomTasksCompleted, id)
	return s.store.Put(ctx, rec)
}

// CompleteCustomTask marks a custom task done for today and applies the full
// completion cascade: boosted XP, daily counters, streak and quest progress.
func (s *Service) CompleteCustomTask(ctx context.Context, id string) (*CompleteResult, error) {
	rec := s.store.Get()
	now := s.clock.Now()
	ResetDailyIfNeeded(rec, now)
	ResetTasksIfNeeded(rec, now, s.dailyQuests)

	var task *CustomTask
	for i := range rec.CustomTasks {
		if rec.CustomTasks[i].ID == id {
			task = &rec.CustomTasks[i]
			break
		}
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if rec.CustomTasksCompleted[id] {
		return nil, TaskDoneError{TaskID: id, Name: task.Name}
	}

	res, err := s.completeTask(ctx, rec, id, task.Name, task.XP, now, rec.CustomTasksCompleted)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CompleteRankTask marks one of the day's rank challenges done.
func (s *Service) CompleteRankTask(ctx context.Context, id string) (*CompleteResult, error) {
	rec := s.store.Get()
	now := s.clock.Now()
	ResetDailyIfNeeded(rec, now)
	ResetTasksIfNeeded(rec, now, s.dailyQuests)

	var task *RankTask
	for i := range rec.RankTasks {
		if rec.RankTasks[i].ID == id {
			task = &rec.RankTasks[i]
			break
		}
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if rec.RankTasksCompleted[id] {
		return nil, TaskDoneError{TaskID: id, Name: task.Name}
	}

	return s.completeTask(ctx, rec, id, task.Name, task.XP, now, rec.RankTasksCompleted)
}

// completeTask runs the shared completion cascade on rec and persists it.
// doneSet is the per-day completion set the task id is recorded in.
func (s *Service) completeTask(ctx context.Context, rec *PlayerRecord, id, name string, baseXP int, now time.Time, doneSet map[string]bool) (*CompleteResult, error) {
	boosts := AggregateBoosts(ActiveEffects(rec, now))
	mult := boosts.XPMultiplier + boosts.TaskBonus
	effective := int(math.Floor(float64(baseXP) * mult))

	levelBefore := rec.Level
	levels, err := GrantXP(rec, effective, 1)
	if err != nil {
		return nil, err
	}

	doneSet[id] = true
	rec.TotalTasksCompleted++
	rec.DailyTasksCompleted++
	rec.DailyXPEarned += effective
	streak := UpdateStreak(rec, now)

	advanceObjectives(rec, ObjectiveTasks, 1, now)
	advanceObjectives(rec, ObjectiveXP, effective, now)

	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return &CompleteResult{
		TaskID:       id,
		Name:         name,
		XPAwarded:    effective,
		LevelBefore:  levelBefore,
		LevelAfter:   rec.Level,
		LevelsGained: levels,
		Streak:       streak,
	}, nil
}

// ActiveBoosts returns the live effects and their aggregate, pruning any
// expired entries back through the store.
func (s *Service) ActiveBoosts(ctx context.Context) ([]TimedEffect, Boosts, error) {
	rec := s.store.Get()
	now := s.clock.Now()
	if PruneExpired(rec, now) {
		if err := s.store.Put(ctx, rec); err != nil {
			return nil, Boosts{}, err
		}
	}
	effects := ActiveEffects(rec, now)
	return effects, AggregateBoosts(effects), nil
}

// Points returns the current balance breakdown.
func (s *Service) Points() Points {
	return TotalAvailable(s.store.Get())
}

// PurchaseResult reports a shop purchase.
type PurchaseResult struct {
	Item    ItemDef
	Message string
	Effect  *TimedEffect
}

// Buy purchases a shop item: points are deducted first, then the item takes
// effect per its kind. Instant potions apply immediately, boosts start their
// timer, decorations are owned and equipped.
func (s *Service) Buy(ctx context.Context, itemID string) (*PurchaseResult, error) {
	item, ok := FindItem(itemID)
	if !ok || item.Cost <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	rec := s.store.Get()
	now := s.clock.Now()
	PruneExpired(rec, now)

	if err := DeductPoints(rec, item.Cost); err != nil {
		return nil, err
	}

	res := &PurchaseResult{Item: item}
	switch item.Kind {
	case KindBoost:
		e := Activate(rec, item, now)
		res.Effect = &e
		res.Message = item.Name + " activated!"
	case KindInstant:
		applyInstant(rec, item)
		res.Message = item.Name + " used!"
	case KindDecoration:
		rec.Inventory[item.ID]++
		rec.Decorations[item.Slot] = item.Value
		res.Message = item.Name + " equipped!"
	default:
		rec.Inventory[item.ID]++
		res.Message = item.Name + " added to inventory!"
	}

	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return res, nil
}

// UseItem consumes one unit of an owned inventory item.
func (s *Service) UseItem(ctx context.Context, itemID string) (*PurchaseResult, error) {
	item, ok := FindItem(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	rec := s.store.Get()
	if rec.Inventory[itemID] <= 0 {
		return nil, fmt.Errorf("%w: %s is not in your inventory", ErrItemNotFound, itemID)
	}
	now := s.clock.Now()

	res := &PurchaseResult{Item: item}
	switch item.Kind {
	case KindBoost:
		e := Activate(rec, item, now)
		res.Effect = &e
		res.Message = item.Name + " activated!"
	case KindInstant:
		applyInstant(rec, item)
		res.Message = item.Name + " used!"
	case KindQuestItem:
		q := GenerateDailyQuests(now)[0]
		q.ID = "bonus_" + uuid.NewString()
		q.Name = "Bonus: " + q.Name
		_ = AddQuest(rec, q)
		res.Message = item.Name + " used! Special quest unlocked!"
	case KindDecoration:
		rec.Decorations[item.Slot] = item.Value
		res.Message = item.Name + " equipped!"
		// Decorations are permanent; do not consume below.
		if err := s.store.Put(ctx, rec); err != nil {
			return nil, err
		}
		return res, nil
	}

	rec.Inventory[itemID]--
	if rec.Inventory[itemID] <= 0 {
		delete(rec.Inventory, itemID)
	}

	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return res, nil
}

func applyInstant(rec *PlayerRecord, item ItemDef) {
	switch item.Instant {
	case InstantHealth:
		rec.AddHealth(item.Amount)
	case InstantMotivation:
		rec.AddMotivation(item.Amount)
	case InstantXP:
		_, _ = GrantXP(rec, item.Amount, 1)
	}
}

// Equip sets an owned decoration into its slot.
func (s *Service) Equip(ctx context.Context, itemID string) (ItemDef, error) {
	item, ok := FindItem(itemID)
	if !ok || item.Kind != KindDecoration {
		return ItemDef{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	rec := s.store.Get()
	if rec.Inventory[itemID] <= 0 {
		return ItemDef{}, fmt.Errorf("%w: %s is not owned", ErrItemNotFound, itemID)
	}
	rec.Decorations[item.Slot] = item.Value
	if err := s.store.Put(ctx, rec); err != nil {
		return ItemDef{}, err
	}
	return item, nil
}

// Quests returns all quests after the lazy expiry pass, persisting any
// transitions it caused.
func (s *Service) Quests(ctx context.Context) ([]Quest, error) {
	rec := s.store.Get()
	if ExpireQuests(rec, s.clock.Now()) {
		if err := s.store.Put(ctx, rec); err != nil {
			return nil, err
		}
	}
	return append([]Quest(nil), rec.Quests...), nil
}

// Accept moves an available quest to in_progress.
func (s *Service) Accept(ctx context.Context, id string) (*Quest, error) {
	rec := s.store.Get()
	ExpireQuests(rec, s.clock.Now())
	q, err := AcceptQuest(rec, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	out := *q
	return &out, nil
}

// Advance adds manual progress to a quest (count objectives).
func (s *Service) Advance(ctx context.Context, id string, delta int) (*Quest, bool, error) {
	rec := s.store.Get()
	now := s.clock.Now()
	ExpireQuests(rec, now)
	q, completed, err := AdvanceQuest(rec, id, delta, now)
	if err != nil {
		return nil, false, err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, false, err
	}
	out := *q
	return &out, completed, nil
}

// SpawnDungeon deals a random dungeon quest, already in progress.
func (s *Service) SpawnDungeon(ctx context.Context) (*Quest, error) {
	rec := s.store.Get()
	q := GenerateDungeonQuest(s.clock.Now())
	if err := AddQuest(rec, q); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return &q, nil
}

// SetClass changes the player's class, which retitles the rank tiers.
func (s *Service) SetClass(ctx context.Context, class string) error {
	if !ValidClass(class) {
		return fmt.Errorf("unknown class %q", class)
	}
	rec := s.store.Get()
	rec.PlayerClass = class
	return s.store.Put(ctx, rec)
}

// Rank derives the player's current rank info.
func (s *Service) Rank() RankInfo {
	rec := s.store.Get()
	return RankFor(rec.TotalXP, rec.PlayerClass)
}
