package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Quest types.
const (
	QuestMain    = "main"
	QuestSide    = "side"
	QuestDaily   = "daily"
	QuestWeekly  = "weekly"
	QuestDungeon = "dungeon"
)

// Quest statuses. completed, expired and failed are terminal; reward and
// penalty are applied exactly once, on the transition into them.
const (
	StatusAvailable  = "available"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusExpired    = "expired"
	StatusFailed     = "failed"
)

// Objective types.
const (
	ObjectiveTasks = "tasks" // advance by 1 per task completed
	ObjectiveXP    = "xp"    // advance by XP earned
	ObjectiveCount = "count" // advanced manually
)

type Objective struct {
	Type   string `json:"type"`
	Target int    `json:"target"`
}

type Progress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

type Reward struct {
	XP     int    `json:"xp,omitempty"`
	Points int    `json:"points,omitempty"`
	ItemID string `json:"item_id,omitempty"`
}

type Penalty struct {
	XP         int `json:"xp,omitempty"` // taken from the current level, floored at 0
	Health     int `json:"health,omitempty"`
	Motivation int `json:"motivation,omitempty"`
}

type Quest struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Objective   Objective  `json:"objective"`
	Progress    Progress   `json:"progress"`
	Reward      Reward     `json:"reward"`
	Penalty     Penalty    `json:"penalty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (q *Quest) terminal() bool {
	switch q.Status {
	case StatusCompleted, StatusExpired, StatusFailed:
		return true
	}
	return false
}

func (q *Quest) active() bool {
	return q.Status == StatusAvailable || q.Status == StatusInProgress
}

// AddQuest appends a quest, rejecting duplicate ids.
func AddQuest(p *PlayerRecord, q Quest) error {
	for i := range p.Quests {
		if p.Quests[i].ID == q.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateQuest, q.ID)
		}
	}
	p.Quests = append(p.Quests, q)
	return nil
}

func findQuest(p *PlayerRecord, id string) (*Quest, error) {
	for i := range p.Quests {
		if p.Quests[i].ID == id {
			return &p.Quests[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, id)
}

// AcceptQuest moves an available quest to in_progress.
func AcceptQuest(p *PlayerRecord, id string) (*Quest, error) {
	q, err := findQuest(p, id)
	if err != nil {
		return nil, err
	}
	if q.Status != StatusAvailable {
		return nil, fmt.Errorf("quest %s is %s, not available", id, q.Status)
	}
	q.Status = StatusInProgress
	return q, nil
}

// AdvanceQuest adds delta to a quest's progress, clamped at the target. When
// the target is reached the quest completes and the reward is applied exactly
// once. Terminal quests are left untouched.
func AdvanceQuest(p *PlayerRecord, id string, delta int, now time.Time) (*Quest, bool, error) {
	if delta < 0 {
		return nil, false, ErrInvalidAmount
	}
	q, err := findQuest(p, id)
	if err != nil {
		return nil, false, err
	}
	if q.terminal() {
		return q, false, nil
	}

	q.Progress.Current += delta
	if q.Progress.Current > q.Progress.Target {
		q.Progress.Current = q.Progress.Target
	}
	if q.Progress.Current < q.Progress.Target {
		return q, false, nil
	}

	q.Status = StatusCompleted
	done := now
	q.CompletedAt = &done
	applyReward(p, q.Reward)
	return q, true, nil
}

// ExpireQuests fails every in_progress quest whose deadline has passed,
// applying its penalty. Called lazily on every quest read; returns whether
// any quest transitioned.
func ExpireQuests(p *PlayerRecord, now time.Time) bool {
	changed := false
	for i := range p.Quests {
		q := &p.Quests[i]
		if q.Status != StatusInProgress || q.ExpiresAt == nil {
			continue
		}
		if !now.After(*q.ExpiresAt) {
			continue
		}
		q.Status = StatusFailed
		applyPenalty(p, q.Penalty)
		changed = true
	}
	return changed
}

// advanceObjectives feeds task/xp events to every active quest with a
// matching objective type. Completions may cascade rewards.
func advanceObjectives(p *PlayerRecord, objType string, delta int, now time.Time) {
	for i := range p.Quests {
		q := &p.Quests[i]
		if !q.active() || q.Objective.Type != objType {
			continue
		}
		_, _, _ = AdvanceQuest(p, q.ID, delta, now)
	}
}

// applyReward never blocks the transition; reward sub-steps are best effort.
func applyReward(p *PlayerRecord, r Reward) {
	if r.XP > 0 {
		_, _ = GrantXP(p, r.XP, 1)
	}
	if r.Points > 0 {
		_ = AddPoints(p, r.Points)
	}
	if r.ItemID != "" {
		p.Inventory[r.ItemID]++
	}
}

func applyPenalty(p *PlayerRecord, pen Penalty) {
	if pen.XP > 0 {
		LoseXP(p, pen.XP)
	}
	if pen.Health != 0 {
		p.AddHealth(-pen.Health)
	}
	if pen.Motivation != 0 {
		p.AddMotivation(-pen.Motivation)
	}
}

type dungeonTemplate struct {
	name        string
	description string
	objective   Objective
	timeLimit   time.Duration
	reward      Reward
	penalty     Penalty
}

var dungeonTemplates = []dungeonTemplate{
	{
		name:        "Speed Challenge",
		description: "Complete 3 tasks within 2 hours!",
		objective:   Objective{Type: ObjectiveTasks, Target: 3},
		timeLimit:   2 * time.Hour,
		reward:      Reward{XP: 500, Points: 100},
		penalty:     Penalty{XP: 50, Health: 5},
	},
	{
		name:        "Focus Dungeon",
		description: "Complete 5 tasks without breaks!",
		objective:   Objective{Type: ObjectiveTasks, Target: 5},
		timeLimit:   4 * time.Hour,
		reward:      Reward{XP: 800, Points: 150},
		penalty:     Penalty{XP: 100, Health: 10},
	},
	{
		name:        "XP Rush",
		description: "Earn 1000 XP in one session!",
		objective:   Objective{Type: ObjectiveXP, Target: 1000},
		timeLimit:   6 * time.Hour,
		reward:      Reward{XP: 1000, Points: 200},
		penalty:     Penalty{XP: 150, Motivation: 10},
	},
	{
		name:        "Perfect Day",
		description: "Complete all daily tasks!",
		objective:   Objective{Type: ObjectiveCount, Target: 1},
		timeLimit:   12 * time.Hour,
		reward:      Reward{XP: 600, Points: 120, ItemID: ItemBoostFocus},
		penalty:     Penalty{XP: 80, Health: 8},
	},
}

// GenerateDungeonQuest picks a random dungeon challenge. Dungeon quests
// start in_progress with the clock already ticking.
func GenerateDungeonQuest(now time.Time) Quest {
	t := dungeonTemplates[rand.Intn(len(dungeonTemplates))]
	expires := now.Add(t.timeLimit)
	return Quest{
		ID:          "dungeon_" + uuid.NewString(),
		Type:        QuestDungeon,
		Name:        t.name,
		Description: t.description,
		Status:      StatusInProgress,
		Objective:   t.objective,
		Progress:    Progress{Target: t.objective.Target},
		Reward:      t.reward,
		Penalty:     t.penalty,
		CreatedAt:   now,
		ExpiresAt:   &expires,
	}
}

// GenerateDailyQuests builds the standing daily quests. Daily quests start
// available and carry no penalty.
func GenerateDailyQuests(now time.Time) []Quest {
	return []Quest{
		{
			ID:          "daily_" + uuid.NewString(),
			Type:        QuestDaily,
			Name:        "Daily Focus",
			Description: "Complete at least 3 tasks today",
			Status:      StatusAvailable,
			Objective:   Objective{Type: ObjectiveTasks, Target: 3},
			Progress:    Progress{Target: 3},
			Reward:      Reward{XP: 200, Points: 50},
			CreatedAt:   now,
		},
		{
			ID:          "daily_" + uuid.NewString(),
			Type:        QuestDaily,
			Name:        "Consistency",
			Description: "Complete all regular daily tasks",
			Status:      StatusAvailable,
			Objective:   Objective{Type: ObjectiveCount, Target: 1},
			Progress:    Progress{Target: 1},
			Reward:      Reward{XP: 300, Points: 75},
			CreatedAt:   now,
		},
	}
}

// pruneFinishedDailies drops yesterday's daily quests before regenerating.
func pruneFinishedDailies(p *PlayerRecord) {
	var kept []Quest
	for _, q := range p.Quests {
		if q.Type == QuestDaily {
			continue
		}
		kept = append(kept, q)
	}
	p.Quests = kept
}
