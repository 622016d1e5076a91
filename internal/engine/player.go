package engine

import "time"

// Decoration slots a player can equip.
const (
	SlotAvatarBorderAnimation = "avatar_border_animation"
	SlotAvatarBorderStatic    = "avatar_border_static"
	SlotUsernameAnimation     = "username_animation"
	SlotUsernameStatic        = "username_static"
	SlotTitle                 = "title"
)

// TimedEffect is an active boost with an expiry. Expired effects are filtered
// from every aggregate and pruned lazily on the next read.
type TimedEffect struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Name      string    `json:"name"`
	Effect    string    `json:"effect"`
	Magnitude float64   `json:"magnitude"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CustomTask is a user-authored daily task. Completion is tracked in
// CustomTasksCompleted, which resets at midnight.
type CustomTask struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	XP        int       `json:"xp"`
	CreatedAt time.Time `json:"created_at"`
}

// RankTask is a generated daily challenge scaled to the player's rank tier.
type RankTask struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	XP   int    `json:"xp"`
	Tier string `json:"tier"`
}

// PlayerRecord is the canonical progression record, one per user. It is owned
// by the Store; every other engine component works on snapshots and writes
// back through Store.Put.
type PlayerRecord struct {
	Username string `json:"username"`

	Level   int `json:"level"`
	XP      int `json:"xp"`
	MaxXP   int `json:"max_xp"`
	TotalXP int `json:"total_xp"`

	// TotalTasksCompleted never decreases; Store.Put clamps regressions.
	TotalTasksCompleted int `json:"total_tasks_completed"`

	Health     int `json:"health"`
	Motivation int `json:"motivation"`

	TotalPoints      int `json:"total_points"`
	SpentTodayPoints int `json:"spent_today_points"`

	Streak           int    `json:"streak"`
	LastActivityDate string `json:"last_activity_date"`
	StreakUpdatedDay string `json:"streak_updated_day"`

	DailyTasksCompleted int `json:"daily_tasks_completed"`
	DailyXPEarned       int `json:"daily_xp_earned"`

	// LastDailyReset is a noon day key; LastTaskReset is a midnight day key.
	LastDailyReset string `json:"last_daily_reset"`
	LastTaskReset  string `json:"last_task_reset"`

	ActiveItems []TimedEffect     `json:"active_items"`
	Decorations map[string]string `json:"decorations"`
	Inventory   map[string]int    `json:"inventory"`
	Quests      []Quest           `json:"quests"`

	CustomTasks          []CustomTask    `json:"custom_tasks"`
	CustomTasksCompleted map[string]bool `json:"custom_tasks_completed"`
	RankTasks            []RankTask      `json:"rank_tasks"`
	RankTasksCompleted   map[string]bool `json:"rank_tasks_completed"`

	PlayerClass string `json:"player_class"`
}

// NewPlayerRecord returns a fresh record with starting stats.
func NewPlayerRecord(username string) *PlayerRecord {
	return &PlayerRecord{
		Username:             username,
		Level:                1,
		MaxXP:                InitialMaxXP,
		Health:               100,
		Motivation:           100,
		Decorations:          map[string]string{},
		Inventory:            map[string]int{},
		CustomTasksCompleted: map[string]bool{},
		RankTasksCompleted:   map[string]bool{},
		PlayerClass:          ClassAdventurer,
	}
}

// Clone returns a deep copy. Snapshots handed to callers must not alias the
// store's canonical record.
func (p *PlayerRecord) Clone() *PlayerRecord {
	c := *p
	c.ActiveItems = append([]TimedEffect(nil), p.ActiveItems...)
	c.Quests = append([]Quest(nil), p.Quests...)
	c.CustomTasks = append([]CustomTask(nil), p.CustomTasks...)
	c.RankTasks = append([]RankTask(nil), p.RankTasks...)
	c.Decorations = cloneStringMap(p.Decorations)
	c.Inventory = cloneIntMap(p.Inventory)
	c.CustomTasksCompleted = cloneBoolMap(p.CustomTasksCompleted)
	c.RankTasksCompleted = cloneBoolMap(p.RankTasksCompleted)
	return &c
}

// normalize repairs nil collections after JSON decoding of older payloads.
func (p *PlayerRecord) normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.MaxXP <= 0 {
		p.MaxXP = InitialMaxXP
	}
	if p.Decorations == nil {
		p.Decorations = map[string]string{}
	}
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	if p.CustomTasksCompleted == nil {
		p.CustomTasksCompleted = map[string]bool{}
	}
	if p.RankTasksCompleted == nil {
		p.RankTasksCompleted = map[string]bool{}
	}
	if p.PlayerClass == "" {
		p.PlayerClass = ClassAdventurer
	}
}

// AddHealth adjusts health, clamped to [0, 100]. Delta may be negative.
func (p *PlayerRecord) AddHealth(delta int) {
	p.Health = clampStat(p.Health + delta)
}

// AddMotivation adjusts motivation, clamped to [0, 100]. Delta may be negative.
func (p *PlayerRecord) AddMotivation(delta int) {
	p.Motivation = clampStat(p.Motivation + delta)
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
