package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Rank tiers, lowest to highest. Rank is derived from total_xp and is
// orthogonal to level.
var RankTiers = []string{"E", "D", "C", "B", "A", "S"}

var rankThresholds = []int{0, 1000, 5000, 15000, 50000, 150000}

// Player classes. A class only changes how the rank tier is titled.
const (
	ClassStudent    = "student"
	ClassAthlete    = "athlete"
	ClassProgrammer = "programmer"
	ClassLinguist   = "linguist"
	ClassAdventurer = "adventurer"
)

var classTitles = map[string][]string{
	ClassStudent:    {"Beginner", "Learner", "Scholar", "Expert", "Master", "Legend"},
	ClassAthlete:    {"Novice", "Warrior", "Champion", "Elite", "Hero", "Legend"},
	ClassProgrammer: {"Coder", "Developer", "Engineer", "Architect", "Guru", "Legend"},
	ClassLinguist:   {"Beginner", "Intermediate", "Advanced", "Fluent", "Native", "Legend"},
	ClassAdventurer: {"Novice", "Explorer", "Achiever", "Veteran", "Elite", "Legend"},
}

// ValidClass reports whether name is a known player class.
func ValidClass(name string) bool {
	_, ok := classTitles[name]
	return ok
}

// RankInfo describes the player's current rank tier.
type RankInfo struct {
	Tier          string
	TierIndex     int
	Title         string
	NextThreshold int // 0 when already at the top tier
}

// RankFor derives the rank from total XP and titles it per the class.
func RankFor(totalXP int, class string) RankInfo {
	titles, ok := classTitles[class]
	if !ok {
		titles = classTitles[ClassAdventurer]
	}

	idx := 0
	for i := len(rankThresholds) - 1; i >= 0; i-- {
		if totalXP >= rankThresholds[i] {
			idx = i
			break
		}
	}

	info := RankInfo{
		Tier:      RankTiers[idx],
		TierIndex: idx,
		Title:     titles[idx],
	}
	if idx < len(rankThresholds)-1 {
		info.NextThreshold = rankThresholds[idx+1]
	}
	return info
}

// RankTitle renders the display form, e.g. "C - Scholar".
func (r RankInfo) String() string {
	return fmt.Sprintf("%s - %s", r.Tier, r.Title)
}

type rankTaskTemplate struct {
	name string
	xp   int
}

// Daily challenge templates per tier; the XP scales with difficulty.
var rankTaskTemplates = [][]rankTaskTemplate{
	{ // E
		{"Complete 1 daily task", 150},
		{"Read for 10 minutes", 200},
		{"Take a 5 minute walk", 100},
		{"Drink 2 glasses of water", 80},
	},
	{ // D
		{"Complete 3 daily tasks", 300},
		{"Read for 20 minutes", 350},
		{"Exercise for 15 minutes", 250},
		{"Learn a new skill for 30 minutes", 400},
	},
	{ // C
		{"Complete 5 daily tasks", 600},
		{"Read for 45 minutes", 550},
		{"Exercise for 30 minutes", 450},
		{"Work on a project for 2 hours", 800},
	},
	{ // B
		{"Complete all daily tasks", 1000},
		{"Read for 1 hour", 900},
		{"Master a complex topic", 1200},
		{"Complete a major project phase", 1500},
	},
	{ // A
		{"Study for 2 hours", 1800},
		{"Complete an advanced challenge", 2200},
		{"Teach or mentor someone", 2500},
		{"Complete a major project", 3000},
	},
	{ // S
		{"Study for 4 hours", 3500},
		{"Complete an expert-level challenge", 4500},
		{"Create something significant", 5000},
		{"Achieve a major milestone", 6000},
	},
}

// GenerateRankTasks draws the day's challenges for the player's tier. Higher
// tiers get more tasks (2 at E, up to 4 at A/S).
func GenerateRankTasks(p *PlayerRecord) []RankTask {
	info := RankFor(p.TotalXP, p.PlayerClass)
	pool := rankTaskTemplates[info.TierIndex]

	n := 2 + info.TierIndex
	if n > len(pool) {
		n = len(pool)
	}

	perm := rand.Perm(len(pool))
	tasks := make([]RankTask, 0, n)
	for _, i := range perm[:n] {
		tasks = append(tasks, RankTask{
			ID:   "rank_" + uuid.NewString(),
			Name: pool[i].name,
			XP:   pool[i].xp,
			Tier: info.Tier,
		})
	}
	return tasks
}
