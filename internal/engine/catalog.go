package engine

import "time"

// Item kinds.
const (
	KindBoost      = "boost"      // activates a timed effect
	KindInstant    = "instant"    // applies immediately on purchase/use
	KindDecoration = "decoration" // equips into a decoration slot
	KindQuestItem  = "quest_item" // unlocks an extra daily quest
)

// Instant effects.
const (
	InstantHealth     = "health"
	InstantMotivation = "motivation"
	InstantXP         = "xp"
)

// Item ids referenced from quest rewards.
const (
	ItemBoostFocus        = "boost_focus"
	ItemBoostProductivity = "boost_productivity"
	ItemHealthPotion      = "health_potion"
	ItemMotivationBoost   = "motivation_boost"
	ItemXPCrystal         = "xp_crystal"
	ItemDailyBonusScroll  = "daily_bonus_scroll"
)

// ItemDef describes one purchasable or usable item. Cost 0 means the item is
// not sold in the shop and only arrives through quest rewards.
type ItemDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Kind        string
	Cost        int

	// KindBoost
	Effect    string
	Magnitude float64
	Duration  time.Duration

	// KindInstant
	Instant string
	Amount  int

	// KindDecoration
	Slot  string
	Value string
}

// Catalog is every known item, shop stock and quest rewards alike.
var Catalog = []ItemDef{
	// XP potions: additive on the 1.0 baseline, so double = +1.0.
	{ID: "double_xp_potion", Name: "Double XP Potion", Description: "Doubles earned XP for a day", Icon: "⚗️", Kind: KindBoost, Cost: 500, Effect: EffectXPMultiplier, Magnitude: 1, Duration: 24 * time.Hour},
	{ID: "triple_xp_potion", Name: "Triple XP Potion", Description: "Triples earned XP for a day", Icon: "🧪", Kind: KindBoost, Cost: 1000, Effect: EffectXPMultiplier, Magnitude: 2, Duration: 24 * time.Hour},
	{ID: "quadruple_xp_potion", Name: "Quadruple XP Potion", Description: "Quadruples earned XP for a day", Icon: "🔬", Kind: KindBoost, Cost: 2000, Effect: EffectXPMultiplier, Magnitude: 3, Duration: 24 * time.Hour},

	{ID: "small_health_potion", Name: "Small Health Potion", Description: "Restores 15 health", Icon: "🩸", Kind: KindInstant, Cost: 250, Instant: InstantHealth, Amount: 15},
	{ID: "medium_health_potion", Name: "Medium Health Potion", Description: "Restores 40 health", Icon: "💉", Kind: KindInstant, Cost: 500, Instant: InstantHealth, Amount: 40},
	{ID: "big_health_potion", Name: "Big Health Potion", Description: "Restores 70 health", Icon: "🩹", Kind: KindInstant, Cost: 1000, Instant: InstantHealth, Amount: 70},
	{ID: "small_motivation_potion", Name: "Small Motivation Potion", Description: "Restores 15 motivation", Icon: "✨", Kind: KindInstant, Cost: 250, Instant: InstantMotivation, Amount: 15},
	{ID: "medium_motivation_potion", Name: "Medium Motivation Potion", Description: "Restores 40 motivation", Icon: "🌟", Kind: KindInstant, Cost: 500, Instant: InstantMotivation, Amount: 40},
	{ID: "big_motivation_potion", Name: "Big Motivation Potion", Description: "Restores 70 motivation", Icon: "⭐", Kind: KindInstant, Cost: 1000, Instant: InstantMotivation, Amount: 70},

	{ID: "border_fire", Name: "Fire Border", Description: "Animated flame avatar border", Icon: "🔥", Kind: KindDecoration, Cost: 800, Slot: SlotAvatarBorderAnimation, Value: "fire"},
	{ID: "border_ice", Name: "Ice Border", Description: "Animated frost avatar border", Icon: "🧊", Kind: KindDecoration, Cost: 800, Slot: SlotAvatarBorderAnimation, Value: "ice"},
	{ID: "border_gold", Name: "Gold Border", Description: "Static gold avatar border", Icon: "🥇", Kind: KindDecoration, Cost: 600, Slot: SlotAvatarBorderStatic, Value: "gold"},
	{ID: "border_silver", Name: "Silver Border", Description: "Static silver avatar border", Icon: "🥈", Kind: KindDecoration, Cost: 400, Slot: SlotAvatarBorderStatic, Value: "silver"},
	{ID: "name_rainbow", Name: "Rainbow Username", Description: "Animated rainbow username", Icon: "🌈", Kind: KindDecoration, Cost: 700, Slot: SlotUsernameAnimation, Value: "rainbow"},
	{ID: "name_neon", Name: "Neon Username", Description: "Static neon username", Icon: "💡", Kind: KindDecoration, Cost: 500, Slot: SlotUsernameStatic, Value: "neon"},
	{ID: "title_hero", Name: "Title: Hero", Description: "Displays 'Hero' under your name", Icon: "🎖️", Kind: KindDecoration, Cost: 900, Slot: SlotTitle, Value: "Hero"},
	{ID: "title_grinder", Name: "Title: Grinder", Description: "Displays 'Grinder' under your name", Icon: "⚙️", Kind: KindDecoration, Cost: 900, Slot: SlotTitle, Value: "Grinder"},

	// Quest-reward items, not sold in the shop.
	{ID: ItemBoostFocus, Name: "Focus Boost", Description: "+50% XP for 1 hour", Icon: "🎯", Kind: KindBoost, Effect: EffectXPMultiplier, Magnitude: 0.5, Duration: time.Hour},
	{ID: ItemBoostProductivity, Name: "Productivity Boost", Description: "+30% task bonus for 2 hours", Icon: "⚡", Kind: KindBoost, Effect: EffectTaskBonus, Magnitude: 0.3, Duration: 2 * time.Hour},
	{ID: ItemHealthPotion, Name: "Health Potion", Description: "Restores 20 health", Icon: "❤️", Kind: KindInstant, Instant: InstantHealth, Amount: 20},
	{ID: ItemMotivationBoost, Name: "Motivation Boost", Description: "Restores 30 motivation", Icon: "✨", Kind: KindInstant, Instant: InstantMotivation, Amount: 30},
	{ID: ItemXPCrystal, Name: "XP Crystal", Description: "Instant +500 XP", Icon: "💎", Kind: KindInstant, Instant: InstantXP, Amount: 500},
	{ID: ItemDailyBonusScroll, Name: "Daily Bonus Scroll", Description: "Unlocks a special daily quest", Icon: "📜", Kind: KindQuestItem},
}

// FindItem looks an item up by id.
func FindItem(id string) (ItemDef, bool) {
	for _, it := range Catalog {
		if it.ID == id {
			return it, true
		}
	}
	return ItemDef{}, false
}

// ShopItems returns the purchasable subset of the catalog.
func ShopItems() []ItemDef {
	var out []ItemDef
	for _, it := range Catalog {
		if it.Cost > 0 {
			out = append(out, it)
		}
	}
	return out
}
