// Package entities provides the core data structures of a tower defense match.
package entities

// Stat names a tower stat an effect can modify
type Stat string

// Tower stats
const (
	StatDamage      Stat = "damage"
	StatRange       Stat = "range"
	StatAttackSpeed Stat = "attackSpeed"
	StatAll         Stat = "all" // applies to damage, range and attackSpeed
)

// TowerStats lists the concrete stats in display order
var TowerStats = []Stat{StatDamage, StatRange, StatAttackSpeed}

// ModifierKind says how an effect's value combines with a base stat
type ModifierKind string

// Modifier kinds
const (
	ModifierPercentage ModifierKind = "percentage" // value is a fraction, 0.10 == +10%
	ModifierFlat       ModifierKind = "flat"
)

// Rarity is the loot tier of an effect
type Rarity string

// Rarities
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists the tiers from most to least common
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Color returns the display color associated with the rarity
func (r Rarity) Color() string {
	switch r {
	case RarityRare:
		return "#0099ff"
	case RarityEpic:
		return "#9933ff"
	case RarityLegendary:
		return "#ff9900"
	default:
		return "#ffffff"
	}
}

// Modifier is one signed change to one stat
type Modifier struct {
	TargetStat Stat         `json:"target_stat" yaml:"target_stat"`
	Kind       ModifierKind `json:"modifier" yaml:"modifier"`
	Value      float64      `json:"value" yaml:"value"`
}

// Effect is an immutable catalog entry describing what an item does
type Effect struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Modifier
	Rarity         Rarity    `json:"rarity"`
	NegativeEffect *Modifier `json:"negative_effect,omitempty"` // trade-off applied alongside the primary modifier
}
