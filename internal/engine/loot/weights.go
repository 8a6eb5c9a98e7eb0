package loot

import (
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// RarityWeights are relative selection weights per rarity
type RarityWeights struct {
	Common    float64 `yaml:"common" json:"common"`
	Rare      float64 `yaml:"rare" json:"rare"`
	Epic      float64 `yaml:"epic" json:"epic"`
	Legendary float64 `yaml:"legendary" json:"legendary"`
}

// DefaultWeights is the standard 60/25/12/3 table
func DefaultWeights() RarityWeights {
	return RarityWeights{Common: 60, Rare: 25, Epic: 12, Legendary: 3}
}

// BlitzNormalWeights skews normal-enemy drops toward common items
func BlitzNormalWeights() RarityWeights {
	return RarityWeights{Common: 75, Rare: 20, Epic: 4, Legendary: 1}
}

// Of returns the weight for r
func (w RarityWeights) Of(r entities.Rarity) float64 {
	switch r {
	case entities.RarityCommon:
		return w.Common
	case entities.RarityRare:
		return w.Rare
	case entities.RarityEpic:
		return w.Epic
	case entities.RarityLegendary:
		return w.Legendary
	default:
		return 0
	}
}

// Total sums all weights
func (w RarityWeights) Total() float64 {
	return w.Common + w.Rare + w.Epic + w.Legendary
}

// Pick maps a draw in [0, 1) onto a rarity by cumulative weight. A table with
// no weight always yields common.
func (w RarityWeights) Pick(draw float64) entities.Rarity {
	total := w.Total()
	if total <= 0 {
		return entities.RarityCommon
	}

	remaining := draw * total
	for _, r := range entities.Rarities {
		weight := w.Of(r)
		if weight <= 0 {
			continue
		}
		if remaining < weight {
			return r
		}
		remaining -= weight
	}
	return entities.RarityCommon
}

// DropPolicy holds the per-class drop chance and weight table of a mode
type DropPolicy struct {
	NormalChance float64 `yaml:"normal_chance"`
	EliteChance  float64 `yaml:"elite_chance"`
	BossChance   float64 `yaml:"boss_chance"`

	NormalWeights RarityWeights `yaml:"normal_weights"`
	EliteWeights  RarityWeights `yaml:"elite_weights"`
	BossWeights   RarityWeights `yaml:"boss_weights"`
}

// StandardPolicy is the drop table of the standard mode
func StandardPolicy() DropPolicy {
	return DropPolicy{
		NormalChance:  0.02,
		EliteChance:   0.07,
		BossChance:    0.30,
		NormalWeights: DefaultWeights(),
		EliteWeights:  DefaultWeights(),
		BossWeights:   DefaultWeights(),
	}
}

// BlitzPolicy drops more often but mostly commons from normal enemies
func BlitzPolicy() DropPolicy {
	return DropPolicy{
		NormalChance:  0.10,
		EliteChance:   0.20,
		BossChance:    0.30,
		NormalWeights: BlitzNormalWeights(),
		EliteWeights:  DefaultWeights(),
		BossWeights:   DefaultWeights(),
	}
}

// Chance returns the drop probability for class
func (p DropPolicy) Chance(class entities.EnemyClass) float64 {
	switch class {
	case entities.EnemyClassBoss:
		return p.BossChance
	case entities.EnemyClassElite:
		return p.EliteChance
	default:
		return p.NormalChance
	}
}

// Weights returns the rarity table used for drops from class
func (p DropPolicy) Weights(class entities.EnemyClass) RarityWeights {
	switch class {
	case entities.EnemyClassBoss:
		return p.BossWeights
	case entities.EnemyClassElite:
		return p.EliteWeights
	default:
		return p.NormalWeights
	}
}
