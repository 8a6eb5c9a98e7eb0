package loot

import (
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// FallbackName is used when no flavor names exist for a stat and rarity
const FallbackName = "Mysterious Artifact"

var nameTemplates = map[entities.Stat]map[entities.Rarity][]string{
	entities.StatDamage: {
		entities.RarityCommon:    {"Iron Blade", "Sharp Edge", "Power Core"},
		entities.RarityRare:      {"Steel Striker", "Vorpal Weapon", "Fury Engine"},
		entities.RarityEpic:      {"Dragonslayer", "Void Crusher", "Phoenix Fang"},
		entities.RarityLegendary: {"Apocalypse", "World Ender", "Divine Wrath"},
	},
	entities.StatRange: {
		entities.RarityCommon:    {"Scope", "Lens", "Spyglass"},
		entities.RarityRare:      {"Eagle Eye", "Far Sight", "Hunter's Mark"},
		entities.RarityEpic:      {"Omniscope", "Stellar Viewer", "Infinite Gaze"},
		entities.RarityLegendary: {"Eye of the Gods", "Universe Scanner", "Cosmic Vision"},
	},
	entities.StatAttackSpeed: {
		entities.RarityCommon:    {"Quick Draw", "Swift Strike", "Rapid Fire"},
		entities.RarityRare:      {"Lightning Bolt", "Tempest Core", "Storm Engine"},
		entities.RarityEpic:      {"Time Warp", "Chrono Trigger", "Velocity Master"},
		entities.RarityLegendary: {"Bullet Time", "Infinity Rush", "Temporal Overdrive"},
	},
	entities.StatAll: {
		entities.RarityLegendary: {"Perfect Harmony", "Master's Touch", "Omnipotence"},
	},
}

// Names returns the flavor names for an effect's stat and rarity
func Names(effect *entities.Effect) []string {
	return nameTemplates[effect.TargetStat][effect.Rarity]
}

// Name picks a flavor name for effect using a draw in [0, 1)
func Name(effect *entities.Effect, draw float64) string {
	names := Names(effect)
	if len(names) == 0 {
		return FallbackName
	}
	idx := int(draw * float64(len(names)))
	if idx >= len(names) {
		idx = len(names) - 1
	}
	return names[idx]
}
