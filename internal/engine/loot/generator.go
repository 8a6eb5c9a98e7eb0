// Package loot turns enemy kills into items: it decides whether a kill drops
// anything and, if so, rolls a rarity, an effect and a flavor name.
package loot

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/engine/rng"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/pkg/idgen"
)

// Config configures a Generator
type Config struct {
	Catalog *effects.Catalog
	Policy  DropPolicy
	Roller  dice.Roller     // defaults to dice.DefaultRoller
	IDs     idgen.Generator // defaults to UUIDs prefixed "item"
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	errors.ValidateProbability("Policy.NormalChance", cfg.Policy.NormalChance, vb)
	errors.ValidateProbability("Policy.EliteChance", cfg.Policy.EliteChance, vb)
	errors.ValidateProbability("Policy.BossChance", cfg.Policy.BossChance, vb)
	return vb.Build()
}

// Generator creates items
type Generator struct {
	catalog *effects.Catalog
	policy  DropPolicy
	roller  dice.Roller
	ids     idgen.Generator
}

// NewGenerator creates a loot generator
func NewGenerator(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g := &Generator{
		catalog: cfg.Catalog,
		policy:  cfg.Policy,
		roller:  cfg.Roller,
		ids:     cfg.IDs,
	}
	if g.roller == nil {
		g.roller = dice.DefaultRoller
	}
	if g.ids == nil {
		g.ids = idgen.NewUUID("item")
	}
	return g, nil
}

// Policy returns the drop policy in use
func (g *Generator) Policy() DropPolicy {
	return g.policy
}

// Generate rolls a rarity from weights, a uniform effect of that rarity and a
// name. Rarities with no catalog entries fall back to the common pool.
func (g *Generator) Generate(weights RarityWeights) *entities.Item {
	rarity := weights.Pick(rng.Float(g.roller))

	pool := g.catalog.ByRarity(rarity)
	if len(pool) == 0 {
		pool = g.catalog.ByRarity(entities.RarityCommon)
	}
	if len(pool) == 0 {
		pool = g.catalog.All()
	}
	if len(pool) == 0 {
		return &entities.Item{ID: g.ids.Generate(), Name: FallbackName}
	}

	effect := pool[rng.Intn(g.roller, len(pool))]
	return &entities.Item{
		ID:          g.ids.Generate(),
		Name:        Name(effect, rng.Float(g.roller)),
		Description: effect.Description,
		EffectID:    effect.ID,
	}
}

// DropChance returns the probability that a kill of class drops an item
func (g *Generator) DropChance(class entities.EnemyClass) float64 {
	return g.policy.Chance(class)
}

// RollDrop checks the drop chance for class and generates an item with the
// class's weight table when it succeeds
func (g *Generator) RollDrop(class entities.EnemyClass) (*entities.Item, bool) {
	if !rng.Chance(g.roller, g.DropChance(class)) {
		return nil, false
	}
	return g.Generate(g.policy.Weights(class)), true
}
