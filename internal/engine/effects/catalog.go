// Package effects holds the effect catalog and reduces equipped items into
// tower stat bonuses.
package effects

import (
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// Resolver looks effects up by ID
type Resolver interface {
	Get(id string) (*entities.Effect, bool)
}

// Catalog is an immutable, ordered set of effects
type Catalog struct {
	byID    map[string]*entities.Effect
	ordered []*entities.Effect
}

// NewCatalog builds a catalog. Order is kept because loot picks index into it.
func NewCatalog(defs []entities.Effect) (*Catalog, error) {
	vb := errors.NewValidationBuilder()
	c := &Catalog{byID: make(map[string]*entities.Effect, len(defs))}

	for i := range defs {
		def := defs[i]
		switch {
		case def.ID == "":
			vb.Fieldf("effects", "entry %d has no id", i)
			continue
		case c.byID[def.ID] != nil:
			vb.Fieldf(def.ID, "duplicate effect id")
			continue
		}
		c.byID[def.ID] = &def
		c.ordered = append(c.ordered, &def)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := NewCatalog(defaultEffects)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the effect with id
func (c *Catalog) Get(id string) (*entities.Effect, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// All returns every effect in catalog order
func (c *Catalog) All() []*entities.Effect {
	out := make([]*entities.Effect, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByRarity returns the effects of one rarity in catalog order
func (c *Catalog) ByRarity(r entities.Rarity) []*entities.Effect {
	var out []*entities.Effect
	for _, e := range c.ordered {
		if e.Rarity == r {
			out = append(out, e)
		}
	}
	return out
}

func pct(stat entities.Stat, v float64) entities.Modifier {
	return entities.Modifier{TargetStat: stat, Kind: entities.ModifierPercentage, Value: v}
}

func flat(stat entities.Stat, v float64) entities.Modifier {
	return entities.Modifier{TargetStat: stat, Kind: entities.ModifierFlat, Value: v}
}

var defaultEffects = []entities.Effect{
	{ID: "DMG_10_PERCENT", Description: "Increases tower damage by 10%", Modifier: pct(entities.StatDamage, 0.10), Rarity: entities.RarityCommon},
	{ID: "DMG_25_PERCENT", Description: "Increases tower damage by 25%", Modifier: pct(entities.StatDamage, 0.25), Rarity: entities.RarityRare},
	{ID: "DMG_5_FLAT", Description: "Increases tower damage by 5", Modifier: flat(entities.StatDamage, 5), Rarity: entities.RarityCommon},
	{ID: "DMG_15_FLAT", Description: "Increases tower damage by 15", Modifier: flat(entities.StatDamage, 15), Rarity: entities.RarityRare},

	{ID: "RANGE_10_PERCENT", Description: "Increases tower range by 10%", Modifier: pct(entities.StatRange, 0.10), Rarity: entities.RarityCommon},
	{ID: "RANGE_30_PERCENT", Description: "Increases tower range by 30%", Modifier: pct(entities.StatRange, 0.30), Rarity: entities.RarityEpic},
	{ID: "RANGE_20_FLAT", Description: "Increases tower range by 20", Modifier: flat(entities.StatRange, 20), Rarity: entities.RarityCommon},

	{ID: "SPEED_10_PERCENT", Description: "Increases tower attack speed by 10%", Modifier: pct(entities.StatAttackSpeed, 0.10), Rarity: entities.RarityCommon},
	{ID: "SPEED_20_PERCENT", Description: "Increases tower attack speed by 20%", Modifier: pct(entities.StatAttackSpeed, 0.20), Rarity: entities.RarityRare},
	{ID: "SPEED_50_PERCENT", Description: "Increases tower attack speed by 50%", Modifier: pct(entities.StatAttackSpeed, 0.50), Rarity: entities.RarityLegendary},

	{
		ID:          "BERSERKER_RAGE",
		Description: "Increases damage by 40% but reduces range by 20%",
		Modifier:    pct(entities.StatDamage, 0.40),
		Rarity:      entities.RarityLegendary,
		NegativeEffect: &entities.Modifier{
			TargetStat: entities.StatRange, Kind: entities.ModifierPercentage, Value: -0.20,
		},
	},
	{
		ID:          "SNIPER_SCOPE",
		Description: "Increases range by 60% but reduces attack speed by 30%",
		Modifier:    pct(entities.StatRange, 0.60),
		Rarity:      entities.RarityLegendary,
		NegativeEffect: &entities.Modifier{
			TargetStat: entities.StatAttackSpeed, Kind: entities.ModifierPercentage, Value: -0.30,
		},
	},
	{ID: "PERFECT_BALANCE", Description: "Increases all stats by 15%", Modifier: pct(entities.StatAll, 0.15), Rarity: entities.RarityLegendary},
}
