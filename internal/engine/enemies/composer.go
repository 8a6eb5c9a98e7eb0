package enemies

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/tower-defense/internal/engine/rng"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/pkg/idgen"
)

// Progression selects how wave sizes and bosses are decided
type Progression string

// Progression policies
const (
	// ProgressionTiered sizes waves from the tier table and rolls for bosses
	ProgressionTiered Progression = "tiered"
	// ProgressionLegacy sizes waves by formula and sends a lone boss every
	// fifth wave
	ProgressionLegacy Progression = "legacy"
)

// BlitzHealthGrowth is the per-wave health growth applied on top of a
// composed blitz wave
const BlitzHealthGrowth = 0.10

// Growth is how fast the scaling inputs rise per wave
type Growth struct {
	Health float64 `yaml:"health" json:"health"`
	Speed  float64 `yaml:"speed" json:"speed"`
}

// DefaultGrowth is the standard curve: +5% health and +2% speed per wave
func DefaultGrowth() Growth {
	return Growth{Health: 0.05, Speed: 0.02}
}

// BlitzGrowth leaves health to ApplyBlitzScaling
func BlitzGrowth() Growth {
	return Growth{Health: 0, Speed: 0.02}
}

// Config configures a Composer
type Config struct {
	Catalog     *Catalog
	Roller      dice.Roller     // defaults to dice.DefaultRoller
	IDs         idgen.Generator // defaults to sequential "enemy" IDs
	Growth      Growth
	Progression Progression // defaults to ProgressionTiered
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	} else if len(cfg.Catalog.Archetypes) == 0 {
		vb.Field("Catalog.Archetypes", "at least one archetype is required")
	}
	if cfg.Progression != "" {
		errors.ValidateEnum("Progression", string(cfg.Progression),
			[]string{string(ProgressionTiered), string(ProgressionLegacy)}, vb)
	}
	return vb.Build()
}

// Composer builds the roster of a wave
type Composer struct {
	catalog     *Catalog
	roller      dice.Roller
	ids         idgen.Generator
	growth      Growth
	progression Progression
}

// NewComposer creates a wave composer
func NewComposer(cfg *Config) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := &Composer{
		catalog:     cfg.Catalog,
		roller:      cfg.Roller,
		ids:         cfg.IDs,
		growth:      cfg.Growth,
		progression: cfg.Progression,
	}
	if c.roller == nil {
		c.roller = dice.DefaultRoller
	}
	if c.ids == nil {
		c.ids = idgen.NewSequential("enemy")
	}
	if c.progression == "" {
		c.progression = ProgressionTiered
	}
	return c, nil
}

// Catalog returns the table the composer draws from
func (c *Composer) Catalog() *Catalog {
	return c.catalog
}

// Compose returns the enemies of wave in spawn order, positioned at the
// origin. Regular enemies come first; a boss, if any, is last.
func (c *Composer) Compose(wave int) []*entities.Enemy {
	if c.progression == ProgressionLegacy {
		return c.composeLegacy(wave)
	}

	tier := c.catalog.Tier(wave)
	available := c.catalog.Available(wave)
	if len(available) == 0 {
		return nil
	}

	count := int(math.Floor(float64(tier.MaxEnemies) * math.Min(1, 0.8+0.02*float64(wave))))
	out := make([]*entities.Enemy, 0, count+1)

	for i := 0; i < count; i++ {
		archetype := pickWeighted(available, rng.Float(c.roller))
		out = append(out, c.build(archetype, wave, false, c.rollElite(tier.EliteChance)))
	}

	bosses := c.catalog.AvailableBosses(wave)
	if len(bosses) > 0 && rng.Chance(c.roller, tier.BossChance) {
		boss := pickWeighted(bosses, rng.Float(c.roller))
		out = append(out, c.build(boss, wave, true, nil))
	}

	return out
}

func (c *Composer) composeLegacy(wave int) []*entities.Enemy {
	if IsLegacyBossWave(wave) {
		return []*entities.Enemy{c.build(c.catalog.LegacyBoss, wave, true, nil)}
	}

	available := c.catalog.Available(wave)
	if len(available) == 0 {
		return nil
	}

	count := LegacyCount(wave)
	out := make([]*entities.Enemy, 0, count)
	for i := 0; i < count; i++ {
		archetype := pickWeighted(available, rng.Float(c.roller))
		out = append(out, c.build(archetype, wave, false, c.rollElite(legacyEliteChance(wave))))
	}
	return out
}

func (c *Composer) rollElite(chance float64) *EliteModifier {
	if !rng.Chance(c.roller, chance) || len(c.catalog.Elites) == 0 {
		return nil
	}
	m := c.catalog.Elites[rng.Intn(c.roller, len(c.catalog.Elites))]
	return &m
}

func (c *Composer) build(a Archetype, wave int, boss bool, elite *EliteModifier) *entities.Enemy {
	hp := a.HP * scaled(1+float64(wave-1)*c.growth.Health, a.HealthScaling)
	speed := a.Speed * scaled(1+float64(wave-1)*c.growth.Speed, a.SpeedScaling)
	gold := a.Gold
	name, color := a.Name, a.Color

	e := &entities.Enemy{
		ID:        c.ids.Generate(),
		Archetype: a.Key,
		Radius:    a.Size,
		IsBoss:    boss,
	}

	if elite != nil && !boss {
		hp = math.Floor(hp * elite.HPMultiplier)
		speed = math.Floor(speed * elite.SpeedMultiplier)
		gold = int(math.Floor(float64(gold) * elite.GoldMultiplier))
		name = elite.Name + " " + name
		color = elite.Color
		e.IsElite = true
		e.EliteModifier = elite.Key
	}

	e.Name = name
	e.Color = color
	e.HP = hp
	e.MaxHP = hp
	e.Speed = speed
	e.GoldValue = gold
	return e
}

// scaled damps a growth input by an archetype factor
func scaled(input, factor float64) float64 {
	return 1 + (input-1)*factor
}

// pickWeighted walks the cumulative weights; draw is in [0, 1)
func pickWeighted(list []Archetype, draw float64) Archetype {
	total := 0.0
	for _, a := range list {
		total += a.Weight
	}

	r := draw * total
	for _, a := range list {
		r -= a.Weight
		if r <= 0 {
			return a
		}
	}
	return list[0]
}

// ApplyBlitzScaling multiplies the health of composed enemies by
// 1 + (wave-1)*growth, floored
func ApplyBlitzScaling(enemies []*entities.Enemy, wave int, growth float64) {
	mult := 1 + float64(wave-1)*growth
	for _, e := range enemies {
		e.HP = math.Floor(e.HP * mult)
		e.MaxHP = e.HP
	}
}

// LegacyCount is the enemy count of the legacy progression
func LegacyCount(wave int) int {
	switch {
	case IsLegacyBossWave(wave):
		return 1
	case wave <= 2:
		return 2 + wave
	case wave <= 8:
		return 2 * wave
	default:
		return int(math.Floor(16 * math.Pow(1.2, float64(wave-8))))
	}
}

// IsLegacyBossWave reports whether the legacy progression sends a boss
func IsLegacyBossWave(wave int) bool {
	return wave > 0 && wave%5 == 0
}

func legacyEliteChance(wave int) float64 {
	switch {
	case wave >= 6:
		return 0.2
	case wave >= 3:
		return 0.1
	default:
		return 0
	}
}
