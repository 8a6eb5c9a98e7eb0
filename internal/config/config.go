// Package config loads game balance from an optional YAML file layered over
// the built-in rules of each mode.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/tower-defense/internal/engine/enemies"
	"github.com/KirkDiggler/tower-defense/internal/engine/game"
	"github.com/KirkDiggler/tower-defense/internal/engine/loot"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// Config holds the rules of every mode
type Config struct {
	Standard game.Rules
	Blitz    game.Rules
}

// File is the YAML document. Every field is optional; absent fields keep the
// built-in value.
type File struct {
	Standard *ModeOverrides `yaml:"standard"`
	Blitz    *ModeOverrides `yaml:"blitz"`
}

// ModeOverrides replaces parts of one mode's rules
type ModeOverrides struct {
	StartingGold     *int                `yaml:"starting_gold"`
	StartingLives    *int                `yaml:"starting_lives"`
	SpeedLevels      []float64           `yaml:"speed_levels"`
	Progression      *string             `yaml:"progression"`
	PostHealthGrowth *float64            `yaml:"post_health_growth"`
	Growth           *enemies.Growth     `yaml:"growth"`
	Tower            *TowerOverrides     `yaml:"tower"`
	Drops            *DropOverrides      `yaml:"drops"`
	Archetypes       []enemies.Archetype `yaml:"archetypes"`
}

// StatOverrides replaces individual tower stats
type StatOverrides struct {
	Radius      *float64 `yaml:"radius"`
	Range       *float64 `yaml:"range"`
	AttackSpeed *float64 `yaml:"attack_speed"`
	Damage      *float64 `yaml:"damage"`
}

// CostOverrides replaces individual upgrade prices
type CostOverrides struct {
	Range       *int `yaml:"range"`
	AttackSpeed *int `yaml:"attack_speed"`
	Damage      *int `yaml:"damage"`
}

// TowerOverrides replaces parts of the tower balance
type TowerOverrides struct {
	Base       *StatOverrides `yaml:"base"`
	Costs      *CostOverrides `yaml:"costs"`
	Upgrades   *StatOverrides `yaml:"upgrades"`
	CostGrowth *float64       `yaml:"cost_growth"`
}

// DropOverrides replaces drop chances and rarity tables
type DropOverrides struct {
	NormalChance  *float64            `yaml:"normal_chance"`
	EliteChance   *float64            `yaml:"elite_chance"`
	BossChance    *float64            `yaml:"boss_chance"`
	NormalWeights *loot.RarityWeights `yaml:"normal_weights"`
	EliteWeights  *loot.RarityWeights `yaml:"elite_weights"`
	BossWeights   *loot.RarityWeights `yaml:"boss_weights"`
}

// Defaults returns the built-in rules
func Defaults() *Config {
	return &Config{
		Standard: game.StandardRules(),
		Blitz:    game.BlitzRules(),
	}
}

// Load reads path and applies it over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config file %s", path)
	}
	return cfg, nil
}

// Parse applies a YAML document over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.InvalidArgumentf("invalid yaml: %v", err)
	}

	cfg := Defaults()
	file.Standard.apply(&cfg.Standard)
	file.Blitz.apply(&cfg.Blitz)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the rules of every mode
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if err := c.Standard.Validate(); err != nil {
		vb.Field("standard", err.Error())
	}
	if err := c.Blitz.Validate(); err != nil {
		vb.Field("blitz", err.Error())
	}
	if c.Standard.Mode != game.ModeStandard {
		vb.Field("standard", "mode mismatch")
	}
	if c.Blitz.Mode != game.ModeBlitz {
		vb.Field("blitz", "mode mismatch")
	}
	return vb.Build()
}

// Rules returns a copy of the rules for mode
func (c *Config) Rules(mode game.Mode) (game.Rules, error) {
	var r game.Rules
	switch mode {
	case game.ModeStandard:
		r = c.Standard
	case game.ModeBlitz:
		r = c.Blitz
	default:
		return game.Rules{}, errors.InvalidArgumentf("unknown mode %q", mode)
	}

	r.SpeedLevels = append([]float64(nil), r.SpeedLevels...)
	return r, nil
}

func (o *ModeOverrides) apply(r *game.Rules) {
	if o == nil {
		return
	}

	setInt(&r.StartingGold, o.StartingGold)
	setInt(&r.StartingLives, o.StartingLives)
	setFloat(&r.PostHealthGrowth, o.PostHealthGrowth)
	if len(o.SpeedLevels) > 0 {
		r.SpeedLevels = append([]float64(nil), o.SpeedLevels...)
	}
	if o.Progression != nil {
		r.Progression = enemies.Progression(*o.Progression)
	}
	if o.Growth != nil {
		r.Growth = *o.Growth
	}
	if len(o.Archetypes) > 0 {
		catalog := *r.Enemies
		catalog.Archetypes = append([]enemies.Archetype(nil), o.Archetypes...)
		r.Enemies = &catalog
	}

	if t := o.Tower; t != nil {
		t.Base.apply(&r.Tower.Base.Radius, &r.Tower.Base.Range, &r.Tower.Base.AttackSpeed, &r.Tower.Base.Damage)
		t.Upgrades.apply(&r.Tower.Upgrades.Radius, &r.Tower.Upgrades.Range, &r.Tower.Upgrades.AttackSpeed, &r.Tower.Upgrades.Damage)
		if t.Costs != nil {
			setInt(&r.Tower.Costs.Range, t.Costs.Range)
			setInt(&r.Tower.Costs.AttackSpeed, t.Costs.AttackSpeed)
			setInt(&r.Tower.Costs.Damage, t.Costs.Damage)
		}
		setFloat(&r.Tower.CostGrowth, t.CostGrowth)
	}

	if d := o.Drops; d != nil {
		setFloat(&r.Drops.NormalChance, d.NormalChance)
		setFloat(&r.Drops.EliteChance, d.EliteChance)
		setFloat(&r.Drops.BossChance, d.BossChance)
		setWeights(&r.Drops.NormalWeights, d.NormalWeights)
		setWeights(&r.Drops.EliteWeights, d.EliteWeights)
		setWeights(&r.Drops.BossWeights, d.BossWeights)
	}
}

func (o *StatOverrides) apply(radius, reach, speed, damage *float64) {
	if o == nil {
		return
	}
	setFloat(radius, o.Radius)
	setFloat(reach, o.Range)
	setFloat(speed, o.AttackSpeed)
	setFloat(damage, o.Damage)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setWeights(dst *loot.RarityWeights, v *loot.RarityWeights) {
	if v != nil {
		*dst = *v
	}
}
