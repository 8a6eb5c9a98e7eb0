package game

import (
	"github.com/KirkDiggler/tower-defense/internal/engine/enemies"
	"github.com/KirkDiggler/tower-defense/internal/engine/loot"
	"github.com/KirkDiggler/tower-defense/internal/engine/tower"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// Mode selects a rule set
type Mode string

// Game modes
const (
	ModeStandard Mode = "standard"
	ModeBlitz    Mode = "blitz"
)

// Modes lists the supported modes
var Modes = []Mode{ModeStandard, ModeBlitz}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown mode %q", s)
}

// Rules is the balance of one mode. Modes differ only in data.
type Rules struct {
	Mode          Mode
	StartingGold  int
	StartingLives int

	Tower       tower.Config // Position is ignored; the tower sits at the field centre
	SpeedLevels []float64

	Drops            loot.DropPolicy
	Enemies          *enemies.Catalog
	Growth           enemies.Growth
	PostHealthGrowth float64
	Progression      enemies.Progression
}

// StandardRules is the persistent-inventory mode
func StandardRules() Rules {
	return Rules{
		Mode:          ModeStandard,
		StartingGold:  50,
		StartingLives: 10,
		Tower:         *tower.DefaultConfig(entities.Vec2{}),
		SpeedLevels:   []float64{1, 1.5, 2},
		Drops:         loot.StandardPolicy(),
		Enemies:       enemies.DefaultCatalog(),
		Growth:        enemies.DefaultGrowth(),
		Progression:   enemies.ProgressionTiered,
	}
}

// BlitzRules is the fast mode: richer drops, auto-merging inventory and
// steeper health growth
func BlitzRules() Rules {
	r := StandardRules()
	r.Mode = ModeBlitz
	r.SpeedLevels = []float64{1, 2, 3}
	r.Drops = loot.BlitzPolicy()
	r.Growth = enemies.BlitzGrowth()
	r.PostHealthGrowth = enemies.BlitzHealthGrowth
	return r
}

// RulesFor returns the built-in rules of mode
func RulesFor(mode Mode) (Rules, error) {
	switch mode {
	case ModeStandard:
		return StandardRules(), nil
	case ModeBlitz:
		return BlitzRules(), nil
	default:
		return Rules{}, errors.InvalidArgumentf("unknown mode %q", mode)
	}
}

// Validate validates the rules
func (r *Rules) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("Mode", string(r.Mode), []string{string(ModeStandard), string(ModeBlitz)}, vb)
	if r.StartingLives <= 0 {
		vb.Field("StartingLives", "must be positive")
	}
	if r.StartingGold < 0 {
		vb.Field("StartingGold", "must not be negative")
	}
	if len(r.SpeedLevels) == 0 {
		vb.Field("SpeedLevels", "at least one level is required")
	}
	for i, s := range r.SpeedLevels {
		if s <= 0 {
			vb.Fieldf("SpeedLevels", "level %d must be positive", i)
		}
	}
	if r.Enemies == nil {
		vb.RequiredField("Enemies")
	}
	if r.Progression != "" {
		errors.ValidateEnum("Progression", string(r.Progression),
			[]string{string(enemies.ProgressionTiered), string(enemies.ProgressionLegacy)}, vb)
	}
	errors.ValidateProbability("Drops.NormalChance", r.Drops.NormalChance, vb)
	errors.ValidateProbability("Drops.EliteChance", r.Drops.EliteChance, vb)
	errors.ValidateProbability("Drops.BossChance", r.Drops.BossChance, vb)
	if err := r.Tower.Validate(); err != nil {
		vb.Field("Tower", err.Error())
	}
	return vb.Build()
}
