// Package tower implements the single defensive tower: targeting, firing and
// stat upgrades bought with gold.
package tower

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// EntityType is the core.Entity type reported by the tower
const EntityType = "tower"

// Stats are the base combat stats before buffs
type Stats struct {
	Radius      float64 `yaml:"radius" json:"radius"`
	Range       float64 `yaml:"range" json:"range"`
	AttackSpeed float64 `yaml:"attack_speed" json:"attack_speed"` // attacks per second
	Damage      float64 `yaml:"damage" json:"damage"`
}

// Costs are upgrade prices in gold
type Costs struct {
	Range       int `yaml:"range" json:"range"`
	AttackSpeed int `yaml:"attack_speed" json:"attack_speed"`
	Damage      int `yaml:"damage" json:"damage"`
}

// Config configures a Tower
type Config struct {
	Position   entities.Vec2
	Base       Stats
	Costs      Costs
	Upgrades   Stats   // amount added per purchase; Radius is ignored
	CostGrowth float64 // cost multiplier per purchase, floored
}

// DefaultConfig returns the standard balance for a tower at position
func DefaultConfig(position entities.Vec2) *Config {
	return &Config{
		Position:   position,
		Base:       Stats{Radius: 20, Range: 200, AttackSpeed: 1, Damage: 18},
		Costs:      Costs{Range: 10, AttackSpeed: 10, Damage: 10},
		Upgrades:   Stats{Range: 25, AttackSpeed: 0.5, Damage: 5},
		CostGrowth: 1.5,
	}
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("Base.Radius", cfg.Base.Radius, vb)
	errors.ValidatePositive("Base.Range", cfg.Base.Range, vb)
	errors.ValidatePositive("Base.AttackSpeed", cfg.Base.AttackSpeed, vb)
	errors.ValidatePositive("Base.Damage", cfg.Base.Damage, vb)
	if cfg.Costs.Range <= 0 || cfg.Costs.AttackSpeed <= 0 || cfg.Costs.Damage <= 0 {
		vb.Field("Costs", "must be positive")
	}
	if cfg.CostGrowth <= 1 {
		vb.Field("CostGrowth", "must be greater than 1")
	}
	return vb.Build()
}

// Tower shoots at the nearest enemy in range. The target is held by ID and
// looked up in the live set each tick.
type Tower struct {
	Position    entities.Vec2
	Radius      float64
	Range       float64
	AttackSpeed float64
	Damage      float64

	RangeCost  int
	SpeedCost  int
	DamageCost int

	cfg      Config
	buffs    effects.Buffs
	targetID string
	cooldown float64
}

// New creates a tower
func New(cfg *Config) (*Tower, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	t := &Tower{cfg: *cfg}
	t.Reset()
	return t, nil
}

// Reset restores base stats and costs and drops the target
func (t *Tower) Reset() {
	t.Position = t.cfg.Position
	t.Radius = t.cfg.Base.Radius
	t.Range = t.cfg.Base.Range
	t.AttackSpeed = t.cfg.Base.AttackSpeed
	t.Damage = t.cfg.Base.Damage
	t.RangeCost = t.cfg.Costs.Range
	t.SpeedCost = t.cfg.Costs.AttackSpeed
	t.DamageCost = t.cfg.Costs.Damage
	t.buffs = effects.Buffs{}
	t.targetID = ""
	t.cooldown = 0
}

// GetID implements core.Entity
func (t *Tower) GetID() string {
	return EntityType
}

// GetType implements core.Entity
func (t *Tower) GetType() string {
	return EntityType
}

// SetBuffs replaces the aggregated item buffs
func (t *Tower) SetBuffs(b effects.Buffs) {
	t.buffs = b
}

// Buffs returns the aggregated item buffs in effect
func (t *Tower) Buffs() effects.Buffs {
	return t.buffs
}

// EffectiveRange is the range after buffs
func (t *Tower) EffectiveRange() float64 {
	return t.buffs.Effective(entities.StatRange, t.Range)
}

// EffectiveAttackSpeed is the attack speed after buffs
func (t *Tower) EffectiveAttackSpeed() float64 {
	return t.buffs.Effective(entities.StatAttackSpeed, t.AttackSpeed)
}

// EffectiveDamage is the damage after buffs
func (t *Tower) EffectiveDamage() float64 {
	return t.buffs.Effective(entities.StatDamage, t.Damage)
}

// TargetID returns the current target, empty when idle
func (t *Tower) TargetID() string {
	return t.targetID
}

// Cooldown returns the seconds until the tower may fire again
func (t *Tower) Cooldown() float64 {
	return t.cooldown
}

// Update advances targeting and firing by dt seconds and returns the
// projectile fired this tick, if any
func (t *Tower) Update(enemies []*entities.Enemy, dt float64) *entities.Projectile {
	if t.cooldown > 0 {
		t.cooldown -= dt
	}

	target := t.currentTarget(enemies)
	if target == nil {
		target = t.nearest(enemies)
	}
	if target == nil {
		t.targetID = ""
		return nil
	}
	t.targetID = target.ID

	speed := t.EffectiveAttackSpeed()
	if t.cooldown > 0 || speed <= 0 {
		return nil
	}

	t.cooldown = 1 / speed
	return entities.NewProjectile(t.Position, target.Position, t.EffectiveDamage())
}

// currentTarget resolves the held target, nil when it is gone, dead or out of
// range
func (t *Tower) currentTarget(enemies []*entities.Enemy) *entities.Enemy {
	if t.targetID == "" {
		return nil
	}
	for _, e := range enemies {
		if e.ID == t.targetID {
			if e.IsAlive() && t.inRange(e) {
				return e
			}
			return nil
		}
	}
	return nil
}

// nearest returns the closest live enemy in range; the first found wins ties
func (t *Tower) nearest(enemies []*entities.Enemy) *entities.Enemy {
	var best *entities.Enemy
	bestDist := math.Inf(1)
	for _, e := range enemies {
		if !e.IsAlive() || !t.inRange(e) {
			continue
		}
		if d := t.edgeDistance(e); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func (t *Tower) inRange(e *entities.Enemy) bool {
	return t.edgeDistance(e) < t.EffectiveRange()
}

func (t *Tower) edgeDistance(e *entities.Enemy) float64 {
	return t.Position.Dist(e.Position) - e.Radius
}

// UpgradeRange buys a range upgrade and returns the remaining gold. Gold
// below the cost leaves everything unchanged.
func (t *Tower) UpgradeRange(gold int) int {
	return t.upgrade(gold, &t.RangeCost, &t.Range, t.cfg.Upgrades.Range)
}

// UpgradeSpeed buys an attack speed upgrade and returns the remaining gold
func (t *Tower) UpgradeSpeed(gold int) int {
	return t.upgrade(gold, &t.SpeedCost, &t.AttackSpeed, t.cfg.Upgrades.AttackSpeed)
}

// UpgradeDamage buys a damage upgrade and returns the remaining gold
func (t *Tower) UpgradeDamage(gold int) int {
	return t.upgrade(gold, &t.DamageCost, &t.Damage, t.cfg.Upgrades.Damage)
}

func (t *Tower) upgrade(gold int, cost *int, stat *float64, amount float64) int {
	if gold < *cost {
		return gold
	}
	gold -= *cost
	*stat += amount
	next := int(math.Floor(float64(*cost) * t.cfg.CostGrowth))
	if next <= *cost {
		next = *cost + 1
	}
	*cost = next
	return gold
}

var _ core.Entity = (*Tower)(nil)
