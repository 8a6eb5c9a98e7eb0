package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EnemyClass drives drop chances and loot weights
type EnemyClass string

// Enemy classes
const (
	EnemyClassNormal EnemyClass = "normal"
	EnemyClassElite  EnemyClass = "elite"
	EnemyClassBoss   EnemyClass = "boss"
)

// EntityTypeEnemy is the core.Entity type reported by enemies
const EntityTypeEnemy = "enemy"

// ArrivalDistance is how close an enemy must get to the tower to count as
// having reached it
const ArrivalDistance = 20.0

// Enemy is a live attacker. Archetype differences are data only.
type Enemy struct {
	ID            string  `json:"id"`
	Archetype     string  `json:"archetype"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	EliteModifier string  `json:"elite_modifier,omitempty"`
	Position      Vec2    `json:"position"`
	Radius        float64 `json:"radius"`
	HP            float64 `json:"hp"`
	MaxHP         float64 `json:"max_hp"`
	Speed         float64 `json:"speed"`
	GoldValue     int     `json:"gold_value"`
	IsBoss        bool    `json:"is_boss"`
	IsElite       bool    `json:"is_elite"`

	HasDroppedLoot   bool `json:"-"` // gold and loot are awarded at most once
	HasReachedTarget bool `json:"-"`
}

// GetID implements core.Entity
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType implements core.Entity
func (e *Enemy) GetType() string {
	return EntityTypeEnemy
}

// Class returns the enemy's loot class
func (e *Enemy) Class() EnemyClass {
	switch {
	case e.IsBoss:
		return EnemyClassBoss
	case e.IsElite:
		return EnemyClassElite
	default:
		return EnemyClassNormal
	}
}

// IsAlive reports whether the enemy still has hit points
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// MoveToward advances the enemy along the current bearing to target and flags
// arrival once within ArrivalDistance
func (e *Enemy) MoveToward(target Vec2, dt float64) {
	if e.HasReachedTarget {
		return
	}

	heading := target.Sub(e.Position)
	e.Position = e.Position.Add(FromAngle(heading.Angle()).Scale(e.Speed * dt))

	if e.Position.Dist(target) < ArrivalDistance {
		e.HasReachedTarget = true
	}
}

// TakeDamage subtracts amount from HP
func (e *Enemy) TakeDamage(amount float64) {
	e.HP -= amount
}

var _ core.Entity = (*Enemy)(nil)
