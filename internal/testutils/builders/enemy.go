// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// EnemyBuilder provides a fluent interface for building test Enemy instances
type EnemyBuilder struct {
	enemy *entities.Enemy
}

// NewEnemyBuilder creates a basic enemy at the origin with 30 HP
func NewEnemyBuilder() *EnemyBuilder {
	return &EnemyBuilder{
		enemy: &entities.Enemy{
			ID:        "enemy-test-1",
			Archetype: "basic",
			Name:      "Basic Enemy",
			Color:     "#ff4444",
			Radius:    15,
			HP:        30,
			MaxHP:     30,
			Speed:     30,
			GoldValue: 5,
		},
	}
}

// WithID sets the enemy ID
func (b *EnemyBuilder) WithID(id string) *EnemyBuilder {
	b.enemy.ID = id
	return b
}

// At places the enemy
func (b *EnemyBuilder) At(x, y float64) *EnemyBuilder {
	b.enemy.Position = entities.Vec2{X: x, Y: y}
	return b
}

// WithHP sets current and max HP
func (b *EnemyBuilder) WithHP(hp float64) *EnemyBuilder {
	b.enemy.HP = hp
	b.enemy.MaxHP = hp
	return b
}

// WithRadius sets the enemy radius
func (b *EnemyBuilder) WithRadius(r float64) *EnemyBuilder {
	b.enemy.Radius = r
	return b
}

// WithSpeed sets the movement speed
func (b *EnemyBuilder) WithSpeed(speed float64) *EnemyBuilder {
	b.enemy.Speed = speed
	return b
}

// WithGold sets the gold reward
func (b *EnemyBuilder) WithGold(gold int) *EnemyBuilder {
	b.enemy.GoldValue = gold
	return b
}

// AsBoss flags the enemy as a boss
func (b *EnemyBuilder) AsBoss() *EnemyBuilder {
	b.enemy.IsBoss = true
	b.enemy.IsElite = false
	return b
}

// AsElite flags the enemy as an elite
func (b *EnemyBuilder) AsElite() *EnemyBuilder {
	b.enemy.IsElite = true
	b.enemy.IsBoss = false
	return b
}

// Build returns the enemy
func (b *EnemyBuilder) Build() *entities.Enemy {
	e := *b.enemy
	return &e
}
