package game

import (
	"github.com/KirkDiggler/tower-defense/internal/engine/background"
	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// TowerView is the rendered state of the tower
type TowerView struct {
	Position    entities.Vec2 `json:"position"`
	Radius      float64       `json:"radius"`
	Range       float64       `json:"range"`
	AttackSpeed float64       `json:"attack_speed"`
	Damage      float64       `json:"damage"`
	RangeCost   int           `json:"range_cost"`
	SpeedCost   int           `json:"speed_cost"`
	DamageCost  int           `json:"damage_cost"`
	TargetID    string        `json:"target_id,omitempty"`
	Buffs       effects.Buffs `json:"buffs"`
}

// Snapshot is a read-only copy of a match. Nothing in it aliases game state.
type Snapshot struct {
	Seed        int64                       `json:"seed"`
	Mode        Mode                        `json:"mode"`
	Wave        int                         `json:"wave"`
	Tier        string                      `json:"tier"`
	Lives       int                         `json:"lives"`
	Gold        int                         `json:"gold"`
	Speed       float64                     `json:"speed"`
	GameOver    bool                        `json:"game_over"`
	Elapsed     float64                     `json:"elapsed"`
	Kills       int                         `json:"kills"`
	Restarts    int                         `json:"restarts"`
	Pending     int                         `json:"pending"`
	Tower       TowerView                   `json:"tower"`
	Enemies     []entities.Enemy            `json:"enemies"`
	Projectiles []entities.Projectile       `json:"projectiles"`
	Inventory   *entities.InventorySnapshot `json:"inventory"`
	Background  *background.Layout          `json:"background,omitempty"`
}

// Snapshot copies the current state for rendering or transport
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		Seed:     g.seed,
		Mode:     g.rules.Mode,
		Wave:     g.waves.Number(),
		Tier:     g.waves.Tier(),
		Lives:    g.lives,
		Gold:     g.gold,
		Speed:    g.Speed(),
		GameOver: g.over,
		Elapsed:  g.elapsed,
		Kills:    g.kills,
		Restarts: g.restarts,
		Pending:  g.waves.Pending(),
		Tower: TowerView{
			Position:    g.tower.Position,
			Radius:      g.tower.Radius,
			Range:       g.tower.EffectiveRange(),
			AttackSpeed: g.tower.EffectiveAttackSpeed(),
			Damage:      g.tower.EffectiveDamage(),
			RangeCost:   g.tower.RangeCost,
			SpeedCost:   g.tower.SpeedCost,
			DamageCost:  g.tower.DamageCost,
			TargetID:    g.tower.TargetID(),
			Buffs:       g.tower.Buffs(),
		},
		Enemies:     make([]entities.Enemy, len(g.enemies)),
		Projectiles: make([]entities.Projectile, len(g.projectiles)),
		Background:  g.layout.Clone(),
	}
	for i, e := range g.enemies {
		snap.Enemies[i] = *e
	}
	for i, p := range g.projectiles {
		snap.Projectiles[i] = *p
	}
	if g.blitz != nil {
		snap.Inventory = g.blitz.Snapshot()
	} else {
		snap.Inventory = g.stored.Snapshot()
	}
	return snap
}
