package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the game bus
const (
	EventWaveStarted       = "tower.wave_started"
	EventBossSpawned       = "tower.boss_spawned"
	EventEnemyKilled       = "tower.enemy_killed"
	EventEnemyReachedTower = "tower.enemy_reached_tower"
	EventItemDropped       = "tower.item_dropped"
	EventItemRejected      = "tower.item_rejected"
	EventGameOver          = "tower.game_over"
)

// AllEvents lists every event type in publication vocabulary order
var AllEvents = []string{
	EventWaveStarted,
	EventBossSpawned,
	EventEnemyKilled,
	EventEnemyReachedTower,
	EventItemDropped,
	EventItemRejected,
	EventGameOver,
}

// Event context keys
const (
	KeyWave     = "wave"
	KeyTier     = "tier"
	KeyGold     = "gold"
	KeyLives    = "lives"
	KeyEnemy    = "enemy_name"
	KeyItemID   = "item_id"
	KeyItemName = "item_name"
	KeyAction   = "action"
	KeyReplaced = "replaced_item_id"
)

func (g *Game) publish(ctx context.Context, eventType string, target core.Entity, data map[string]any) {
	e := events.NewGameEvent(eventType, g.tower, target)
	for k, v := range data {
		e.Context().Set(k, v)
	}

	if err := g.bus.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish game event",
			"event_type", eventType,
			"error", err)
	}
}
