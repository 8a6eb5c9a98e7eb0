// Package game is the match aggregate. It owns the tower, the wave schedule,
// live enemies and projectiles, the inventory, gold and lives, and mutates
// them only inside Update or an explicit command.
package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/tower-defense/internal/engine/background"
	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/engine/enemies"
	"github.com/KirkDiggler/tower-defense/internal/engine/inventory"
	"github.com/KirkDiggler/tower-defense/internal/engine/loot"
	"github.com/KirkDiggler/tower-defense/internal/engine/rng"
	"github.com/KirkDiggler/tower-defense/internal/engine/spawn"
	"github.com/KirkDiggler/tower-defense/internal/engine/tower"
	"github.com/KirkDiggler/tower-defense/internal/engine/wave"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/pkg/idgen"
	inventoryrepo "github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
)

// Default field size
const (
	DefaultWidth  = 1600.0
	DefaultHeight = 900.0
)

// Config configures a Game
type Config struct {
	Width  float64
	Height float64
	Seed   *int64 // nil picks a random seed
	Rules  Rules

	// Effects resolves item effects; defaults to the built-in catalog
	Effects *effects.Catalog

	// Repository persists the standard inventory; nil keeps it in memory.
	// Blitz inventories are never persisted.
	Repository inventoryrepo.Repository
	OwnerID    string

	// Roller drives composition, elites and loot; defaults to
	// dice.DefaultRoller. Spawn geometry always follows the seed.
	Roller dice.Roller

	Bus     events.EventBus // defaults to a fresh bus
	ItemIDs idgen.Generator // defaults to UUIDs prefixed "item"
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Width < 0 {
		vb.Field("Width", "must not be negative")
	}
	if cfg.Height < 0 {
		vb.Field("Height", "must not be negative")
	}
	if cfg.Seed != nil && *cfg.Seed < 0 {
		vb.Field("Seed", "must not be negative")
	}
	if err := cfg.Rules.Validate(); err != nil {
		vb.Field("Rules", err.Error())
	}
	if cfg.Repository != nil && cfg.OwnerID == "" {
		vb.RequiredField("OwnerID")
	}
	return vb.Build()
}

// Game is a single match
type Game struct {
	width  float64
	height float64
	seed   int64
	rules  Rules

	effects *effects.Catalog
	roller  dice.Roller
	bus     events.EventBus
	loot    *loot.Generator

	tower       *tower.Tower
	waves       *wave.Manager
	enemies     []*entities.Enemy
	projectiles []*entities.Projectile
	layout      *background.Layout

	stored *inventory.Inventory // standard mode
	blitz  *inventory.Blitz     // blitz mode

	lives      int
	gold       int
	speedIndex int
	over       bool
	elapsed    float64
	kills      int
	restarts   int
}

// New creates a game with wave 1 queued. A standard game loads its
// persisted inventory.
func New(ctx context.Context, cfg *Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g := &Game{
		width:   cfg.Width,
		height:  cfg.Height,
		rules:   cfg.Rules,
		effects: cfg.Effects,
		roller:  cfg.Roller,
		bus:     cfg.Bus,
	}
	if g.width == 0 {
		g.width = DefaultWidth
	}
	if g.height == 0 {
		g.height = DefaultHeight
	}
	if cfg.Seed != nil {
		g.seed = *cfg.Seed
	} else {
		g.seed = rng.NewSeed()
	}
	if g.effects == nil {
		g.effects = effects.Default()
	}
	if g.roller == nil {
		g.roller = dice.DefaultRoller
	}
	if g.bus == nil {
		g.bus = events.NewBus()
	}

	towerCfg := g.rules.Tower
	towerCfg.Position = entities.Vec2{X: g.width / 2, Y: g.height / 2}
	t, err := tower.New(&towerCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tower")
	}
	g.tower = t

	g.loot, err = loot.NewGenerator(&loot.Config{
		Catalog: g.effects,
		Policy:  g.rules.Drops,
		Roller:  g.roller,
		IDs:     cfg.ItemIDs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create loot generator")
	}

	switch g.rules.Mode {
	case ModeBlitz:
		g.blitz, err = inventory.NewBlitz(&inventory.BlitzConfig{Catalog: g.effects})
	default:
		g.stored, err = inventory.New(&inventory.Config{
			Repository: cfg.Repository,
			OwnerID:    cfg.OwnerID,
			Mode:       string(g.rules.Mode),
		})
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create inventory")
	}

	if err := g.reset(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// reset rebuilds all per-run state from the seed
func (g *Game) reset(ctx context.Context) error {
	composer, err := enemies.NewComposer(&enemies.Config{
		Catalog:     g.rules.Enemies,
		Roller:      g.roller,
		IDs:         idgen.NewSequential("enemy"),
		Growth:      g.rules.Growth,
		Progression: g.rules.Progression,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create wave composer")
	}

	positioner, err := spawn.New(&spawn.Config{Width: g.width, Height: g.height, Seed: g.seed})
	if err != nil {
		return errors.Wrap(err, "failed to create spawn positioner")
	}

	g.tower.Reset()
	waves, err := wave.New(&wave.Config{
		Composer:         composer,
		Positioner:       positioner,
		Target:           g.tower.Position,
		PostHealthGrowth: g.rules.PostHealthGrowth,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create wave manager")
	}

	g.waves = waves
	g.enemies = nil
	g.projectiles = nil
	g.layout = background.Generate(g.seed, g.width, g.height)
	g.lives = g.rules.StartingLives
	g.gold = g.rules.StartingGold
	g.speedIndex = 0
	g.over = false
	g.elapsed = 0
	g.kills = 0

	if g.blitz != nil {
		g.blitz.Clear()
	} else {
		g.stored.Load(ctx)
	}
	g.refreshBuffs()

	g.publishWaveStarted(ctx)
	return nil
}

// Restart starts over with the same seed. A standard inventory is reloaded
// from storage; a blitz inventory is emptied.
func (g *Game) Restart(ctx context.Context) error {
	slog.Info("restarting game",
		"seed", g.seed,
		"mode", g.rules.Mode,
		"wave", g.waves.Number())
	if err := g.reset(ctx); err != nil {
		return err
	}
	g.restarts++
	return nil
}

// Update advances the match by dt seconds of wall time, scaled by the speed
// multiplier. A finished game ignores updates.
func (g *Game) Update(ctx context.Context, dt float64) {
	if g.over {
		return
	}
	dt *= g.Speed()
	g.elapsed += dt

	if p := g.tower.Update(g.enemies, dt); p != nil {
		g.projectiles = append(g.projectiles, p)
	}

	for _, e := range g.waves.Update(dt) {
		g.enemies = append(g.enemies, e)
		if e.IsBoss {
			g.publish(ctx, EventBossSpawned, e, map[string]any{
				KeyWave:  g.waves.Number(),
				KeyEnemy: e.Name,
			})
		}
	}

	for _, e := range g.enemies {
		e.MoveToward(g.tower.Position, dt)
	}
	for _, p := range g.projectiles {
		p.Update(dt, g.width, g.height)
	}

	g.resolveArrivals(ctx)
	g.resolveCollisions(ctx)

	if g.lives <= 0 {
		g.over = true
		g.publish(ctx, EventGameOver, nil, map[string]any{
			KeyWave:  g.waves.Number(),
			KeyGold:  g.gold,
			KeyLives: g.lives,
		})
		return
	}

	if g.waves.Complete(len(g.enemies)) {
		g.publishWaveStarted(ctx)
	}
}

func (g *Game) resolveArrivals(ctx context.Context) {
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		if !e.HasReachedTarget {
			kept = append(kept, e)
			continue
		}
		g.lives--
		g.publish(ctx, EventEnemyReachedTower, e, map[string]any{
			KeyLives: g.lives,
			KeyEnemy: e.Name,
		})
	}
	clearTail(g.enemies, len(kept))
	g.enemies = kept
}

func (g *Game) resolveCollisions(ctx context.Context) {
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		killed := false
		for _, p := range g.projectiles {
			if !p.Active || !p.Hits(e) {
				continue
			}
			e.TakeDamage(p.Damage)
			p.Active = false

			if !e.IsAlive() && !e.HasDroppedLoot {
				e.HasDroppedLoot = true
				g.onKill(ctx, e)
				killed = true
				break
			}
		}
		if !killed {
			kept = append(kept, e)
		}
	}
	clearTail(g.enemies, len(kept))
	g.enemies = kept

	live := g.projectiles[:0]
	for _, p := range g.projectiles {
		if p.Active {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(g.projectiles); i++ {
		g.projectiles[i] = nil
	}
	g.projectiles = live
}

// onKill awards gold once and rolls for loot
func (g *Game) onKill(ctx context.Context, e *entities.Enemy) {
	g.gold += e.GoldValue
	g.kills++
	g.publish(ctx, EventEnemyKilled, e, map[string]any{
		KeyGold:  g.gold,
		KeyWave:  g.waves.Number(),
		KeyEnemy: e.Name,
	})

	item, ok := g.loot.RollDrop(e.Class())
	if !ok {
		return
	}
	g.receive(ctx, item)
}

// receive routes a dropped item into the mode's inventory
func (g *Game) receive(ctx context.Context, item *entities.Item) {
	data := map[string]any{
		KeyItemID:   item.ID,
		KeyItemName: item.Name,
	}

	if g.blitz != nil {
		res := g.blitz.TryAdd(item)
		data[KeyAction] = string(res.Action)
		if !res.Accepted {
			g.publish(ctx, EventItemRejected, nil, data)
			return
		}
		if res.Replaced != nil {
			data[KeyReplaced] = res.Replaced.ID
		}
		g.refreshBuffs()
		g.publish(ctx, EventItemDropped, nil, data)
		return
	}

	if !g.stored.Add(ctx, item) {
		data[KeyAction] = string(inventory.ActionRejectedFull)
		g.publish(ctx, EventItemRejected, nil, data)
		return
	}
	data[KeyAction] = string(inventory.ActionAdded)
	g.publish(ctx, EventItemDropped, nil, data)
}

func (g *Game) refreshBuffs() {
	g.tower.SetBuffs(effects.Aggregate(g.effects, g.activeItems()))
}

func (g *Game) activeItems() []*entities.Item {
	if g.blitz != nil {
		return g.blitz.ActiveItems()
	}
	return g.stored.ActiveItems()
}

func (g *Game) publishWaveStarted(ctx context.Context) {
	g.publish(ctx, EventWaveStarted, nil, map[string]any{
		KeyWave: g.waves.Number(),
		KeyTier: g.waves.Tier(),
	})
}

// UpgradeRange spends gold on range; false when gold is short
func (g *Game) UpgradeRange() bool {
	return g.spend(g.tower.UpgradeRange)
}

// UpgradeSpeed spends gold on attack speed; false when gold is short
func (g *Game) UpgradeSpeed() bool {
	return g.spend(g.tower.UpgradeSpeed)
}

// UpgradeDamage spends gold on damage; false when gold is short
func (g *Game) UpgradeDamage() bool {
	return g.spend(g.tower.UpgradeDamage)
}

func (g *Game) spend(upgrade func(int) int) bool {
	before := g.gold
	g.gold = upgrade(g.gold)
	return g.gold != before
}

// Speed is the current simulation multiplier
func (g *Game) Speed() float64 {
	return g.rules.SpeedLevels[g.speedIndex]
}

// SpeedLevels returns the selectable multipliers in order
func (g *Game) SpeedLevels() []float64 {
	out := make([]float64, len(g.rules.SpeedLevels))
	copy(out, g.rules.SpeedLevels)
	return out
}

// SetSpeed selects a multiplier from the mode's speed levels
func (g *Game) SetSpeed(multiplier float64) error {
	for i, s := range g.rules.SpeedLevels {
		if s == multiplier {
			g.speedIndex = i
			return nil
		}
	}
	return errors.InvalidArgumentf("speed %v is not one of %v", multiplier, g.rules.SpeedLevels)
}

// CycleSpeed moves to the next speed level, wrapping around, and returns it
func (g *Game) CycleSpeed() float64 {
	g.speedIndex = (g.speedIndex + 1) % len(g.rules.SpeedLevels)
	return g.Speed()
}

// Seed returns the seed the match was built from
func (g *Game) Seed() int64 {
	return g.seed
}

// Mode returns the rule set in play
func (g *Game) Mode() Mode {
	return g.rules.Mode
}

// IsGameOver reports whether lives ran out
func (g *Game) IsGameOver() bool {
	return g.over
}

// Wave returns the current wave number
func (g *Game) Wave() int {
	return g.waves.Number()
}

// Lives returns the remaining lives
func (g *Game) Lives() int {
	return g.lives
}

// Gold returns the gold on hand
func (g *Game) Gold() int {
	return g.gold
}

// Bus returns the event bus the game publishes on
func (g *Game) Bus() events.EventBus {
	return g.bus
}

// Tower exposes the tower for read access
func (g *Game) Tower() *tower.Tower {
	return g.tower
}

func clearTail(s []*entities.Enemy, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}
