package game

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/pkg/idgen"
	inventoryrepo "github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
	inventorymock "github.com/KirkDiggler/tower-defense/internal/repositories/inventory/mock"
	"github.com/KirkDiggler/tower-defense/internal/testutils"
	"github.com/KirkDiggler/tower-defense/internal/testutils/builders"
)

type GameTestSuite struct {
	suite.Suite
	ctx  context.Context
	bus  *testutils.RecordingBus
	seed int64
}

func (s *GameTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = testutils.NewRecordingBus()
	s.seed = testutils.TestSeed
}

func (s *GameTestSuite) newGame(rules Rules, roller dice.Roller) *Game {
	g, err := New(s.ctx, &Config{
		Width:   800,
		Height:  600,
		Seed:    &s.seed,
		Rules:   rules,
		Roller:  roller,
		Bus:     s.bus,
		ItemIDs: idgen.NewSequential("item"),
	})
	s.Require().NoError(err)
	return g
}

// clearField removes queued and live enemies so a test controls the board
func (s *GameTestSuite) clearField(g *Game) {
	g.enemies = nil
	g.projectiles = nil
	s.bus.Reset()
}

// shootAt places a projectile on top of e carrying damage
func shootAt(g *Game, e *entities.Enemy, damage float64) {
	g.projectiles = append(g.projectiles, &entities.Projectile{
		Position: e.Position,
		Velocity: entities.Vec2{X: 0, Y: 1},
		Speed:    entities.ProjectileSpeed,
		Radius:   entities.ProjectileRadius,
		Damage:   damage,
		Active:   true,
	})
}

// farEnemy is outside the tower's default range and does not move
func farEnemy() *entities.Enemy {
	return builders.NewEnemyBuilder().At(400, 50).WithRadius(10).WithSpeed(0).WithHP(10).WithGold(7).Build()
}

func noDrops(r Rules) Rules {
	r.Drops.NormalChance = 0
	r.Drops.EliteChance = 0
	r.Drops.BossChance = 0
	return r
}

func alwaysDrops(r Rules) Rules {
	r.Drops.NormalChance = 1
	return r
}

func (s *GameTestSuite) TestNewValidation() {
	negative := int64(-1)
	badRules := StandardRules()
	badRules.StartingLives = 0

	testCases := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config", cfg: nil},
		{name: "negative seed", cfg: &Config{Seed: &negative, Rules: StandardRules()}},
		{name: "invalid rules", cfg: &Config{Rules: badRules}},
		{name: "missing rules", cfg: &Config{}},
		{name: "negative width", cfg: &Config{Width: -1, Rules: StandardRules()}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := New(s.ctx, tc.cfg)
			s.Error(err)
		})
	}
}

func (s *GameTestSuite) TestNewStartsWaveOne() {
	g := s.newGame(StandardRules(), testutils.NewScriptedRoller(0, 0.99))

	snap := g.Snapshot()
	s.Equal(testutils.TestSeed, snap.Seed)
	s.Equal(ModeStandard, snap.Mode)
	s.Equal(1, snap.Wave)
	s.Equal(10, snap.Lives)
	s.Equal(50, snap.Gold)
	s.Equal(1.0, snap.Speed)
	s.Equal(6, snap.Pending)
	s.False(snap.GameOver)
	s.Equal(entities.Vec2{X: 400, Y: 300}, snap.Tower.Position)
	s.Empty(snap.Enemies)
	s.Require().NotNil(snap.Background)
	s.Equal(testutils.TestSeed, snap.Background.Seed)
	s.Len(snap.Inventory.Stored, 32)
	s.Len(snap.Inventory.Active, 5)

	started := s.bus.Events(EventWaveStarted)
	s.Require().Len(started, 1)
	wave, ok := started[0].Context().Get(KeyWave)
	s.True(ok)
	s.Equal(1, wave)
}

func (s *GameTestSuite) TestRandomSeedWhenAbsent() {
	g, err := New(s.ctx, &Config{Rules: StandardRules(), Bus: s.bus})
	s.Require().NoError(err)

	s.GreaterOrEqual(g.Seed(), int64(0))
	s.Equal(DefaultWidth/2, g.Tower().Position.X)
	s.Equal(DefaultHeight/2, g.Tower().Position.Y)
}

func (s *GameTestSuite) TestKillAwardsGoldOnce() {
	g := s.newGame(noDrops(StandardRules()), testutils.NewScriptedRoller(0.5))
	s.clearField(g)

	enemy := farEnemy()
	g.enemies = []*entities.Enemy{enemy}
	shootAt(g, enemy, 100)
	shootAt(g, enemy, 100)

	g.Update(s.ctx, 0.001)

	s.Equal(57, g.Gold())
	s.Empty(g.enemies)
	s.True(enemy.HasDroppedLoot)
	s.Equal(1, s.bus.Count(EventEnemyKilled))
	s.Equal(1, g.Snapshot().Kills)
	// the second projectile was never consumed
	s.Len(g.projectiles, 1)

	g.Update(s.ctx, 0.001)
	s.Equal(57, g.Gold())
	s.Equal(1, s.bus.Count(EventEnemyKilled))
}

func (s *GameTestSuite) TestNonLethalHitConsumesProjectile() {
	g := s.newGame(noDrops(StandardRules()), testutils.NewScriptedRoller(0.5))
	s.clearField(g)

	enemy := farEnemy()
	g.enemies = []*entities.Enemy{enemy}
	shootAt(g, enemy, 4)

	g.Update(s.ctx, 0.001)

	s.Require().Len(g.enemies, 1)
	s.Equal(6.0, enemy.HP)
	s.Empty(g.projectiles)
	s.Equal(50, g.Gold())
}

func (s *GameTestSuite) TestArrivalCostsLife() {
	g := s.newGame(StandardRules(), testutils.NewScriptedRoller(0.5))
	s.clearField(g)

	g.enemies = []*entities.Enemy{
		builders.NewEnemyBuilder().At(400, 310).WithSpeed(0).Build(),
	}

	g.Update(s.ctx, 0.001)

	s.Equal(9, g.Lives())
	s.Empty(g.enemies)
	s.False(g.IsGameOver())
	s.Equal(1, s.bus.Count(EventEnemyReachedTower))
}

func (s *GameTestSuite) TestGameOver() {
	g := s.newGame(StandardRules(), testutils.NewScriptedRoller(0.5))
	s.clearField(g)
	g.lives = 1

	g.enemies = []*entities.Enemy{
		builders.NewEnemyBuilder().WithID("a").At(400, 310).WithSpeed(0).Build(),
		builders.NewEnemyBuilder().WithID("b").At(410, 300).WithSpeed(0).Build(),
	}

	g.Update(s.ctx, 0.001)

	s.True(g.IsGameOver())
	s.Equal(-1, g.Lives())
	s.Equal(1, s.bus.Count(EventGameOver))

	elapsed := g.Snapshot().Elapsed
	g.Update(s.ctx, 1)
	s.Equal(elapsed, g.Snapshot().Elapsed)
	s.Equal(1, s.bus.Count(EventGameOver))
}

func (s *GameTestSuite) TestBlitzDropRefreshesBuffs() {
	g := s.newGame(alwaysDrops(BlitzRules()), testutils.NewScriptedRoller(0))
	s.clearField(g)

	enemy := farEnemy()
	g.enemies = []*entities.Enemy{enemy}
	shootAt(g, enemy, 100)

	g.Update(s.ctx, 0.001)

	active := g.Snapshot().Inventory.Active
	s.Require().NotNil(active[0])
	s.Equal("DMG_10_PERCENT", active[0].EffectID)
	s.InDelta(18*1.1, g.Tower().EffectiveDamage(), 1e-9)

	dropped := s.bus.Events(EventItemDropped)
	s.Require().Len(dropped, 1)
	action, ok := dropped[0].Context().Get(KeyAction)
	s.True(ok)
	s.Equal("added", action)
}

func (s *GameTestSuite) TestBlitzRejectsWorseItem() {
	g := s.newGame(alwaysDrops(BlitzRules()), testutils.NewScriptedRoller(0))
	s.clearField(g)
	g.blitz.TryAdd(testutils.CreateTestItem("held", "DMG_25_PERCENT"))
	g.refreshBuffs()

	enemy := farEnemy()
	g.enemies = []*entities.Enemy{enemy}
	shootAt(g, enemy, 100)

	g.Update(s.ctx, 0.001)

	s.Equal(1, s.bus.Count(EventItemRejected))
	s.Equal(0, s.bus.Count(EventItemDropped))
	s.InDelta(18*1.25, g.Tower().EffectiveDamage(), 1e-9)
}

func (s *GameTestSuite) TestStandardDropGoesToStorage() {
	g := s.newGame(alwaysDrops(StandardRules()), testutils.NewScriptedRoller(0))
	s.clearField(g)

	enemy := farEnemy()
	g.enemies = []*entities.Enemy{enemy}
	shootAt(g, enemy, 100)

	g.Update(s.ctx, 0.001)

	inv := g.Snapshot().Inventory
	s.Require().NotNil(inv.Stored[0])
	s.Equal("DMG_10_PERCENT", inv.Stored[0].EffectID)
	s.Equal(18.0, g.Tower().EffectiveDamage())
	s.Equal(1, s.bus.Count(EventItemDropped))

	s.Require().NoError(g.EditInventory(s.ctx, InventoryOp{Action: InventoryEquip, From: 0, To: 0}))
	s.InDelta(18*1.1, g.Tower().EffectiveDamage(), 1e-9)

	s.Require().NoError(g.EditInventory(s.ctx, InventoryOp{Action: InventoryDelete, Slots: entities.SlotActive, From: 0}))
	s.Equal(18.0, g.Tower().EffectiveDamage())
}

func (s *GameTestSuite) TestEditInventoryErrors() {
	standard := s.newGame(StandardRules(), nil)
	blitz := s.newGame(BlitzRules(), nil)

	testCases := []struct {
		name    string
		game    *Game
		op      InventoryOp
		checkFn func(error) bool
	}{
		{
			name:    "unknown action",
			game:    standard,
			op:      InventoryOp{Action: "sell"},
			checkFn: errors.IsInvalidArgument,
		},
		{
			name:    "unknown slot kind",
			game:    standard,
			op:      InventoryOp{Action: InventorySwap, Slots: "bag"},
			checkFn: errors.IsInvalidArgument,
		},
		{
			name:    "blitz equip",
			game:    blitz,
			op:      InventoryOp{Action: InventoryEquip},
			checkFn: errors.IsFailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.game.EditInventory(s.ctx, tc.op)
			s.Require().Error(err)
			s.True(tc.checkFn(err))
		})
	}

	s.NoError(standard.EditInventory(s.ctx, InventoryOp{Action: InventoryEquip, From: 99, To: 99}))
	s.NoError(blitz.EditInventory(s.ctx, InventoryOp{Action: InventoryDelete, From: 99}))
}

func (s *GameTestSuite) TestUpgrades() {
	g := s.newGame(StandardRules(), nil)

	s.True(g.UpgradeDamage())
	s.Equal(40, g.Gold())
	s.Equal(23.0, g.Tower().EffectiveDamage())

	s.True(g.UpgradeRange())
	s.Equal(30, g.Gold())
	s.Equal(225.0, g.Tower().EffectiveRange())

	s.True(g.UpgradeSpeed())
	s.Equal(20, g.Gold())
	s.Equal(1.5, g.Tower().EffectiveAttackSpeed())

	g.gold = 5
	s.False(g.UpgradeDamage())
	s.Equal(5, g.Gold())
}

func (s *GameTestSuite) TestSpeedLevels() {
	testCases := []struct {
		name    string
		rules   Rules
		cycle   []float64
		invalid float64
	}{
		{name: "standard", rules: StandardRules(), cycle: []float64{1.5, 2, 1}, invalid: 3},
		{name: "blitz", rules: BlitzRules(), cycle: []float64{2, 3, 1}, invalid: 1.5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			g := s.newGame(tc.rules, nil)
			for _, want := range tc.cycle {
				s.Equal(want, g.CycleSpeed())
			}

			err := g.SetSpeed(tc.invalid)
			s.True(errors.IsInvalidArgument(err))
			s.Equal(1.0, g.Speed())

			s.NoError(g.SetSpeed(tc.cycle[0]))
			s.Equal(tc.cycle[0], g.Speed())
		})
	}
}

func (s *GameTestSuite) TestSpeedScalesTime() {
	g := s.newGame(StandardRules(), nil)
	s.Require().NoError(g.SetSpeed(2))

	g.Update(s.ctx, 0.5)

	s.InDelta(1.0, g.Snapshot().Elapsed, 1e-9)
}

func (s *GameTestSuite) TestRestartKeepsSeed() {
	testCases := []struct {
		name      string
		rules     Rules
		keepsItem bool
	}{
		{name: "standard keeps inventory", rules: StandardRules(), keepsItem: true},
		{name: "blitz clears inventory", rules: BlitzRules(), keepsItem: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			g := s.newGame(tc.rules, testutils.NewScriptedRoller(0, 0.99))
			before := g.Snapshot()

			item := testutils.CreateTestItem("kept", "DMG_10_PERCENT")
			if g.blitz != nil {
				g.blitz.TryAdd(item)
			} else {
				g.stored.Add(s.ctx, item)
			}
			g.gold = 3
			g.lives = 2
			s.Require().NoError(g.SetSpeed(2))
			g.Update(s.ctx, 10)

			s.Require().NoError(g.Restart(s.ctx))

			after := g.Snapshot()
			s.Equal(before.Seed, after.Seed)
			s.Equal(before.Restarts+1, after.Restarts)
			s.Equal(1, after.Wave)
			s.Equal(50, after.Gold)
			s.Equal(10, after.Lives)
			s.Equal(1.0, after.Speed)
			s.Equal(0.0, after.Elapsed)
			s.Empty(after.Enemies)
			s.Equal(before.Background.Theme, after.Background.Theme)
			s.Equal(before.Tower.DamageCost, after.Tower.DamageCost)

			held := len(g.activeItems())
			if g.stored != nil {
				held = len(compactItems(after.Inventory.Stored))
			}
			if tc.keepsItem {
				s.Equal(1, held)
			} else {
				s.Equal(0, held)
			}
		})
	}
}

func (s *GameTestSuite) TestRestartReloadsPersistedInventory() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	repo := inventorymock.NewMockRepository(ctrl)

	saved := testutils.CreateTestSnapshot(nil, []*entities.Item{
		testutils.CreateTestItem("saved", "RANGE_20_FLAT"),
	})
	repo.EXPECT().
		Get(gomock.Any(), inventoryrepo.GetInput{OwnerID: testutils.TestOwnerID, Mode: string(ModeStandard)}).
		Return(&inventoryrepo.GetOutput{Snapshot: saved}, nil).
		Times(2)

	g, err := New(s.ctx, &Config{
		Seed:       &s.seed,
		Rules:      StandardRules(),
		Repository: repo,
		OwnerID:    testutils.TestOwnerID,
		Bus:        s.bus,
	})
	s.Require().NoError(err)
	s.Equal(220.0, g.Tower().EffectiveRange())

	s.Require().NoError(g.Restart(s.ctx))
	s.Equal(220.0, g.Tower().EffectiveRange())
}

func (s *GameTestSuite) TestFirstWaveRollsOver() {
	g := s.newGame(StandardRules(), testutils.NewScriptedRoller(0, 0.99))

	const step = 1.0 / 60
	for i := 0; i < 60*180 && g.Wave() == 1; i++ {
		g.Update(s.ctx, step)
	}

	s.Require().Equal(2, g.Wave())
	s.False(g.IsGameOver())
	snap := g.Snapshot()
	s.Equal(6, snap.Kills+(10-snap.Lives))
	s.Equal(2, s.bus.Count(EventWaveStarted))
}

func (s *GameTestSuite) TestSnapshotIsACopy() {
	g := s.newGame(StandardRules(), nil)
	s.clearField(g)
	g.enemies = []*entities.Enemy{farEnemy()}

	snap := g.Snapshot()
	snap.Enemies[0].HP = 0
	snap.Background.Decorations[0].Size = -1

	s.Equal(10.0, g.enemies[0].HP)
	s.NotEqual(-1.0, g.Snapshot().Background.Decorations[0].Size)
}

func compactItems(items []*entities.Item) []*entities.Item {
	var out []*entities.Item
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func TestGameTestSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}
