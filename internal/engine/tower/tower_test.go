package tower_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/engine/tower"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/testutils/builders"
)

type TowerTestSuite struct {
	suite.Suite
	tower *tower.Tower
}

func (s *TowerTestSuite) SetupTest() {
	t, err := tower.New(tower.DefaultConfig(entities.Vec2{X: 400, Y: 300}))
	s.Require().NoError(err)
	s.tower = t
}

func (s *TowerTestSuite) TestNewValidation() {
	bad := tower.DefaultConfig(entities.Vec2{})
	bad.Base.Range = 0
	noGrowth := tower.DefaultConfig(entities.Vec2{})
	noGrowth.CostGrowth = 1

	testCases := []struct {
		name string
		cfg  *tower.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "zero range", cfg: bad},
		{name: "flat cost growth", cfg: noGrowth},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := tower.New(tc.cfg)
			s.Error(err)
		})
	}
}

func (s *TowerTestSuite) TestDefaults() {
	s.Equal(20.0, s.tower.Radius)
	s.Equal(200.0, s.tower.Range)
	s.Equal(1.0, s.tower.AttackSpeed)
	s.Equal(18.0, s.tower.Damage)
	s.Equal(10, s.tower.RangeCost)
	s.Equal(10, s.tower.SpeedCost)
	s.Equal(10, s.tower.DamageCost)
	s.Equal(tower.EntityType, s.tower.GetType())
}

func (s *TowerTestSuite) TestUpgrades() {
	testCases := []struct {
		name     string
		upgrade  func(int) int
		stat     func() float64
		cost     func() int
		increase float64
	}{
		{
			name:     "range",
			upgrade:  s.tower.UpgradeRange,
			stat:     func() float64 { return s.tower.Range },
			cost:     func() int { return s.tower.RangeCost },
			increase: 25,
		},
		{
			name:     "attack speed",
			upgrade:  s.tower.UpgradeSpeed,
			stat:     func() float64 { return s.tower.AttackSpeed },
			cost:     func() int { return s.tower.SpeedCost },
			increase: 0.5,
		},
		{
			name:     "damage",
			upgrade:  s.tower.UpgradeDamage,
			stat:     func() float64 { return s.tower.Damage },
			cost:     func() int { return s.tower.DamageCost },
			increase: 5,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			before := tc.stat()

			gold := tc.upgrade(100)
			s.Equal(90, gold)
			s.Equal(15, tc.cost())
			s.InDelta(before+tc.increase, tc.stat(), 1e-9)

			gold = tc.upgrade(gold)
			s.Equal(75, gold)
			s.Equal(22, tc.cost())

			s.Run("insufficient gold changes nothing", func() {
				stat := tc.stat()
				s.Equal(21, tc.upgrade(21))
				s.Equal(22, tc.cost())
				s.Equal(stat, tc.stat())
			})
		})
	}
}

func (s *TowerTestSuite) TestCostAlwaysIncreases() {
	cfg := tower.DefaultConfig(entities.Vec2{})
	cfg.Costs.Range = 1
	t, err := tower.New(cfg)
	s.Require().NoError(err)

	s.Equal(0, t.UpgradeRange(1))
	s.Equal(2, t.RangeCost)
}

func (s *TowerTestSuite) TestEffectiveStats() {
	s.tower.SetBuffs(effects.Buffs{
		Damage:      effects.Bonus{Percentage: 0.5, Flat: 1},
		Range:       effects.Bonus{Percentage: -0.2},
		AttackSpeed: effects.Bonus{Flat: 1},
	})

	s.InDelta(28.0, s.tower.EffectiveDamage(), 1e-9)
	s.InDelta(160.0, s.tower.EffectiveRange(), 1e-9)
	s.InDelta(2.0, s.tower.EffectiveAttackSpeed(), 1e-9)
}

func (s *TowerTestSuite) TestTargetsNearestInRange() {
	far := builders.NewEnemyBuilder().WithID("far").At(550, 300).Build()
	near := builders.NewEnemyBuilder().WithID("near").At(450, 300).Build()
	outside := builders.NewEnemyBuilder().WithID("outside").At(700, 300).Build()

	p := s.tower.Update([]*entities.Enemy{outside, far, near}, 0.016)

	s.Require().NotNil(p)
	s.Equal("near", s.tower.TargetID())
	s.Equal(18.0, p.Damage)
	s.InDelta(1.0, p.Velocity.X, 1e-9)
	s.InDelta(0.0, p.Velocity.Y, 1e-9)
	s.InDelta(1.0, s.tower.Cooldown(), 1e-9)
}

func (s *TowerTestSuite) TestTiesGoToFirstEncountered() {
	left := builders.NewEnemyBuilder().WithID("left").At(300, 300).Build()
	right := builders.NewEnemyBuilder().WithID("right").At(500, 300).Build()

	s.tower.Update([]*entities.Enemy{left, right}, 0.016)
	s.Equal("left", s.tower.TargetID())
}

func (s *TowerTestSuite) TestRangeUsesEnemyEdge() {
	// centre 210 away, radius 15: edge is 195 which is inside range 200
	edge := builders.NewEnemyBuilder().At(610, 300).WithRadius(15).Build()

	s.NotNil(s.tower.Update([]*entities.Enemy{edge}, 0.016))
}

func (s *TowerTestSuite) TestKeepsTargetUntilInvalid() {
	first := builders.NewEnemyBuilder().WithID("first").At(500, 300).Build()
	s.tower.Update([]*entities.Enemy{first}, 0.016)
	s.Equal("first", s.tower.TargetID())

	closer := builders.NewEnemyBuilder().WithID("closer").At(420, 300).Build()
	s.tower.Update([]*entities.Enemy{first, closer}, 0.016)
	s.Equal("first", s.tower.TargetID())

	s.Run("dead target is dropped", func() {
		first.HP = 0
		s.tower.Update([]*entities.Enemy{first, closer}, 0.016)
		s.Equal("closer", s.tower.TargetID())
	})

	s.Run("missing target is dropped", func() {
		s.tower.Update([]*entities.Enemy{}, 0.016)
		s.Empty(s.tower.TargetID())
	})
}

func (s *TowerTestSuite) TestCooldownLimitsFireRate() {
	e := builders.NewEnemyBuilder().At(450, 300).WithHP(1000).Build()
	enemies := []*entities.Enemy{e}

	fired := 0
	for i := 0; i < 100; i++ {
		if s.tower.Update(enemies, 0.05) != nil {
			fired++
		}
	}
	// five seconds at one attack per second
	s.InDelta(5, fired, 1)
}

func (s *TowerTestSuite) TestNoTargetNoProjectile() {
	s.Nil(s.tower.Update(nil, 0.016))
	s.Empty(s.tower.TargetID())
}

func (s *TowerTestSuite) TestReset() {
	s.tower.UpgradeDamage(100)
	s.tower.SetBuffs(effects.Buffs{Damage: effects.Bonus{Flat: 10}})

	s.tower.Reset()

	s.Equal(18.0, s.tower.EffectiveDamage())
	s.Equal(10, s.tower.DamageCost)
}

func TestTowerSuite(t *testing.T) {
	suite.Run(t, new(TowerTestSuite))
}
