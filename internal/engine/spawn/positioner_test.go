package spawn_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tower-defense/internal/engine/spawn"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/testutils"
)

const (
	fieldWidth  = 1600.0
	fieldHeight = 900.0
)

type PositionerTestSuite struct {
	suite.Suite
	tower entities.Vec2
}

func (s *PositionerTestSuite) SetupTest() {
	s.tower = entities.Vec2{X: fieldWidth / 2, Y: fieldHeight / 2}
}

func (s *PositionerTestSuite) newPositioner(seed int64) *spawn.Positioner {
	p, err := spawn.New(&spawn.Config{Width: fieldWidth, Height: fieldHeight, Seed: seed})
	s.Require().NoError(err)
	return p
}

func (s *PositionerTestSuite) TestNewValidation() {
	testCases := []struct {
		name string
		cfg  *spawn.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "zero width", cfg: &spawn.Config{Height: 10}},
		{name: "zero height", cfg: &spawn.Config{Width: 10}},
		{name: "negative seed", cfg: &spawn.Config{Width: 10, Height: 10, Seed: -1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := spawn.New(tc.cfg)
			s.Error(err)
		})
	}
}

func (s *PositionerTestSuite) TestSameSeedSamePositions() {
	a := s.newPositioner(testutils.TestSeed)
	b := s.newPositioner(testutils.TestSeed)

	for wave := 1; wave <= 20; wave++ {
		s.Equal(a.Generate(8, wave, s.tower), b.Generate(8, wave, s.tower))
	}
	s.Equal(a.GenerateInZone(spawn.ZoneTop, 4, s.tower), b.GenerateInZone(spawn.ZoneTop, 4, s.tower))
}

func (s *PositionerTestSuite) TestReseedRestartsStream() {
	p := s.newPositioner(42)
	first := p.Generate(5, 1, s.tower)
	p.Generate(5, 7, s.tower)

	p.Reseed(42)
	s.Equal(first, p.Generate(5, 1, s.tower))
	s.Equal(int64(42), p.Seed())
}

func (s *PositionerTestSuite) TestPositionsStayInSpawnableArea() {
	for seed := int64(0); seed < 25; seed++ {
		p := s.newPositioner(seed)
		for wave := 1; wave <= 30; wave += 3 {
			for _, pos := range p.Generate(12, wave, s.tower) {
				s.GreaterOrEqual(pos.Point.X, 0.0)
				s.LessOrEqual(pos.Point.X, fieldWidth)
				s.GreaterOrEqual(pos.Point.Y, 0.0)
				s.LessOrEqual(pos.Point.Y, fieldHeight*spawn.SpawnableRatio)
			}
		}
	}
}

func (s *PositionerTestSuite) TestDelaysAreStaggered() {
	p := s.newPositioner(7)

	positions := p.Generate(4, 1, s.tower)
	s.Require().Len(positions, 4)
	for i, pos := range positions {
		s.InDelta(float64(i)*spawn.ConeDelayStep, pos.Delay, 1e-9)
	}

	zoned := p.GenerateInZone(spawn.ZoneRight, 3, s.tower)
	s.Require().Len(zoned, 3)
	for i, pos := range zoned {
		s.InDelta(float64(i)*spawn.ZoneDelayStep, pos.Delay, 1e-9)
		s.Equal(spawn.ZoneRight, pos.Zone)
	}
}

func (s *PositionerTestSuite) TestAllowedZonesByWave() {
	p := s.newPositioner(1)

	names := func(zones []spawn.Zone) []spawn.ZoneName {
		out := make([]spawn.ZoneName, 0, len(zones))
		for _, z := range zones {
			out = append(out, z.Name)
		}
		return out
	}

	s.Equal([]spawn.ZoneName{spawn.ZoneLeft, spawn.ZoneTop}, names(p.AllowedZones(5)))
	s.Equal([]spawn.ZoneName{spawn.ZoneLeft, spawn.ZoneTop, spawn.ZoneRight}, names(p.AllowedZones(6)))
	s.Len(p.AllowedZones(16), 5)

	for i := 0; i < 100; i++ {
		s.Contains([]spawn.ZoneName{spawn.ZoneLeft, spawn.ZoneTop}, p.Zone(3).Name)
	}
}

func (s *PositionerTestSuite) TestGenerateInZoneStaysInside() {
	p := s.newPositioner(99)

	for _, zone := range p.Zones() {
		for _, pos := range p.GenerateInZone(zone.Name, 10, s.tower) {
			s.True(zone.Contains(pos.Point), "%v outside %s", pos.Point, zone.Name)
		}
	}
}

func (s *PositionerTestSuite) TestUnknownZoneFallsBack() {
	p := s.newPositioner(5)

	positions := p.GenerateInZone("bottom", 3, s.tower)
	s.Require().Len(positions, 3)
	for _, pos := range positions {
		s.Contains([]spawn.ZoneName{spawn.ZoneLeft, spawn.ZoneTop}, pos.Zone)
		s.LessOrEqual(pos.Point.Y, fieldHeight*spawn.SpawnableRatio)
	}
}

func TestPositionerSuite(t *testing.T) {
	suite.Run(t, new(PositionerTestSuite))
}
