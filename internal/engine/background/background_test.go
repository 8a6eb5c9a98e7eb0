package background_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tower-defense/internal/engine/background"
	"github.com/KirkDiggler/tower-defense/internal/engine/rng"
)

type BackgroundTestSuite struct {
	suite.Suite
}

func (s *BackgroundTestSuite) TestDeterministic() {
	for seed := int64(0); seed < 20; seed++ {
		s.Equal(background.Generate(seed, 1600, 900), background.Generate(seed, 1600, 900))
	}
}

func (s *BackgroundTestSuite) TestThemeFollowsFirstDraw() {
	themes := []background.Theme{
		background.ThemeGrassland, background.ThemeDesert, background.ThemeSnow, background.ThemeVolcanic,
	}

	for seed := int64(0); seed < 50; seed++ {
		want := themes[int(math.Floor(rng.New(seed).Next()*4))]
		s.Equal(want, background.Generate(seed, 1600, 900).Theme)
	}
}

func (s *BackgroundTestSuite) TestDecorationCounts() {
	counts := map[background.Theme]map[string]int{
		background.ThemeGrassland: {background.KindGrass: 200, background.KindFlower: 15},
		background.ThemeDesert:    {background.KindDune: 10, background.KindRock: 25},
		background.ThemeSnow:      {background.KindSnowPatch: 30, background.KindIceCrystal: 50},
		background.ThemeVolcanic:  {background.KindLava: 8, background.KindRock: 40, background.KindEmber: 20},
	}

	seen := make(map[background.Theme]bool)
	for seed := int64(0); seed < 200 && len(seen) < 4; seed++ {
		layout := background.Generate(seed, 1600, 900)
		seen[layout.Theme] = true

		got := make(map[string]int)
		for _, d := range layout.Decorations {
			got[d.Kind]++
		}
		s.Equal(counts[layout.Theme], got, "theme %s", layout.Theme)
	}
	s.Len(seen, 4)
}

func (s *BackgroundTestSuite) TestLavaRunsToBottom() {
	for seed := int64(0); seed < 200; seed++ {
		layout := background.Generate(seed, 1600, 900)
		if layout.Theme != background.ThemeVolcanic {
			continue
		}
		for _, d := range layout.Decorations {
			if d.Kind == background.KindLava {
				s.Require().NotNil(d.End)
				s.Equal(900.0, d.End.Y)
				s.LessOrEqual(d.Position.Y, 900*0.3)
			}
		}
		return
	}
	s.Fail("no volcanic seed found")
}

func TestBackgroundSuite(t *testing.T) {
	suite.Run(t, new(BackgroundTestSuite))
}
