package effects_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	catalog *effects.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.catalog = effects.Default()
}

func (s *CatalogTestSuite) TestDefaultCatalog() {
	s.Len(s.catalog.All(), 13)

	effect, ok := s.catalog.Get("BERSERKER_RAGE")
	s.Require().True(ok)
	s.Equal(entities.StatDamage, effect.TargetStat)
	s.Equal(0.40, effect.Value)
	s.Require().NotNil(effect.NegativeEffect)
	s.Equal(entities.StatRange, effect.NegativeEffect.TargetStat)
	s.Equal(-0.20, effect.NegativeEffect.Value)

	_, ok = s.catalog.Get("NOPE")
	s.False(ok)
}

func (s *CatalogTestSuite) TestByRarity() {
	testCases := []struct {
		rarity   entities.Rarity
		expected []string
	}{
		{entities.RarityCommon, []string{"DMG_10_PERCENT", "DMG_5_FLAT", "RANGE_10_PERCENT", "RANGE_20_FLAT", "SPEED_10_PERCENT"}},
		{entities.RarityRare, []string{"DMG_25_PERCENT", "DMG_15_FLAT", "SPEED_20_PERCENT"}},
		{entities.RarityEpic, []string{"RANGE_30_PERCENT"}},
		{entities.RarityLegendary, []string{"SPEED_50_PERCENT", "BERSERKER_RAGE", "SNIPER_SCOPE", "PERFECT_BALANCE"}},
	}

	for _, tc := range testCases {
		s.Run(string(tc.rarity), func() {
			var ids []string
			for _, e := range s.catalog.ByRarity(tc.rarity) {
				ids = append(ids, e.ID)
			}
			s.Equal(tc.expected, ids)
		})
	}
}

func (s *CatalogTestSuite) TestNewCatalogRejectsBadEntries() {
	_, err := effects.NewCatalog([]entities.Effect{{ID: "A"}, {ID: "A"}, {}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}
