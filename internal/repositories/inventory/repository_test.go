package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
	"github.com/KirkDiggler/tower-defense/internal/testutils"
)

const testMode = "standard"

// RepositoryTestSuite runs the same contract against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	newRepo func() inventory.Repository
	repo    inventory.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() inventory.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := inventory.NewRedis(&inventory.RedisConfig{Client: client})
			if err != nil {
				t.Fatalf("failed to create repo: %v", err)
			}
			return repo
		},
	})
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() inventory.Repository { return inventory.NewInMemory() },
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) TestSaveThenGet() {
	snap := testutils.CreateTestSnapshot(
		[]*entities.Item{testutils.CreateTestItem("a", "DMG_5_FLAT")},
		[]*entities.Item{nil, testutils.CreateTestItem("b", "RANGE_10_PERCENT")},
	)

	_, err := s.repo.Save(s.ctx, inventory.SaveInput{OwnerID: testutils.TestOwnerID, Mode: testMode, Snapshot: snap})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, inventory.GetInput{OwnerID: testutils.TestOwnerID, Mode: testMode})
	s.Require().NoError(err)
	s.Require().Len(out.Snapshot.Stored, 32)
	s.Require().Len(out.Snapshot.Active, 5)
	s.Equal("a", out.Snapshot.Stored[0].ID)
	s.Nil(out.Snapshot.Active[0])
	s.Equal("RANGE_10_PERCENT", out.Snapshot.Active[1].EffectID)
}

func (s *RepositoryTestSuite) TestModesAreSeparate() {
	snap := testutils.CreateTestSnapshot(nil, nil)
	_, err := s.repo.Save(s.ctx, inventory.SaveInput{OwnerID: testutils.TestOwnerID, Mode: testMode, Snapshot: snap})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, inventory.GetInput{OwnerID: testutils.TestOwnerID, Mode: "blitz"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestGetMissing() {
	out, err := s.repo.Get(s.ctx, inventory.GetInput{OwnerID: "nobody", Mode: testMode})
	s.Nil(out)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestDelete() {
	snap := testutils.CreateTestSnapshot(nil, nil)
	_, err := s.repo.Save(s.ctx, inventory.SaveInput{OwnerID: testutils.TestOwnerID, Mode: testMode, Snapshot: snap})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, inventory.DeleteInput{OwnerID: testutils.TestOwnerID, Mode: testMode})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, inventory.DeleteInput{OwnerID: testutils.TestOwnerID, Mode: testMode})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "get without owner",
			call: func() error {
				_, err := s.repo.Get(s.ctx, inventory.GetInput{Mode: testMode})
				return err
			},
		},
		{
			name: "save without mode",
			call: func() error {
				_, err := s.repo.Save(s.ctx, inventory.SaveInput{OwnerID: "p", Snapshot: &entities.InventorySnapshot{}})
				return err
			},
		},
		{
			name: "save without snapshot",
			call: func() error {
				_, err := s.repo.Save(s.ctx, inventory.SaveInput{OwnerID: "p", Mode: testMode})
				return err
			},
		},
		{
			name: "delete without owner",
			call: func() error {
				_, err := s.repo.Delete(s.ctx, inventory.DeleteInput{Mode: testMode})
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(errors.IsInvalidArgument(tc.call()))
		})
	}
}

func TestRedisStorageLayout(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := inventory.NewRedis(&inventory.RedisConfig{Client: client})
	require.NoError(t, err)

	_, err = repo.Save(context.Background(), inventory.SaveInput{
		OwnerID:  "p1",
		Mode:     "blitz",
		Snapshot: testutils.CreateTestSnapshot(nil, nil),
	})
	require.NoError(t, err)
	require.True(t, mr.Exists("inventory:p1:blitz"), "keys: %v", mr.Keys())
}

func TestRedisGetCorruptData(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := inventory.NewRedis(&inventory.RedisConfig{Client: client})
	require.NoError(t, err)
	require.NoError(t, mr.Set("inventory:p1:standard", "{not json"))

	_, err = repo.Get(context.Background(), inventory.GetInput{OwnerID: "p1", Mode: "standard"})
	require.Equal(t, errors.CodeInternal, errors.GetCode(err))
}

func TestRedisUnavailable(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := inventory.NewRedis(&inventory.RedisConfig{Client: client})
	require.NoError(t, err)
	mr.Close()

	_, err = repo.Get(context.Background(), inventory.GetInput{OwnerID: "p1", Mode: "standard"})
	require.Error(t, err)
	require.False(t, errors.IsNotFound(err))
}

func TestNewRedisValidation(t *testing.T) {
	_, err := inventory.NewRedis(nil)
	require.True(t, errors.IsInvalidArgument(err))

	_, err = inventory.NewRedis(&inventory.RedisConfig{})
	require.True(t, errors.IsInvalidArgument(err))
}
