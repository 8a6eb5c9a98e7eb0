package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/tower-defense/internal/engine/background"
	"github.com/KirkDiggler/tower-defense/internal/engine/game"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	v1alpha1 "github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
	"github.com/KirkDiggler/tower-defense/internal/orchestrators/match"
	matchmock "github.com/KirkDiggler/tower-defense/internal/orchestrators/match/mock"
	"github.com/KirkDiggler/tower-defense/internal/testutils"
	"github.com/KirkDiggler/tower-defense/internal/testutils/builders"
)

var backgroundFixture = background.Layout{
	Seed:     testutils.TestSeed,
	Theme:    background.ThemeDesert,
	Width:    800,
	Height:   600,
	Gradient: [2]string{"#f4e4bc", "#d4a574"},
}

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *matchmock.MockService
	handler     *v1alpha1.Handler
	ctx         context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = matchmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{MatchService: s.mockService})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) testSnapshot() *game.Snapshot {
	return &game.Snapshot{
		Seed:  testutils.TestSeed,
		Mode:  game.ModeStandard,
		Wave:  3,
		Lives: 7,
		Gold:  42,
		Speed: 1,
		Enemies: []entities.Enemy{
			*builders.NewEnemyBuilder().Build(),
		},
		Inventory: testutils.CreateTestSnapshot(nil, nil),
	}
}

func (s *HandlerTestSuite) assertCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(code, st.Code())
}

func (s *HandlerTestSuite) TestNewHandlerValidation() {
	_, err := v1alpha1.NewHandler(nil)
	s.Error(err)

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Error(err)
}

func (s *HandlerTestSuite) TestCreateMatch() {
	seed := int64(777)
	s.mockService.EXPECT().
		CreateMatch(s.ctx, &match.CreateMatchInput{Mode: game.ModeBlitz, Seed: &seed, OwnerID: "p1"}).
		Return(&match.CreateMatchOutput{MatchID: "match_1", Snapshot: s.testSnapshot()}, nil)

	resp, err := s.handler.CreateMatch(s.ctx, s.request(map[string]any{
		"mode":     "blitz",
		"seed":     777,
		"owner_id": "p1",
	}))
	s.Require().NoError(err)

	s.Equal("match_1", resp.GetFields()["match_id"].GetStringValue())
	snap := resp.GetFields()["snapshot"].GetStructValue()
	s.Equal(float64(testutils.TestSeed), snap.GetFields()["seed"].GetNumberValue())
	s.Equal(42.0, snap.GetFields()["gold"].GetNumberValue())
	s.Len(snap.GetFields()["enemies"].GetListValue().GetValues(), 1)
}

func (s *HandlerTestSuite) TestCreateMatchRejectsBadSeed() {
	testCases := []struct {
		name string
		seed any
	}{
		{name: "negative", seed: -1},
		{name: "fractional", seed: 1.5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.CreateMatch(s.ctx, s.request(map[string]any{"seed": tc.seed}))
			s.assertCode(err, codes.InvalidArgument)
		})
	}
}

func (s *HandlerTestSuite) TestCreateMatchWithoutSeed() {
	s.mockService.EXPECT().
		CreateMatch(s.ctx, &match.CreateMatchInput{}).
		Return(&match.CreateMatchOutput{MatchID: "match_9", Snapshot: s.testSnapshot()}, nil)

	resp, err := s.handler.CreateMatch(s.ctx, &structpb.Struct{})
	s.Require().NoError(err)
	s.Equal("match_9", resp.GetFields()["match_id"].GetStringValue())
}

func (s *HandlerTestSuite) TestMissingMatchID() {
	empty := &structpb.Struct{}
	calls := []struct {
		name string
		call func() error
	}{
		{name: "GetSnapshot", call: func() error { _, err := s.handler.GetSnapshot(s.ctx, empty); return err }},
		{name: "Upgrade", call: func() error { _, err := s.handler.Upgrade(s.ctx, empty); return err }},
		{name: "SetSpeed", call: func() error { _, err := s.handler.SetSpeed(s.ctx, empty); return err }},
		{name: "Pause", call: func() error { _, err := s.handler.Pause(s.ctx, empty); return err }},
		{name: "Resume", call: func() error { _, err := s.handler.Resume(s.ctx, empty); return err }},
		{name: "Restart", call: func() error { _, err := s.handler.Restart(s.ctx, empty); return err }},
		{name: "EditInventory", call: func() error { _, err := s.handler.EditInventory(s.ctx, empty); return err }},
		{name: "EndMatch", call: func() error { _, err := s.handler.EndMatch(s.ctx, empty); return err }},
	}

	for _, tc := range calls {
		s.Run(tc.name, func() {
			s.assertCode(tc.call(), codes.InvalidArgument)
		})
	}
}

func (s *HandlerTestSuite) TestGetSnapshot() {
	snap := s.testSnapshot()
	snap.Background = &backgroundFixture

	s.Run("omits background by default", func() {
		s.mockService.EXPECT().
			GetSnapshot(s.ctx, &match.GetSnapshotInput{MatchID: "match_1"}).
			Return(&match.GetSnapshotOutput{Snapshot: snap, Paused: true}, nil)

		resp, err := s.handler.GetSnapshot(s.ctx, s.request(map[string]any{"match_id": "match_1"}))
		s.Require().NoError(err)
		s.True(resp.GetFields()["paused"].GetBoolValue())
		_, ok := resp.GetFields()["snapshot"].GetStructValue().GetFields()["background"]
		s.False(ok)
	})

	s.Run("includes background on request", func() {
		s.mockService.EXPECT().
			GetSnapshot(s.ctx, &match.GetSnapshotInput{MatchID: "match_1"}).
			Return(&match.GetSnapshotOutput{Snapshot: snap}, nil)

		resp, err := s.handler.GetSnapshot(s.ctx, s.request(map[string]any{
			"match_id":           "match_1",
			"include_background": true,
		}))
		s.Require().NoError(err)
		bg := resp.GetFields()["snapshot"].GetStructValue().GetFields()["background"].GetStructValue()
		s.Equal("desert", bg.GetFields()["theme"].GetStringValue())
	})

	s.Run("not found", func() {
		s.mockService.EXPECT().
			GetSnapshot(s.ctx, &match.GetSnapshotInput{MatchID: "match_2"}).
			Return(nil, errors.NotFound("match match_2 not found"))

		_, err := s.handler.GetSnapshot(s.ctx, s.request(map[string]any{"match_id": "match_2"}))
		s.assertCode(err, codes.NotFound)
	})
}

func (s *HandlerTestSuite) TestListMatches() {
	s.mockService.EXPECT().
		ListMatches(s.ctx, &match.ListMatchesInput{OwnerID: "p1"}).
		Return(&match.ListMatchesOutput{Matches: []match.Summary{
			{MatchID: "match_1", Mode: game.ModeStandard, Wave: 4},
			{MatchID: "match_2", Mode: game.ModeBlitz, Wave: 1},
		}}, nil)

	resp, err := s.handler.ListMatches(s.ctx, s.request(map[string]any{"owner_id": "p1"}))
	s.Require().NoError(err)

	matches := resp.GetFields()["matches"].GetListValue().GetValues()
	s.Require().Len(matches, 2)
	s.Equal("match_2", matches[1].GetStructValue().GetFields()["match_id"].GetStringValue())
	s.Equal(4.0, matches[0].GetStructValue().GetFields()["wave"].GetNumberValue())
}

func (s *HandlerTestSuite) TestUpgrade() {
	s.mockService.EXPECT().
		Upgrade(s.ctx, &match.UpgradeInput{MatchID: "match_1", Stat: entities.StatAttackSpeed}).
		Return(&match.UpgradeOutput{Applied: true, Snapshot: s.testSnapshot()}, nil)

	resp, err := s.handler.Upgrade(s.ctx, s.request(map[string]any{
		"match_id": "match_1",
		"stat":     "attackSpeed",
	}))
	s.Require().NoError(err)
	s.True(resp.GetFields()["applied"].GetBoolValue())

	_, err = s.handler.Upgrade(s.ctx, s.request(map[string]any{"match_id": "match_1"}))
	s.assertCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestSetSpeed() {
	s.Run("explicit multiplier", func() {
		s.mockService.EXPECT().
			SetSpeed(s.ctx, &match.SetSpeedInput{MatchID: "match_1", Multiplier: 2}).
			Return(&match.SetSpeedOutput{Speed: 2}, nil)

		resp, err := s.handler.SetSpeed(s.ctx, s.request(map[string]any{"match_id": "match_1", "multiplier": 2}))
		s.Require().NoError(err)
		s.Equal(2.0, resp.GetFields()["speed"].GetNumberValue())
	})

	s.Run("cycle", func() {
		s.mockService.EXPECT().
			SetSpeed(s.ctx, &match.SetSpeedInput{MatchID: "match_1", Cycle: true}).
			Return(&match.SetSpeedOutput{Speed: 1.5}, nil)

		resp, err := s.handler.SetSpeed(s.ctx, s.request(map[string]any{"match_id": "match_1", "cycle": true}))
		s.Require().NoError(err)
		s.Equal(1.5, resp.GetFields()["speed"].GetNumberValue())
	})

	s.Run("neither", func() {
		_, err := s.handler.SetSpeed(s.ctx, s.request(map[string]any{"match_id": "match_1"}))
		s.assertCode(err, codes.InvalidArgument)
	})

	s.Run("rejected level", func() {
		s.mockService.EXPECT().
			SetSpeed(s.ctx, &match.SetSpeedInput{MatchID: "match_1", Multiplier: 7}).
			Return(nil, errors.InvalidArgument("speed 7 is not one of [1 1.5 2]"))

		_, err := s.handler.SetSpeed(s.ctx, s.request(map[string]any{"match_id": "match_1", "multiplier": 7}))
		s.assertCode(err, codes.InvalidArgument)
	})
}

func (s *HandlerTestSuite) TestPauseResume() {
	s.mockService.EXPECT().Pause(s.ctx, &match.PauseInput{MatchID: "match_1"}).Return(&match.PauseOutput{}, nil)
	s.mockService.EXPECT().Resume(s.ctx, &match.ResumeInput{MatchID: "match_1"}).Return(&match.ResumeOutput{}, nil)

	req := s.request(map[string]any{"match_id": "match_1"})
	_, err := s.handler.Pause(s.ctx, req)
	s.NoError(err)
	_, err = s.handler.Resume(s.ctx, req)
	s.NoError(err)
}

func (s *HandlerTestSuite) TestEditInventory() {
	s.mockService.EXPECT().
		EditInventory(s.ctx, &match.EditInventoryInput{
			MatchID: "match_1",
			Op: game.InventoryOp{
				Action: game.InventorySwap,
				Slots:  entities.SlotStored,
				From:   2,
				To:     5,
			},
		}).
		Return(&match.EditInventoryOutput{Inventory: testutils.CreateTestSnapshot(nil, nil)}, nil)

	resp, err := s.handler.EditInventory(s.ctx, s.request(map[string]any{
		"match_id": "match_1",
		"action":   "swap",
		"slots":    "stored",
		"from":     2,
		"to":       5,
	}))
	s.Require().NoError(err)
	s.Len(resp.GetFields()["inventory"].GetStructValue().GetFields()["stored"].GetListValue().GetValues(), 32)
}

func (s *HandlerTestSuite) TestEditInventoryPrecondition() {
	s.mockService.EXPECT().
		EditInventory(s.ctx, gomock.Any()).
		Return(nil, errors.FailedPrecondition("blitz inventory does not support \"equip\""))

	_, err := s.handler.EditInventory(s.ctx, s.request(map[string]any{"match_id": "match_1", "action": "equip"}))
	s.assertCode(err, codes.FailedPrecondition)
}

func (s *HandlerTestSuite) TestRestartAndEnd() {
	s.mockService.EXPECT().
		Restart(s.ctx, &match.RestartInput{MatchID: "match_1"}).
		Return(&match.RestartOutput{Snapshot: s.testSnapshot()}, nil)
	s.mockService.EXPECT().
		EndMatch(s.ctx, &match.EndMatchInput{MatchID: "match_1"}).
		Return(&match.EndMatchOutput{Snapshot: s.testSnapshot()}, nil)

	req := s.request(map[string]any{"match_id": "match_1"})

	resp, err := s.handler.Restart(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(3.0, resp.GetFields()["snapshot"].GetStructValue().GetFields()["wave"].GetNumberValue())

	resp, err = s.handler.EndMatch(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(7.0, resp.GetFields()["snapshot"].GetStructValue().GetFields()["lives"].GetNumberValue())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
