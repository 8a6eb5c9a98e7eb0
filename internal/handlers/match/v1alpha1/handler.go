// Package v1alpha1 handles the match gRPC service
package v1alpha1

import (
	"context"
	"encoding/json"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/tower-defense/internal/engine/game"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/orchestrators/match"
)

// Request fields
const (
	FieldMatchID           = "match_id"
	FieldMode              = "mode"
	FieldSeed              = "seed"
	FieldOwnerID           = "owner_id"
	FieldStat              = "stat"
	FieldMultiplier        = "multiplier"
	FieldCycle             = "cycle"
	FieldAction            = "action"
	FieldSlots             = "slots"
	FieldFrom              = "from"
	FieldTo                = "to"
	FieldIncludeBackground = "include_background"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	MatchService match.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.MatchService == nil {
		return errors.InvalidArgument("match service is required")
	}
	return nil
}

// Handler implements the match gRPC service
type Handler struct {
	matchService match.Service
}

var _ MatchServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		matchService: cfg.MatchService,
	}, nil
}

// CreateMatch starts a match
func (h *Handler) CreateMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &match.CreateMatchInput{
		Mode:    game.Mode(stringField(req, FieldMode)),
		OwnerID: stringField(req, FieldOwnerID),
	}

	if v, ok := numberField(req, FieldSeed); ok {
		if v < 0 || v != math.Trunc(v) {
			return nil, errors.ToGRPCError(errors.InvalidArgument("seed must be a non-negative integer"))
		}
		seed := int64(v)
		input.Seed = &seed
	}

	output, err := h.matchService.CreateMatch(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"match_id": output.MatchID,
		"snapshot": withBackground(output.Snapshot, true),
	})
}

// GetSnapshot returns the current state of a match
func (h *Handler) GetSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	output, err := h.matchService.GetSnapshot(ctx, &match.GetSnapshotInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"snapshot": withBackground(output.Snapshot, boolField(req, FieldIncludeBackground)),
		"paused":   output.Paused,
	})
}

// ListMatches summarizes running matches
func (h *Handler) ListMatches(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	output, err := h.matchService.ListMatches(ctx, &match.ListMatchesInput{
		OwnerID: stringField(req, FieldOwnerID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"matches": output.Matches})
}

// Upgrade buys a tower upgrade
func (h *Handler) Upgrade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}
	stat := stringField(req, FieldStat)
	if stat == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("stat is required"))
	}

	output, err := h.matchService.Upgrade(ctx, &match.UpgradeInput{
		MatchID: matchID,
		Stat:    entities.Stat(stat),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"applied":  output.Applied,
		"snapshot": withBackground(output.Snapshot, false),
	})
}

// SetSpeed sets or cycles the speed multiplier
func (h *Handler) SetSpeed(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	input := &match.SetSpeedInput{
		MatchID: matchID,
		Cycle:   boolField(req, FieldCycle),
	}
	if !input.Cycle {
		v, ok := numberField(req, FieldMultiplier)
		if !ok {
			return nil, errors.ToGRPCError(errors.InvalidArgument("multiplier or cycle is required"))
		}
		input.Multiplier = v
	}

	output, err := h.matchService.SetSpeed(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"speed": output.Speed})
}

// Pause stops a match's clock
func (h *Handler) Pause(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	if _, err := h.matchService.Pause(ctx, &match.PauseInput{MatchID: matchID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &structpb.Struct{}, nil
}

// Resume restarts a match's clock
func (h *Handler) Resume(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	if _, err := h.matchService.Resume(ctx, &match.ResumeInput{MatchID: matchID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &structpb.Struct{}, nil
}

// Restart starts a match over with the same seed
func (h *Handler) Restart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	output, err := h.matchService.Restart(ctx, &match.RestartInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"snapshot": withBackground(output.Snapshot, false)})
}

// EditInventory equips, unequips, swaps or deletes items
func (h *Handler) EditInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}
	action := stringField(req, FieldAction)
	if action == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("action is required"))
	}

	from, _ := numberField(req, FieldFrom)
	to, _ := numberField(req, FieldTo)

	output, err := h.matchService.EditInventory(ctx, &match.EditInventoryInput{
		MatchID: matchID,
		Op: game.InventoryOp{
			Action: game.InventoryAction(action),
			Slots:  entities.SlotKind(stringField(req, FieldSlots)),
			From:   int(from),
			To:     int(to),
		},
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"inventory": output.Inventory,
		"tower":     output.Tower,
	})
}

// EndMatch stops a match and returns its final state
func (h *Handler) EndMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	output, err := h.matchService.EndMatch(ctx, &match.EndMatchInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"snapshot": withBackground(output.Snapshot, false)})
}

func requireMatchID(req *structpb.Struct) (string, error) {
	id := stringField(req, FieldMatchID)
	if id == "" {
		return "", errors.ToGRPCError(errors.InvalidArgument("match_id is required"))
	}
	return id, nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func boolField(req *structpb.Struct, key string) bool {
	return req.GetFields()[key].GetBoolValue()
}

func numberField(req *structpb.Struct, key string) (float64, bool) {
	v, ok := req.GetFields()[key].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return v.NumberValue, true
}

// withBackground drops the background layout unless asked for; it never
// changes between frames
func withBackground(snap *game.Snapshot, include bool) *game.Snapshot {
	if snap == nil || include {
		return snap
	}
	trimmed := *snap
	trimmed.Background = nil
	return &trimmed
}

// respond converts a response body into a Struct through its JSON form
func respond(body map[string]any) (*structpb.Struct, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}
