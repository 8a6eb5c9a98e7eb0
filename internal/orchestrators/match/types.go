package match

import (
	"time"

	"github.com/KirkDiggler/tower-defense/internal/engine/game"
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// CreateMatchInput defines the request for starting a match
type CreateMatchInput struct {
	Mode    game.Mode
	Seed    *int64 // nil picks a random seed
	OwnerID string // required to persist a standard inventory
}

// CreateMatchOutput defines the response for starting a match
type CreateMatchOutput struct {
	MatchID  string
	Snapshot *game.Snapshot
}

// GetSnapshotInput defines the request for reading a match
type GetSnapshotInput struct {
	MatchID string
}

// GetSnapshotOutput defines the response for reading a match
type GetSnapshotOutput struct {
	Snapshot *game.Snapshot
	Paused   bool
}

// ListMatchesInput defines the request for listing matches
type ListMatchesInput struct {
	OwnerID string // optional filter
}

// Summary is a short description of a running match
type Summary struct {
	MatchID   string    `json:"match_id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Mode      game.Mode `json:"mode"`
	Seed      int64     `json:"seed"`
	Wave      int       `json:"wave"`
	Lives     int       `json:"lives"`
	Gold      int       `json:"gold"`
	GameOver  bool      `json:"game_over"`
	Paused    bool      `json:"paused"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMatchesOutput defines the response for listing matches
type ListMatchesOutput struct {
	Matches []Summary
}

// UpgradeInput defines the request for buying a tower upgrade
type UpgradeInput struct {
	MatchID string
	Stat    entities.Stat
}

// UpgradeOutput defines the response for buying a tower upgrade
type UpgradeOutput struct {
	Applied  bool // false when gold was short
	Snapshot *game.Snapshot
}

// SetSpeedInput defines the request for changing the speed multiplier
type SetSpeedInput struct {
	MatchID    string
	Multiplier float64
	Cycle      bool // move to the next level instead of setting Multiplier
}

// SetSpeedOutput defines the response for changing the speed multiplier
type SetSpeedOutput struct {
	Speed float64
}

// PauseInput defines the request for pausing a match
type PauseInput struct {
	MatchID string
}

// PauseOutput defines the response for pausing a match
type PauseOutput struct{}

// ResumeInput defines the request for resuming a match
type ResumeInput struct {
	MatchID string
}

// ResumeOutput defines the response for resuming a match
type ResumeOutput struct{}

// RestartInput defines the request for restarting a match
type RestartInput struct {
	MatchID string
}

// RestartOutput defines the response for restarting a match
type RestartOutput struct {
	Snapshot *game.Snapshot
}

// EditInventoryInput defines the request for editing the inventory
type EditInventoryInput struct {
	MatchID string
	Op      game.InventoryOp
}

// EditInventoryOutput defines the response for editing the inventory
type EditInventoryOutput struct {
	Inventory *entities.InventorySnapshot
	Tower     game.TowerView
}

// EndMatchInput defines the request for ending a match
type EndMatchInput struct {
	MatchID string
}

// EndMatchOutput defines the response for ending a match
type EndMatchOutput struct {
	Snapshot *game.Snapshot // final state
}
