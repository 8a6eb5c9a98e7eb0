// Package inventory provides persistence for inventory snapshots
package inventory

//go:generate mockgen -destination=mock/mock_repository.go -package=inventorymock github.com/KirkDiggler/tower-defense/internal/repositories/inventory Repository

import (
	"context"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// Repository stores one inventory snapshot per owner and game mode
type Repository interface {
	// Get retrieves the snapshot for an owner
	// Returns errors.InvalidArgument for empty owner or mode
	// Returns errors.NotFound if nothing has been saved
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save replaces the snapshot for an owner
	// Returns errors.InvalidArgument for empty owner, mode or snapshot
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the snapshot for an owner
	// Returns errors.InvalidArgument for empty owner or mode
	// Returns errors.NotFound if nothing has been saved
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a snapshot
type GetInput struct {
	OwnerID string
	Mode    string
}

// GetOutput defines the output for getting a snapshot
type GetOutput struct {
	Snapshot *entities.InventorySnapshot
}

// SaveInput defines the input for saving a snapshot
type SaveInput struct {
	OwnerID  string
	Mode     string
	Snapshot *entities.InventorySnapshot
}

// SaveOutput defines the output for saving a snapshot
type SaveOutput struct{}

// DeleteInput defines the input for deleting a snapshot
type DeleteInput struct {
	OwnerID string
	Mode    string
}

// DeleteOutput defines the output for deleting a snapshot
type DeleteOutput struct{}

const (
	inventoryKeyPrefix = "inventory:"

	errOwnerIDEmpty = "owner ID cannot be empty"
	errModeEmpty    = "mode cannot be empty"
)

func storageKey(ownerID, mode string) string {
	return inventoryKeyPrefix + ownerID + ":" + mode
}

func validateKey(ownerID, mode string) error {
	if ownerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}
	if mode == "" {
		return errors.InvalidArgument(errModeEmpty)
	}
	return nil
}
