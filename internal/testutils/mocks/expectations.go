// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	inventoryrepo "github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
	inventorymock "github.com/KirkDiggler/tower-defense/internal/repositories/inventory/mock"
)

// ExpectInventoryGet sets up a mock expectation for loading an owner's saved
// inventory. ctx may be a context or a gomock matcher.
func ExpectInventoryGet(
	ctx any, mockRepo *inventorymock.MockRepository,
	ownerID, mode string, snap *entities.InventorySnapshot,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, inventoryrepo.GetInput{OwnerID: ownerID, Mode: mode}).
		Return(&inventoryrepo.GetOutput{Snapshot: snap}, nil)
}

// ExpectInventoryMissing sets up a mock expectation for an owner with nothing saved
func ExpectInventoryMissing(ctx any, mockRepo *inventorymock.MockRepository, ownerID, mode string) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, inventoryrepo.GetInput{OwnerID: ownerID, Mode: mode}).
		Return(nil, errors.NotFoundf("no inventory saved for %s", ownerID))
}

// ExpectInventorySaves sets up a mock expectation for n successful saves
func ExpectInventorySaves(ctx any, mockRepo *inventorymock.MockRepository, n int) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		Return(&inventoryrepo.SaveOutput{}, nil).
		Times(n)
}
