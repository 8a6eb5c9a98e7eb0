package testutils

import (
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// Common test identifiers
const (
	TestOwnerID = "player-test-001"
	TestSeed    = int64(12345)
)

// CreateTestItem creates an item carrying effectID
func CreateTestItem(id, effectID string) *entities.Item {
	return &entities.Item{
		ID:          id,
		Name:        "Test " + effectID,
		Description: "test item",
		EffectID:    effectID,
	}
}

// CreateTestSnapshot creates a standard-sized snapshot with the given items in
// the leading stored and active slots
func CreateTestSnapshot(stored []*entities.Item, active []*entities.Item) *entities.InventorySnapshot {
	snap := &entities.InventorySnapshot{
		Stored: make([]*entities.Item, 32),
		Active: make([]*entities.Item, 5),
	}
	copy(snap.Stored, stored)
	copy(snap.Active, active)
	return snap
}
