package inventory

import (
	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// DefaultBlitzSlots is the blitz buffer capacity
const DefaultBlitzSlots = 5

// Action is the outcome of offering an item to a blitz inventory
type Action string

// Blitz actions
const (
	ActionAdded         Action = "added"
	ActionUpgraded      Action = "upgraded"
	ActionRejectedWorse Action = "rejected_worse"
	ActionRejectedFull  Action = "rejected_full"
)

// Result describes what TryAdd did
type Result struct {
	Accepted bool
	Action   Action
	Slot     int            // slot written, -1 when rejected
	Replaced *entities.Item // evicted item on upgrade
}

// Blitz is a small buffer where every held item is active. New items merge
// into a similar item (same stat and modifier kind) or take a free slot.
type Blitz struct {
	slots   []*entities.Item
	catalog effects.Resolver
}

// BlitzConfig configures a Blitz inventory
type BlitzConfig struct {
	Catalog effects.Resolver
	Slots   int
}

// Validate validates the config
func (cfg *BlitzConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if cfg.Slots < 0 {
		vb.Field("Slots", "must not be negative")
	}
	return vb.Build()
}

// NewBlitz creates an empty blitz inventory
func NewBlitz(cfg *BlitzConfig) (*Blitz, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	slots := cfg.Slots
	if slots == 0 {
		slots = DefaultBlitzSlots
	}
	return &Blitz{
		slots:   make([]*entities.Item, slots),
		catalog: cfg.Catalog,
	}, nil
}

// TryAdd offers item to the buffer. A similar item is replaced only by a
// strictly larger value; otherwise the item needs a free slot.
func (b *Blitz) TryAdd(item *entities.Item) Result {
	if item == nil {
		return Result{Action: ActionRejectedFull, Slot: -1}
	}

	if idx, existing := b.findSimilar(item); idx >= 0 {
		incoming, _ := b.catalog.Get(item.EffectID)
		if incoming.Value > existing.Value {
			replaced := b.slots[idx]
			b.slots[idx] = item
			return Result{Accepted: true, Action: ActionUpgraded, Slot: idx, Replaced: replaced}
		}
		return Result{Action: ActionRejectedWorse, Slot: -1}
	}

	for i, slot := range b.slots {
		if slot == nil {
			b.slots[i] = item
			return Result{Accepted: true, Action: ActionAdded, Slot: i}
		}
	}
	return Result{Action: ActionRejectedFull, Slot: -1}
}

// Remove empties a slot and returns what it held
func (b *Blitz) Remove(index int) *entities.Item {
	if !inBounds(b.slots, index) {
		return nil
	}
	removed := b.slots[index]
	b.slots[index] = nil
	return removed
}

// Clear empties every slot
func (b *Blitz) Clear() {
	for i := range b.slots {
		b.slots[i] = nil
	}
}

// ActiveItems returns the held items, skipping empty slots
func (b *Blitz) ActiveItems() []*entities.Item {
	return compact(b.slots)
}

// Snapshot reports the buffer as the active array of a snapshot
func (b *Blitz) Snapshot() *entities.InventorySnapshot {
	snap := &entities.InventorySnapshot{Stored: []*entities.Item{}, Active: b.slots}
	return snap.Clone()
}

func (b *Blitz) findSimilar(item *entities.Item) (int, *entities.Effect) {
	incoming, ok := b.catalog.Get(item.EffectID)
	if item.EffectID == "" || !ok {
		return -1, nil
	}
	for i, slot := range b.slots {
		if slot == nil || slot.EffectID == "" {
			continue
		}
		held, ok := b.catalog.Get(slot.EffectID)
		if !ok {
			continue
		}
		if held.TargetStat == incoming.TargetStat && held.Kind == incoming.Kind {
			return i, held
		}
	}
	return -1, nil
}
