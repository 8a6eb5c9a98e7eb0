// Package inventory implements the slot-based item storage of the standard
// mode and the auto-merging buffer of blitz mode.
package inventory

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	inventoryrepo "github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
)

// Default capacities
const (
	DefaultStoredSlots = 32
	DefaultActiveSlots = 5
)

// Config configures an Inventory
type Config struct {
	// Repository persists every mutation; nil keeps the inventory in memory
	Repository  inventoryrepo.Repository
	OwnerID     string
	Mode        string
	StoredSlots int
	ActiveSlots int
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Repository != nil {
		if cfg.OwnerID == "" {
			vb.RequiredField("OwnerID")
		}
		if cfg.Mode == "" {
			vb.RequiredField("Mode")
		}
	}
	if cfg.StoredSlots < 0 {
		vb.Field("StoredSlots", "must not be negative")
	}
	if cfg.ActiveSlots < 0 {
		vb.Field("ActiveSlots", "must not be negative")
	}
	return vb.Build()
}

// Inventory holds stored and active (equipped) slots. Index-based operations
// silently ignore invalid indexes; every effective mutation is persisted.
type Inventory struct {
	stored []*entities.Item
	active []*entities.Item

	repo    inventoryrepo.Repository
	ownerID string
	mode    string
}

// New creates an empty inventory
func New(cfg *Config) (*Inventory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	storedSlots, activeSlots := cfg.StoredSlots, cfg.ActiveSlots
	if storedSlots == 0 {
		storedSlots = DefaultStoredSlots
	}
	if activeSlots == 0 {
		activeSlots = DefaultActiveSlots
	}

	return &Inventory{
		stored:  make([]*entities.Item, storedSlots),
		active:  make([]*entities.Item, activeSlots),
		repo:    cfg.Repository,
		ownerID: cfg.OwnerID,
		mode:    cfg.Mode,
	}, nil
}

// Load replaces the contents with the persisted snapshot. A missing snapshot
// or a storage failure leaves the inventory empty. Without a repository the
// in-memory contents are kept.
func (inv *Inventory) Load(ctx context.Context) {
	if inv.repo == nil {
		return
	}
	inv.clearSlots()

	out, err := inv.repo.Get(ctx, inventoryrepo.GetInput{OwnerID: inv.ownerID, Mode: inv.mode})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("failed to load inventory, starting empty",
				"owner_id", inv.ownerID,
				"mode", inv.mode,
				"error", err)
		}
		return
	}
	if out.Snapshot == nil {
		return
	}

	seen := make(map[string]bool)
	fill := func(dst []*entities.Item, src []*entities.Item) {
		for i := 0; i < len(dst) && i < len(src); i++ {
			item := src[i]
			if item == nil || seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			copied := *item
			dst[i] = &copied
		}
	}
	fill(inv.active, out.Snapshot.Active)
	fill(inv.stored, out.Snapshot.Stored)
}

// Add places item in the lowest empty stored slot. It returns false when the
// storage is full or the item is already held.
func (inv *Inventory) Add(ctx context.Context, item *entities.Item) bool {
	if item == nil || inv.contains(item.ID) {
		return false
	}
	for i, slot := range inv.stored {
		if slot == nil {
			inv.stored[i] = item
			inv.save(ctx)
			return true
		}
	}
	return false
}

// Equip swaps a stored item into an active slot; whatever was active moves to
// the stored slot
func (inv *Inventory) Equip(ctx context.Context, storedIndex, activeIndex int) {
	if !inBounds(inv.stored, storedIndex) || inv.stored[storedIndex] == nil {
		return
	}
	if !inBounds(inv.active, activeIndex) {
		return
	}
	inv.stored[storedIndex], inv.active[activeIndex] = inv.active[activeIndex], inv.stored[storedIndex]
	inv.save(ctx)
}

// Unequip is the inverse of Equip
func (inv *Inventory) Unequip(ctx context.Context, activeIndex, storedIndex int) {
	if !inBounds(inv.active, activeIndex) || inv.active[activeIndex] == nil {
		return
	}
	if !inBounds(inv.stored, storedIndex) {
		return
	}
	inv.active[activeIndex], inv.stored[storedIndex] = inv.stored[storedIndex], inv.active[activeIndex]
	inv.save(ctx)
}

// Swap exchanges two slots of the same kind
func (inv *Inventory) Swap(ctx context.Context, kind entities.SlotKind, i, j int) {
	slots := inv.slots(kind)
	if !inBounds(slots, i) || !inBounds(slots, j) || i == j {
		return
	}
	slots[i], slots[j] = slots[j], slots[i]
	inv.save(ctx)
}

// Delete clears a slot
func (inv *Inventory) Delete(ctx context.Context, kind entities.SlotKind, index int) {
	slots := inv.slots(kind)
	if !inBounds(slots, index) || slots[index] == nil {
		return
	}
	slots[index] = nil
	inv.save(ctx)
}

// ActiveItems returns the equipped items, skipping empty slots
func (inv *Inventory) ActiveItems() []*entities.Item {
	return compact(inv.active)
}

// Snapshot returns a deep copy of both slot arrays
func (inv *Inventory) Snapshot() *entities.InventorySnapshot {
	snap := &entities.InventorySnapshot{Stored: inv.stored, Active: inv.active}
	return snap.Clone()
}

// Persist writes the current state; failures are logged and ignored
func (inv *Inventory) Persist(ctx context.Context) {
	inv.save(ctx)
}

func (inv *Inventory) save(ctx context.Context) {
	if inv.repo == nil {
		return
	}
	_, err := inv.repo.Save(ctx, inventoryrepo.SaveInput{
		OwnerID:  inv.ownerID,
		Mode:     inv.mode,
		Snapshot: inv.Snapshot(),
	})
	if err != nil {
		slog.Warn("failed to save inventory",
			"owner_id", inv.ownerID,
			"mode", inv.mode,
			"error", err)
	}
}

func (inv *Inventory) slots(kind entities.SlotKind) []*entities.Item {
	switch kind {
	case entities.SlotStored:
		return inv.stored
	case entities.SlotActive:
		return inv.active
	default:
		return nil
	}
}

func (inv *Inventory) contains(id string) bool {
	for _, slots := range [][]*entities.Item{inv.stored, inv.active} {
		for _, item := range slots {
			if item != nil && item.ID == id {
				return true
			}
		}
	}
	return false
}

func (inv *Inventory) clearSlots() {
	for i := range inv.stored {
		inv.stored[i] = nil
	}
	for i := range inv.active {
		inv.active[i] = nil
	}
}

func inBounds(slots []*entities.Item, i int) bool {
	return i >= 0 && i < len(slots)
}

func compact(slots []*entities.Item) []*entities.Item {
	out := make([]*entities.Item, 0, len(slots))
	for _, item := range slots {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
