package entities

// Item is a piece of loot; EffectID may be empty or unknown, in which case the
// item does nothing
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EffectID    string `json:"effect_id,omitempty"`
}

// SlotKind selects one of the inventory slot arrays
type SlotKind string

// Slot kinds
const (
	SlotStored SlotKind = "stored"
	SlotActive SlotKind = "active"
)

// InventorySnapshot is the persisted form of an inventory. Empty slots are nil.
type InventorySnapshot struct {
	Stored []*Item `json:"stored"`
	Active []*Item `json:"active"`
}

// Clone returns a deep copy
func (s *InventorySnapshot) Clone() *InventorySnapshot {
	if s == nil {
		return nil
	}
	return &InventorySnapshot{
		Stored: cloneSlots(s.Stored),
		Active: cloneSlots(s.Active),
	}
}

// Count returns how many slots hold an item
func (s *InventorySnapshot) Count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, slots := range [][]*Item{s.Stored, s.Active} {
		for _, item := range slots {
			if item != nil {
				n++
			}
		}
	}
	return n
}

func cloneSlots(slots []*Item) []*Item {
	out := make([]*Item, len(slots))
	for i, item := range slots {
		if item != nil {
			copied := *item
			out[i] = &copied
		}
	}
	return out
}
