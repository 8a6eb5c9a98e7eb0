package game

import (
	"context"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// InventoryAction names an inventory edit
type InventoryAction string

// Inventory actions
const (
	InventoryEquip   InventoryAction = "equip"
	InventoryUnequip InventoryAction = "unequip"
	InventorySwap    InventoryAction = "swap"
	InventoryDelete  InventoryAction = "delete"
)

// InventoryOp is a player edit of the inventory.
//
//	equip:   From is a stored slot, To an active slot
//	unequip: From is an active slot, To a stored slot
//	swap:    swaps From and To within Slots
//	delete:  clears From within Slots
//
// Blitz inventories only accept delete, on their single row of slots.
type InventoryOp struct {
	Action InventoryAction
	Slots  entities.SlotKind
	From   int
	To     int
}

// EditInventory applies op and recomputes the tower buffs. Out-of-range
// indices are ignored; an action the mode does not support is an error.
func (g *Game) EditInventory(ctx context.Context, op InventoryOp) error {
	if g.blitz != nil {
		if op.Action != InventoryDelete {
			return errors.FailedPreconditionf("blitz inventory does not support %q", op.Action)
		}
		g.blitz.Remove(op.From)
		g.refreshBuffs()
		return nil
	}

	switch op.Action {
	case InventoryEquip:
		g.stored.Equip(ctx, op.From, op.To)
	case InventoryUnequip:
		g.stored.Unequip(ctx, op.From, op.To)
	case InventorySwap:
		if err := validSlots(op.Slots); err != nil {
			return err
		}
		g.stored.Swap(ctx, op.Slots, op.From, op.To)
	case InventoryDelete:
		if err := validSlots(op.Slots); err != nil {
			return err
		}
		g.stored.Delete(ctx, op.Slots, op.From)
	default:
		return errors.InvalidArgumentf("unknown inventory action %q", op.Action)
	}

	g.refreshBuffs()
	return nil
}

func validSlots(kind entities.SlotKind) error {
	switch kind {
	case entities.SlotStored, entities.SlotActive:
		return nil
	default:
		return errors.InvalidArgumentf("unknown slot kind %q", kind)
	}
}
