package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
)

var (
	action string
	slots  string
	from   int
	to     int
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Edit a match inventory",
	Long: `Equip, unequip, swap or delete items. Equip moves stored slot --from into
active slot --to; unequip does the reverse. Swap and delete act on --slots.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodEditInventory, map[string]any{
			v1alpha1.FieldMatchID: matchID,
			v1alpha1.FieldAction:  action,
			v1alpha1.FieldSlots:   slots,
			v1alpha1.FieldFrom:    from,
			v1alpha1.FieldTo:      to,
		})
	},
}

func init() {
	requireMatchID(inventoryCmd)
	inventoryCmd.Flags().StringVar(&action, "action", "", "equip, unequip, swap or delete (required)")
	inventoryCmd.Flags().StringVar(&slots, "slots", "stored", "stored or active")
	inventoryCmd.Flags().IntVar(&from, "from", 0, "Source slot")
	inventoryCmd.Flags().IntVar(&to, "to", 0, "Destination slot")
	_ = inventoryCmd.MarkFlagRequired("action") // nolint:errcheck // safe to ignore in init
}
