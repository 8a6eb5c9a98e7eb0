package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
)

var (
	mode              string
	seed              int64
	ownerID           string
	includeBackground bool
)

var createMatchCmd = &cobra.Command{
	Use:   "create-match",
	Short: "Start a match",
	Long:  `Start a standard or blitz match. The response includes the background layout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fields := map[string]any{
			v1alpha1.FieldMode:    mode,
			v1alpha1.FieldOwnerID: ownerID,
		}
		if cmd.Flags().Changed("seed") {
			fields[v1alpha1.FieldSeed] = seed
		}
		return call(v1alpha1.MethodCreateMatch, fields)
	},
}

var getSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show the current state of a match",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodGetSnapshot, map[string]any{
			v1alpha1.FieldMatchID:           matchID,
			v1alpha1.FieldIncludeBackground: includeBackground,
		})
	},
}

var listMatchesCmd = &cobra.Command{
	Use:   "list-matches",
	Short: "List running matches",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodListMatches, map[string]any{
			v1alpha1.FieldOwnerID: ownerID,
		})
	},
}

var endMatchCmd = &cobra.Command{
	Use:   "end-match",
	Short: "Stop a match and show its final state",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodEndMatch, map[string]any{
			v1alpha1.FieldMatchID: matchID,
		})
	},
}

func init() {
	createMatchCmd.Flags().StringVar(&mode, "mode", "standard", "standard or blitz")
	createMatchCmd.Flags().Int64Var(&seed, "seed", 0, "Match seed; random when omitted")
	createMatchCmd.Flags().StringVar(&ownerID, "owner-id", "", "Player whose standard inventory is loaded and saved")

	requireMatchID(getSnapshotCmd)
	getSnapshotCmd.Flags().BoolVar(&includeBackground, "background", false, "Include the background layout")

	listMatchesCmd.Flags().StringVar(&ownerID, "owner-id", "", "Only list this player's matches")

	requireMatchID(endMatchCmd)
}
