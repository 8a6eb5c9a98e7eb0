package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
)

var (
	stat       string
	multiplier float64
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Buy one tower upgrade",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodUpgrade, map[string]any{
			v1alpha1.FieldMatchID: matchID,
			v1alpha1.FieldStat:    stat,
		})
	},
}

var speedCmd = &cobra.Command{
	Use:   "speed",
	Short: "Set the speed multiplier, or cycle it when --multiplier is omitted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fields := map[string]any{v1alpha1.FieldMatchID: matchID}
		if cmd.Flags().Changed("multiplier") {
			fields[v1alpha1.FieldMultiplier] = multiplier
		} else {
			fields[v1alpha1.FieldCycle] = true
		}
		return call(v1alpha1.MethodSetSpeed, fields)
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause a match",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodPause, map[string]any{v1alpha1.FieldMatchID: matchID})
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused match",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodResume, map[string]any{v1alpha1.FieldMatchID: matchID})
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Start a match over with the same seed",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodRestart, map[string]any{v1alpha1.FieldMatchID: matchID})
	},
}

func init() {
	requireMatchID(upgradeCmd)
	upgradeCmd.Flags().StringVar(&stat, "stat", "damage", "damage, range or attackSpeed")

	requireMatchID(speedCmd)
	speedCmd.Flags().Float64Var(&multiplier, "multiplier", 1, "Speed level to switch to")

	requireMatchID(pauseCmd)
	requireMatchID(resumeCmd)
	requireMatchID(restartCmd)
}
