/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcampbell/trellis/models"
)

var (
	planMethod string
	planSeason string
	planCycles int
	planReset  bool
)

// planCmd shows or updates a plant's planting plan. Flags patch only
// the fields given; everything else keeps its stored value.
var planCmd = &cobra.Command{
	Use:   "plan <plant-id>",
	Short: "Show or update a plant's planting plan",
	Long: `Show or update a plant's planting plan.

Without flags, prints the resolved plan (stored values merged over
defaults). With flags, applies a partial update:

  trellis plan carrot --method direct_sow --season spring
  trellis plan carrot --cycles 3
  trellis plan carrot --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planMethod, "method", "", "sowing method: either, direct_sow, transplant")
	planCmd.Flags().StringVar(&planSeason, "season", "", "season: both, spring, fall")
	planCmd.Flags().IntVar(&planCycles, "cycles", 0, "number of succession cycles (>= 1)")
	planCmd.Flags().BoolVar(&planReset, "reset", false, "discard the stored plan and revert to defaults")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	key := args[0]
	if svc.Catalog().Plant(key) == nil {
		return fmt.Errorf("plant %q not found in catalog", key)
	}

	if planReset {
		if err := st.ResetPlan(key); err != nil {
			return fmt.Errorf("reset plan: %w", err)
		}
		cmd.Printf("Plan for %s reset to defaults.\n", key)
		return printPlan(cmd, key, svc.Plan(key))
	}

	patch := models.PlanPatch{}
	if cmd.Flags().Changed("method") {
		patch.Method = &planMethod
	}
	if cmd.Flags().Changed("season") {
		patch.Season = &planSeason
	}
	if cmd.Flags().Changed("cycles") {
		patch.Cycles = &planCycles
	}

	if patch.Method == nil && patch.Season == nil && patch.Cycles == nil {
		return printPlan(cmd, key, svc.Plan(key))
	}

	plan, err := svc.SetPlan(key, patch)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return printPlan(cmd, key, plan)
}

func printPlan(cmd *cobra.Command, key string, plan models.Plan) error {
	cmd.Printf("%s: method=%s season=%s cycles=%d\n", key, plan.Method, plan.Season, plan.Cycles)
	return nil
}
