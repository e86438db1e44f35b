/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcampbell/trellis/internal/ui"
)

var upcomingWindowDays int

// upcomingCmd lists tasks due within a caller-chosen window.
var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show tasks due within the next N days",
	Args:  cobra.NoArgs,
	RunE:  runUpcoming,
}

func init() {
	upcomingCmd.Flags().IntVar(&upcomingWindowDays, "days", 30, "look-ahead window in days")
	rootCmd.AddCommand(upcomingCmd)
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	if upcomingWindowDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", upcomingWindowDays)
	}

	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	groups := svc.UpcomingTasks(upcomingWindowDays, hideCompleted)
	cmd.Println(ui.StyleHeader.Render(fmt.Sprintf("Upcoming (next %d days)", upcomingWindowDays)))
	cmd.Print(ui.RenderGroups(groups, svc.Today(), rowState(st), true))
	return nil
}
