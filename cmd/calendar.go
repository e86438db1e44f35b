/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pcampbell/trellis/internal/ui"
)

// calendarCmd renders the plant-by-month task matrix.
var calendarCmd = &cobra.Command{
	Use:   "calendar [year]",
	Short: "Show a plant-by-month task calendar",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	year := svc.Today().Year()
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		year = y
	}

	cmd.Println(ui.StyleHeader.Render(fmt.Sprintf("Calendar %d", year)))
	cmd.Print(ui.RenderCalendar(svc.AllTasks(), year))
	return nil
}
