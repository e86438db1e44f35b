/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pcampbell/trellis/internal/ui"
	"github.com/pcampbell/trellis/store"
)

// todayCmd shows overdue tasks plus everything due in the next week.
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show overdue tasks and tasks due in the next 7 days",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	groups := svc.DueSoonTasks(hideCompleted)
	cmd.Println(ui.StyleHeader.Render("Due soon (overdue + next 7 days)"))
	cmd.Print(ui.RenderGroups(groups, svc.Today(), rowState(st), true))
	return nil
}

// rowState adapts store lookups to the renderer's callback. Group-row
// completion is derived from member records by the renderer itself, so
// a plain record lookup is all this needs.
func rowState(st store.StateStore) func(id string) ui.RowState {
	return func(id string) ui.RowState {
		rec, _ := st.Completion(id)
		return ui.RowState{Completed: rec.Done, Note: st.Note(id)}
	}
}
