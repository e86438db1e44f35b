/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// noteCmd sets or clears the free-text note attached to a task
// instance or a group.
var noteCmd = &cobra.Command{
	Use:   "note <task-or-group-id> [text...]",
	Short: "Attach a note to a task or group (no text clears it)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNote,
}

func init() {
	rootCmd.AddCommand(noteCmd)
}

func runNote(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id := args[0]
	text := strings.Join(args[1:], " ")
	if err := svc.SetNote(id, text); err != nil {
		return err
	}
	if text == "" {
		cmd.Printf("Cleared note for %s.\n", id)
	} else {
		cmd.Printf("Saved note for %s.\n", id)
	}
	return nil
}
