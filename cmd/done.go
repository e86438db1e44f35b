/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// doneCmd marks a task instance or a group complete. Group ids fan
// the completion out to every member task.
var doneCmd = &cobra.Command{
	Use:   "done <task-or-group-id>",
	Short: "Mark a task or group complete (records today's date)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleCompletion(cmd, args[0], true)
	},
}

// undoneCmd clears a completion record.
var undoneCmd = &cobra.Command{
	Use:   "undone <task-or-group-id>",
	Short: "Clear a task's or group's completion record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleCompletion(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
}

func toggleCompletion(cmd *cobra.Command, id string, done bool) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := svc.SetCompletion(id, done); err != nil {
		return fmt.Errorf("update completion: %w", err)
	}
	if done {
		cmd.Printf("Marked %s done.\n", id)
	} else {
		cmd.Printf("Cleared completion for %s.\n", id)
	}
	return nil
}
