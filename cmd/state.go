/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backupCmd copies the user-state blob to a destination path.
var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Back up plans, completions and notes to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if err := st.Backup(args[0]); err != nil {
			return fmt.Errorf("backup state: %w", err)
		}
		cmd.Printf("State backed up to %s\n", args[0])
		return nil
	},
}

// restoreCmd replaces the user-state blob with a previously backed-up
// file. Destructive to current state.
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Restore plans, completions and notes from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if err := st.Restore(args[0]); err != nil {
			return fmt.Errorf("restore state: %w", err)
		}
		cmd.Printf("State restored from %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
