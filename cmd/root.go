/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pcampbell/trellis/catalog"
	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/schedule"
	"github.com/pcampbell/trellis/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// hideCompleted filters completed tasks out of query views.
	hideCompleted bool
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trellis",
	Short: "Trellis plans your garden's task calendar.",
	Long: `Trellis derives a calendar of actionable gardening tasks (sow,
transplant, fertilize, harvest) from a plant catalog and your per-plant
planting plans, tracks completion and notes, and keeps recurring care
tasks surfacing on schedule.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.trellis/.trellis.yaml or $HOME/.trellis.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&hideCompleted, "hide-completed", false, "hide completed tasks in query views")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetStateFilePath returns the full path to the user-state file.
func GetStateFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Data.Dir, config.Data.File)
}

// GetStore initializes and returns the state store.
func GetStore() (store.StateStore, error) {
	s := store.NewFileStateStore()
	config := GetConfig()

	err := s.Initialize(map[string]string{
		"stateFile":       GetStateFilePath(),
		"stateFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize state store at %s: %w", GetStateFilePath(), err)
	}
	return s, nil
}

// GetCatalog loads the plant catalog. A missing or unreadable catalog
// is not fatal: the service runs with nil and every query returns
// empty results.
func GetCatalog() *models.Catalog {
	config := GetConfig()
	cat, err := catalog.Load(afero.NewOsFs(), config.Catalog.File)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "warning: %v (continuing with empty catalog)\n", err)
		}
		return nil
	}
	return cat
}

// newService wires catalog, store and engine for a command invocation.
// The caller owns closing the returned store.
func newService() (*schedule.Service, store.StateStore, error) {
	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	return schedule.NewService(GetCatalog(), st), st, nil
}
