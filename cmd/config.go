/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/types"
)

const (
	configName = ".trellis"
	envPrefix  = "TRELLIS"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// .env is optional; absence is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. TRELLIS_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	if cfgFlag := viper.GetString("config"); cfgFlag != "" {
		viper.SetConfigFile(cfgFlag)
	} else if _, err := os.Stat(".trellis"); !os.IsNotExist(err) {
		// Project-local config directory wins.
		viper.AddConfigPath(".trellis")
		viper.SetConfigName(configName)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: could not read config file: %v\n", err)
		}
		// No config file is fine; defaults and env carry the day.
	} else if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		cobra.CheckErr(fmt.Errorf("unmarshal config: %w", err))
	}
	if err := models.ValidateStruct(&GlobalAppConfig); err != nil {
		cobra.CheckErr(fmt.Errorf("invalid configuration: %w", err))
	}
}

func setConfigDefaults() {
	viper.SetDefault("catalog.file", "garden_catalog.json")
	viper.SetDefault("data.dir", ".trellis")
	viper.SetDefault("data.file", "state.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("weather.enabled", true)
	viper.SetDefault("weather.zip", "20002")
}
