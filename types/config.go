/*
Copyright © 2025 Peter Campbell
*/
package types

// AppConfig is the complete application configuration, populated by
// viper from the config file, environment and flags.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Catalog CatalogConfig `mapstructure:"catalog" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Weather WeatherConfig `mapstructure:"weather"`
}

// CatalogConfig locates the plant catalog document.
type CatalogConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// DataConfig holds user-state storage settings.
type DataConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// WeatherConfig controls the optional weather advisory. Zip is the
// postal code used for geocoding; the advisory is best-effort and no
// failure in it is ever fatal.
type WeatherConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Zip     string `mapstructure:"zip" validate:"omitempty,len=5"`
}
