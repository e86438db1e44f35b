/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pcampbell/trellis/internal/ui"
	"github.com/pcampbell/trellis/internal/weather"
	"github.com/pcampbell/trellis/schedule"
)

// weatherCmd prints the best-effort weather and irrigation advisory.
// Any failure here degrades to a notice; correctness of the schedule
// never depends on it.
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show weather-aware irrigation tips for the next week's tasks",
	Args:  cobra.NoArgs,
	RunE:  runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	config := GetConfig()
	if !config.Weather.Enabled {
		cmd.Println("Weather advisory disabled in config.")
		return nil
	}

	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	client := weather.NewClient()
	ctx := cmd.Context()

	loc, err := client.Geocode(ctx, config.Weather.Zip)
	if err != nil {
		cmd.Printf("Weather unavailable: %v\n", err)
		return nil
	}
	forecast, err := client.DailyForecast(ctx, loc)
	if err != nil {
		cmd.Printf("Weather unavailable: %v\n", err)
		return nil
	}

	cmd.Println(ui.StyleHeader.Render("Weather"))
	cmd.Print(weather.Describe(loc, forecast))

	nearTerm := schedule.DueSoon(svc.AllTasks(), st, svc.Today(), false)
	tips := weather.Tips(forecast, nearTerm)
	if len(tips) > 0 {
		cmd.Println(ui.StyleSectionTitle.Render("Tips"))
		for _, tip := range tips {
			cmd.Printf("  - %s\n", tip)
		}
	}
	return nil
}
