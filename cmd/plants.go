/*
Copyright © 2025 Peter Campbell
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcampbell/trellis/internal/ui"
	"github.com/pcampbell/trellis/models"
)

// plantsCmd lists catalog plants, optionally filtered by a search
// term matched against name, id and species.
var plantsCmd = &cobra.Command{
	Use:   "plants [search]",
	Short: "List catalog plants and their current plans",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlants,
}

// plantCmd shows one plant's detail and its derived task rows.
var plantCmd = &cobra.Command{
	Use:   "plant <plant-id>",
	Short: "Show one plant's detail and derived tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlant,
}

func init() {
	rootCmd.AddCommand(plantsCmd)
	rootCmd.AddCommand(plantCmd)
}

func runPlants(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	cat := svc.Catalog()
	if cat == nil {
		cmd.Println("No catalog loaded.")
		return nil
	}

	search := ""
	if len(args) > 0 {
		search = strings.ToLower(args[0])
	}
	var plants []models.Plant
	for _, p := range cat.Plants {
		blob := strings.ToLower(p.Name + " " + p.CatalogID + " " + p.Species)
		if search == "" || strings.Contains(blob, search) {
			plants = append(plants, p)
		}
	}

	cmd.Print(ui.RenderPlantList(plants, svc.Plan))
	return nil
}

func runPlant(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	key := args[0]
	cat := svc.Catalog()
	plant := cat.Plant(key)
	if plant == nil {
		return fmt.Errorf("plant %q not found in catalog", key)
	}

	plan := svc.Plan(key)
	cmd.Println(ui.StyleHeader.Render(plant.Name))
	if plant.Species != "" {
		cmd.Println(ui.StyleSubtle.Render(plant.Species))
	}
	if plant.Category != "" {
		cmd.Printf("Category: %s\n", plant.Category)
	}
	cmd.Printf("Plan: method=%s season=%s cycles=%d\n", plan.Method, plan.Season, plan.Cycles)

	printWindows(cmd, "Spring", plantSeason(plant, models.SeasonSpring))
	printWindows(cmd, "Fall", plantSeason(plant, models.SeasonFall))

	groups, err := svc.PlantTasks(key, hideCompleted)
	if err != nil {
		return err
	}
	cmd.Println(ui.StyleSectionTitle.Render("Tasks"))
	cmd.Print(ui.RenderGroups(groups, svc.Today(), rowState(st), false))
	return nil
}

func plantSeason(p *models.Plant, season string) *models.SeasonWindows {
	return p.Planting.Season(season)
}

func printWindows(cmd *cobra.Command, label string, w *models.SeasonWindows) {
	if w == nil {
		return
	}
	line := func(name string, win *models.DateWindow) {
		if win == nil || (win.Start == "" && win.End == "") {
			return
		}
		cmd.Printf("%s %s: %s → %s\n", label, name, win.Start, win.End)
	}
	line("indoor start", w.IndoorStart)
	line("transplant", w.Transplant)
	line("direct sow", w.DirectSow)
}
