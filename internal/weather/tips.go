package weather

import (
	"fmt"
	"strings"

	"github.com/pcampbell/trellis/models"
)

const maxTips = 6

// rainInches converts the first-day precipitation figure to inches,
// whatever unit the forecast reports.
func (f *Forecast) rainInches(day int) float64 {
	if day >= len(f.Daily.Precipitation) {
		return 0
	}
	p := f.Daily.Precipitation[day]
	if f.DailyUnits.Precipitation == "mm" {
		return p / 25.4
	}
	return p
}

func (f *Forecast) tempMax() (float64, bool) {
	if len(f.Daily.TempMax) == 0 {
		return 0, false
	}
	return f.Daily.TempMax[0], true
}

func (f *Forecast) tempMin() (float64, bool) {
	if len(f.Daily.TempMin) == 0 {
		return 0, false
	}
	return f.Daily.TempMin[0], true
}

func (f *Forecast) windMax() (float64, bool) {
	if len(f.Daily.WindMax) == 0 {
		return 0, false
	}
	return f.Daily.WindMax[0], true
}

// Tips distills the forecast and the near-term task list into a short
// list of gardening advisories.
func Tips(f *Forecast, nearTerm []models.TaskInstance) []string {
	if f == nil {
		return nil
	}
	var tips []string
	rain := f.rainInches(0)

	if rain >= 0.25 {
		tips = append(tips, "Rain expected: reduce irrigation and prioritize airflow to limit fungal pressure.")
	} else {
		tips = append(tips, "No meaningful rain expected: check containers daily; shallow planters dry quickly.")
	}
	if tmax, ok := f.tempMax(); ok && tmax >= 88 {
		tips = append(tips, "Heat stress risk: water early, mulch, and watch for blossom drop.")
	}
	if tmin, ok := f.tempMin(); ok && tmin <= 40 {
		tips = append(tips, "Cool night risk: protect tender transplants or delay transplanting.")
	}
	if wmax, ok := f.windMax(); ok && wmax >= 18 {
		tips = append(tips, "Windy day: secure trellises and stakes; consider delaying foliar sprays.")
	}

	transplants, ferts := 0, 0
	for i := range nearTerm {
		t := &nearTerm[i]
		if t.Category == models.CategoryTransplant {
			transplants++
		}
		if t.Fertilizer() {
			ferts++
		}
	}
	if transplants > 0 {
		if rain >= 0.25 {
			tips = append(tips, "Transplanting soon: avoid planting into saturated soil; wait until it is workable.")
		}
		if tmin, ok := f.tempMin(); ok && tmin <= 40 {
			tips = append(tips, "Transplanting soon: harden off gently and consider row cover for cold nights.")
		}
	}
	if ferts > 0 && rain >= 0.25 {
		tips = append(tips, "Fertilizing soon: delay granular top-dress ahead of heavy rain to reduce nutrient loss.")
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}

// SummarizeIrrigation produces the one-line irrigation recommendation.
func SummarizeIrrigation(f *Forecast) string {
	if f == nil {
		return "Weather unavailable; maintain your normal schedule."
	}
	r0, r1 := f.rainInches(0), f.rainInches(1)
	if r0 >= 0.2 || r1 >= 0.2 {
		return "Rain is expected. Consider reducing or pausing irrigation and re-check soil moisture."
	}
	if tmax, ok := f.tempMax(); ok && tmax >= 88 {
		return "Hot day expected. Consider an extra short irrigation cycle for containers and shallow-rooted greens."
	}
	return "Maintain your normal schedule."
}

// Describe renders a compact forecast summary block.
func Describe(loc *Location, f *Forecast) string {
	if f == nil || len(f.Daily.Time) == 0 {
		return "Weather data unavailable."
	}
	var b strings.Builder
	if loc != nil {
		fmt.Fprintf(&b, "Location: %s (ZIP %s)\n", loc.Name, loc.Zip)
	}
	fmt.Fprintf(&b, "Date: %s\n", f.Daily.Time[0])
	if tmax, ok := f.tempMax(); ok {
		tmin, _ := f.tempMin()
		fmt.Fprintf(&b, "Temp: %.0f–%.0f %s\n", tmin, tmax, f.DailyUnits.Temperature)
	}
	fmt.Fprintf(&b, "Rain: %.2f in\n", f.rainInches(0))
	if wmax, ok := f.windMax(); ok {
		fmt.Fprintf(&b, "Wind: %.0f %s\n", wmax, f.DailyUnits.WindSpeed)
	}
	b.WriteString("Irrigation: " + SummarizeIrrigation(f) + "\n")
	return b.String()
}
