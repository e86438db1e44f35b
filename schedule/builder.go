package schedule

import (
	"time"

	"github.com/pcampbell/trellis/models"
)

// hardenOffLeadDays is how far ahead of transplanting the harden-off
// step lands when its date is rewritten against a resolved transplant
// anchor.
const hardenOffLeadDays = 10

// defaultSuccessionIntervalDays separates succession cycles when no
// template specifies its own interval.
const defaultSuccessionIntervalDays = 21

// BuildPlantSchedule transforms a plant's static task plan into dated
// instances consistent with one resolved plan: it picks the season,
// resolves anchor dates from the planting-window midpoints, shifts or
// rewrites every template against those anchors, drops workflow steps
// the chosen method excludes, and expands succession cycles.
//
// Plants without structured planting windows keep their templates'
// original dates, unshifted and unfiltered. Templates whose date never
// resolves are silently excluded.
func BuildPlantSchedule(plant *models.Plant, plan models.Plan) []models.TaskInstance {
	if plant == nil {
		return nil
	}
	scope := plant.Key()

	base := shiftedTemplates(plant, plan)

	interval := successionInterval(plant)
	var out []models.TaskInstance
	for cycle := 1; cycle <= plan.Cycles; cycle++ {
		offset := (cycle - 1) * interval
		for _, st := range base {
			due := st.due
			if offset != 0 {
				due = models.AddDays(due, offset)
			}
			idx := (cycle-1)*len(plant.TaskPlan) + st.idx
			inst := models.NewTaskInstance(scope, plant.Name, plant.CatalogID, st.tpl, idx, due)
			inst.Cycle = cycle
			out = append(out, inst)
		}
	}
	return out
}

// shiftedTemplate pairs a template with its resolved due date and its
// position in the original task plan.
type shiftedTemplate struct {
	tpl *models.TaskTemplate
	due time.Time
	idx int
}

func shiftedTemplates(plant *models.Plant, plan models.Plan) []shiftedTemplate {
	season := chooseSeason(plant, plan)
	windows := plant.Planting.Season(season)
	if windows == nil {
		// Escape hatch: no structured windows, keep original dates.
		return originalTemplates(plant)
	}

	newSeed, seedOK := models.WindowMidpoint(windows.IndoorStart)
	newTransplant, transplantOK := models.WindowMidpoint(windows.Transplant)
	newDirect, directOK := models.WindowMidpoint(windows.DirectSow)

	// In-bed anchor by method; 'either' prefers transplant.
	var newInBed time.Time
	inBedOK := false
	switch plan.Method {
	case models.MethodTransplant:
		newInBed, inBedOK = newTransplant, transplantOK
	case models.MethodDirectSow:
		newInBed, inBedOK = newDirect, directOK
	default:
		if transplantOK {
			newInBed, inBedOK = newTransplant, true
		} else {
			newInBed, inBedOK = newDirect, directOK
		}
	}

	baseSeed, baseSeedOK, baseInBed, baseInBedOK := baselineAnchors(plant)

	seedDelta := 0
	if baseSeedOK && seedOK {
		seedDelta = models.DaysBetween(baseSeed, newSeed)
	}
	bedDelta := 0
	if baseInBedOK && inBedOK {
		bedDelta = models.DaysBetween(baseInBed, newInBed)
	}

	var out []shiftedTemplate
	for i := range plant.TaskPlan {
		tpl := &plant.TaskPlan[i]

		if excludedByMethod(tpl.Category, plan.Method) {
			continue
		}

		due, ok := rewriteDate(tpl, seedOK, newSeed, transplantOK, newTransplant, directOK, newDirect, seedDelta, bedDelta)
		if !ok {
			continue
		}
		out = append(out, shiftedTemplate{tpl: tpl, due: due, idx: i})
	}
	return out
}

// chooseSeason resolves the plan's season selection against the
// windows the plant actually defines: a specific selection wins, and
// 'both' prefers spring when a spring window exists.
func chooseSeason(plant *models.Plant, plan models.Plan) string {
	if plan.Season != "" && plan.Season != models.SeasonBoth {
		return plan.Season
	}
	if plant.Planting != nil && plant.Planting.Spring != nil {
		return models.SeasonSpring
	}
	if plant.Planting != nil && plant.Planting.Fall != nil {
		return models.SeasonFall
	}
	return ""
}

// originalTemplates produces the unshifted, unfiltered template set
// for plants with no usable planting windows.
func originalTemplates(plant *models.Plant) []shiftedTemplate {
	var out []shiftedTemplate
	for i := range plant.TaskPlan {
		tpl := &plant.TaskPlan[i]
		due, ok := models.ParseISODate(tpl.Due)
		if !ok {
			continue
		}
		out = append(out, shiftedTemplate{tpl: tpl, due: due, idx: i})
	}
	return out
}

// baselineAnchors scans the original task plan for the catalog
// author's assumed dates: the first seed-start template and the first
// transplant-or-direct-sow template.
func baselineAnchors(plant *models.Plant) (seed time.Time, seedOK bool, inBed time.Time, inBedOK bool) {
	for i := range plant.TaskPlan {
		tpl := &plant.TaskPlan[i]
		d, ok := models.ParseISODate(tpl.Due)
		if !ok {
			continue
		}
		if !seedOK && tpl.Category == models.CategorySeedStart {
			seed, seedOK = d, true
		}
		if !inBedOK && (tpl.Category == models.CategoryTransplant || tpl.Category == models.CategoryDirectSow) {
			inBed, inBedOK = d, true
		}
		if seedOK && inBedOK {
			break
		}
	}
	return
}

// excludedByMethod drops workflow steps the chosen sowing method makes
// meaningless: direct sowing has no indoor seed raising, transplanting
// has no direct-sow step. 'either' drops nothing.
func excludedByMethod(cat models.TemplateCategory, method string) bool {
	switch method {
	case models.MethodDirectSow:
		return cat == models.CategorySeedStart || cat == models.CategoryHardenOff || cat == models.CategoryTransplant
	case models.MethodTransplant:
		return cat == models.CategoryDirectSow
	}
	return false
}

// rewriteDate resolves one template's due date: anchor templates get
// their season's new anchor outright, harden-off counts back from the
// transplant anchor, and everything else shifts by the phase delta.
func rewriteDate(tpl *models.TaskTemplate,
	seedOK bool, newSeed time.Time,
	transplantOK bool, newTransplant time.Time,
	directOK bool, newDirect time.Time,
	seedDelta, bedDelta int,
) (time.Time, bool) {
	switch {
	case tpl.Category == models.CategorySeedStart && seedOK:
		return newSeed, true
	case tpl.Category == models.CategoryTransplant && transplantOK:
		return newTransplant, true
	case tpl.Category == models.CategoryDirectSow && directOK:
		return newDirect, true
	case tpl.Category == models.CategoryHardenOff && transplantOK:
		return models.AddDays(newTransplant, -hardenOffLeadDays), true
	}

	// Proportional shift of the original date, seed-phase templates by
	// the seed delta, everything else (including unclassifiable ones)
	// by the bed delta.
	orig, ok := models.ParseISODate(tpl.Due)
	if !ok {
		return time.Time{}, false
	}
	delta := bedDelta
	if tpl.Category.SeedPhase() {
		delta = seedDelta
	}
	if delta == 0 {
		return orig, true
	}
	return models.AddDays(orig, delta), true
}

// successionInterval returns the cycle offset for a plant's succession
// plantings: the first template carrying succession_interval_days
// wins, default 21 days.
func successionInterval(plant *models.Plant) int {
	for i := range plant.TaskPlan {
		if v := plant.TaskPlan[i].SuccessionIntervalDays; v > 0 {
			return v
		}
	}
	return defaultSuccessionIntervalDays
}
