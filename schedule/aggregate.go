package schedule

import (
	"slices"
	"time"

	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/store"
)

// dueSoonWindowDays is the inclusive look-ahead of the due-soon view;
// overdue tasks are always included.
const dueSoonWindowDays = 7

// BuildAllTasks produces the full task universe for the given date:
// every global task, every plant's schedule under its current plan,
// plan-based filtering, rolling expansion, and a single dedup pass.
// A nil catalog yields an empty (never nil-panicking) result.
func BuildAllTasks(cat *models.Catalog, st store.StateStore, today time.Time) []models.TaskInstance {
	if cat == nil {
		return nil
	}

	var tasks []models.TaskInstance

	// Global tasks pass unconditionally; plans never touch them.
	for i := range cat.GlobalTasks {
		tpl := &cat.GlobalTasks[i]
		due, ok := models.ParseISODate(tpl.Due)
		if !ok {
			continue
		}
		inst := models.NewTaskInstance(models.GlobalScope, "Global", "", tpl, i, due)
		inst.IsGlobal = true
		tasks = append(tasks, inst)
	}

	for i := range cat.Plants {
		plant := &cat.Plants[i]
		plan := GetPlan(st, plant.Key())
		tasks = append(tasks, BuildPlantSchedule(plant, plan)...)
	}

	tasks = filterByPlan(tasks, st)
	tasks = ExpandRolling(tasks, st, today)
	return dedupe(tasks)
}

// filterByPlan re-applies each plant's method exclusions (defensively;
// the builder already drops them) and enforces a specific season
// selection against each instance's resolved season tag.
func filterByPlan(tasks []models.TaskInstance, st store.StateStore) []models.TaskInstance {
	out := tasks[:0]
	for _, t := range tasks {
		if t.IsGlobal {
			out = append(out, t)
			continue
		}
		plan := GetPlan(st, t.Scope)
		if excludedByMethod(t.Category, plan.Method) {
			continue
		}
		if plan.Season != models.SeasonBoth && plan.Season != t.SeasonTag() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// dedupe drops instances with a duplicate identifier (first occurrence
// wins) or no resolved due date. This is the single dedup point;
// downstream consumers never see duplicate ids.
func dedupe(tasks []models.TaskInstance) []models.TaskInstance {
	seen := make(map[string]struct{}, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if t.Due.IsZero() {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DueSoon returns tasks due on or before today+7, overdue included,
// sorted ascending by due date.
func DueSoon(tasks []models.TaskInstance, st store.StateStore, today time.Time, hideCompleted bool) []models.TaskInstance {
	end := models.AddDays(models.Midnight(today), dueSoonWindowDays)
	return selectWindow(tasks, st, hideCompleted, func(due time.Time) bool {
		return !due.After(end)
	})
}

// Upcoming returns tasks due within [today, today+windowDays], sorted
// ascending by due date.
func Upcoming(tasks []models.TaskInstance, st store.StateStore, today time.Time, windowDays int, hideCompleted bool) []models.TaskInstance {
	start := models.Midnight(today)
	end := models.AddDays(start, windowDays)
	return selectWindow(tasks, st, hideCompleted, func(due time.Time) bool {
		return !due.Before(start) && !due.After(end)
	})
}

func selectWindow(tasks []models.TaskInstance, st store.StateStore, hideCompleted bool, keep func(time.Time) bool) []models.TaskInstance {
	var out []models.TaskInstance
	for _, t := range tasks {
		if !keep(t.Due) {
			continue
		}
		if hideCompleted && IsCompleted(st, t.ID) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b models.TaskInstance) int {
		return a.Due.Compare(b.Due)
	})
	return out
}

// IsCompleted reports whether a completion record marks the id done.
func IsCompleted(st store.StateStore, id string) bool {
	rec, ok := st.Completion(id)
	return ok && rec.Done
}
