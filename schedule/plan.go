// Package schedule derives the concrete, dated task universe from the
// static plant catalog and the user's per-plant plans. All of its
// computations are pure and re-entrant: state flows in through the
// StateStore collaborator and the derived task set is rebuilt in full
// on every query.
package schedule

import (
	"fmt"

	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/store"
)

// GetPlan returns the stored plan for a plant merged over defaults.
// It never returns a partial record: absent or partially-saved plans
// resolve to concrete method/season/cycle values.
func GetPlan(st store.StateStore, plantID string) models.Plan {
	plan := models.DefaultPlan()
	saved, ok := st.Plan(plantID)
	if !ok {
		return plan
	}
	if saved.Method != "" {
		plan.Method = saved.Method
	}
	if saved.Season != "" {
		plan.Season = saved.Season
	}
	if saved.Cycles >= 1 {
		plan.Cycles = saved.Cycles
	}
	return plan
}

// SetPlan merges a patch over the existing (or default) plan,
// persists, and returns the result. Invalid cycle counts are coerced
// to 1 rather than rejected.
func SetPlan(st store.StateStore, plantID string, patch models.PlanPatch) (models.Plan, error) {
	merged := GetPlan(st, plantID).Merge(patch)
	if err := st.SetPlan(plantID, merged); err != nil {
		return models.Plan{}, fmt.Errorf("save plan for %s: %w", plantID, err)
	}
	return merged, nil
}
