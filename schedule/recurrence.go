package schedule

import (
	"time"

	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/store"
)

// recurrenceHorizonDays bounds how far ahead rolling tasks are
// expanded, so an uncompleted weekly task keeps surfacing without the
// list growing without limit.
const recurrenceHorizonDays = 180

// generatedIndexBase offsets the disambiguating index of generated
// occurrences so they can never collide with plan-derived instances of
// the same template and date.
const generatedIndexBase = 10000

// ExpandRolling unions generated future occurrences into the task
// list. For each instance with a repeat interval, occurrences are
// spaced from the anchor date: the instance's recorded completion date
// when one exists, otherwise its own due date. The base instance is
// always retained alongside its descendants.
func ExpandRolling(tasks []models.TaskInstance, st store.StateStore, today time.Time) []models.TaskInstance {
	horizon := models.AddDays(models.Midnight(today), recurrenceHorizonDays)

	out := make([]models.TaskInstance, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t)

		if t.Template == nil || !t.Template.Recurring() || t.Generated {
			continue
		}
		freq := t.Template.FrequencyDays

		anchor := t.Due
		if rec, ok := st.Completion(t.ID); ok && rec.Done {
			if d, ok := models.ParseISODate(rec.Date); ok {
				anchor = d
			}
		}
		if anchor.IsZero() {
			continue
		}

		next := models.AddDays(anchor, freq)
		for genIdx := 0; !next.After(horizon); genIdx++ {
			gen := models.NewTaskInstance(t.Scope, t.PlantName, t.CatalogID, t.Template, generatedIndexBase+genIdx, next)
			gen.IsGlobal = t.IsGlobal
			gen.Generated = true
			gen.RollingFrom = t.ID
			gen.Cycle = t.Cycle
			out = append(out, gen)
			next = models.AddDays(next, freq)
		}
	}
	return out
}
