package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/store"
)

// GroupPrefix marks synthetic group identifiers so mutation entry
// points can tell them apart from task instance ids.
const GroupPrefix = "group::"

// GroupTasks merges a display-windowed task list into rows:
// same-day same-plant fertilizer tasks collapse into one fert_group,
// same-day same-signature soil-prep tasks collapse into one bed_group
// across plants, everything else passes through as single rows. The
// result is sorted ascending by effective date.
func GroupTasks(tasks []models.TaskInstance) []models.TaskGroup {
	var out []models.TaskGroup

	// Fertilizer rows bucket by (date, scope): grouping is same-plant
	// same-day, never cross-plant.
	remaining := make([]models.TaskInstance, 0, len(tasks))
	fert := newBuckets()
	for _, t := range tasks {
		if t.Fertilizer() {
			fert.add(fertKey(&t), t)
		} else {
			remaining = append(remaining, t)
		}
	}
	for _, b := range fert.ordered {
		items := fert.byKey[b]
		if len(items) == 1 {
			out = append(out, singleRow(items[0]))
			continue
		}
		out = append(out, models.TaskGroup{
			Kind:      models.GroupFert,
			ID:        GroupPrefix + "fert::" + b,
			Due:       items[0].Due,
			PlantName: items[0].PlantName,
			Items:     items,
		})
	}

	// Bed-prep rows bucket by (date, signature) and may span plants.
	rest := make([]models.TaskInstance, 0, len(remaining))
	bed := newBuckets()
	for _, t := range remaining {
		if t.Category == models.CategoryBedPrep {
			bed.add(bedKey(&t), t)
		} else {
			rest = append(rest, t)
		}
	}
	for _, b := range bed.ordered {
		items := bed.byKey[b]
		if len(items) == 1 {
			out = append(out, singleRow(items[0]))
			continue
		}
		_, sig, _ := strings.Cut(b, "||")
		out = append(out, models.TaskGroup{
			Kind:      models.GroupBed,
			ID:        GroupPrefix + "bed::" + b,
			Due:       items[0].Due,
			Signature: sig,
			Items:     items,
		})
	}

	for _, t := range rest {
		out = append(out, singleRow(t))
	}

	slices.SortStableFunc(out, func(a, b models.TaskGroup) int {
		return a.Due.Compare(b.Due)
	})
	return out
}

func singleRow(t models.TaskInstance) models.TaskGroup {
	return models.TaskGroup{
		Kind:      models.GroupSingle,
		ID:        t.ID,
		Due:       t.Due,
		PlantName: t.PlantName,
		Items:     []models.TaskInstance{t},
	}
}

func fertKey(t *models.TaskInstance) string {
	return fmt.Sprintf("%s::%s", t.Scope, models.FormatISODate(t.Due))
}

// bedKey combines the date with the amendment signature: template tag,
// product, dose and notes, best-effort on missing fields.
func bedKey(t *models.TaskInstance) string {
	var tag, product, dose, notes string
	if t.Template != nil {
		tag = strings.ToLower(t.Template.Tag())
		product = t.Template.Product
		dose = t.Template.Dose
		notes = t.Template.Notes
	}
	sig := fmt.Sprintf("%s|%s|%s|%s", tag, product, dose, notes)
	return fmt.Sprintf("%s||%s", models.FormatISODate(t.Due), sig)
}

// buckets preserves first-seen key order so grouped output stays
// deterministic across recomputation.
type buckets struct {
	ordered []string
	byKey   map[string][]models.TaskInstance
}

func newBuckets() *buckets {
	return &buckets{byKey: make(map[string][]models.TaskInstance)}
}

func (b *buckets) add(key string, t models.TaskInstance) {
	if _, ok := b.byKey[key]; !ok {
		b.ordered = append(b.ordered, key)
	}
	b.byKey[key] = append(b.byKey[key], t)
}

// GroupCompleted reports group-level completion: the logical AND over
// member completions.
func GroupCompleted(st store.StateStore, g *models.TaskGroup) bool {
	if len(g.Items) == 0 {
		return false
	}
	for _, t := range g.Items {
		if !IsCompleted(st, t.ID) {
			return false
		}
	}
	return true
}

// SetGroupCompletion fans a group-level toggle out to every member:
// marking done stamps each member with the given date, unmarking
// removes each member's record.
func SetGroupCompletion(st store.StateStore, g *models.TaskGroup, done bool, today time.Time) error {
	for _, t := range g.Items {
		var err error
		if done {
			err = st.SetCompletion(t.ID, models.CompletionRecord{Done: true, Date: models.FormatISODate(today)})
		} else {
			err = st.ClearCompletion(t.ID)
		}
		if err != nil {
			return fmt.Errorf("toggle completion for %s: %w", t.ID, err)
		}
	}
	return nil
}
