package schedule

import (
	"testing"
	"time"

	"github.com/pcampbell/trellis/models"
)

// memStore is an in-memory StateStore for engine tests.
type memStore struct {
	state models.State
}

func newMemStore() *memStore {
	return &memStore{state: models.NewState()}
}

func (m *memStore) Initialize(config map[string]string) error { return nil }

func (m *memStore) State() models.State { return m.state }

func (m *memStore) Plan(plantID string) (models.Plan, bool) {
	p, ok := m.state.Plans[plantID]
	return p, ok
}

func (m *memStore) SetPlan(plantID string, plan models.Plan) error {
	if err := models.ValidateStruct(plan); err != nil {
		return err
	}
	m.state.Plans[plantID] = plan
	return nil
}

func (m *memStore) ResetPlan(plantID string) error {
	delete(m.state.Plans, plantID)
	return nil
}

func (m *memStore) Completion(taskID string) (models.CompletionRecord, bool) {
	rec, ok := m.state.Completions[taskID]
	return rec, ok
}

func (m *memStore) SetCompletion(taskID string, rec models.CompletionRecord) error {
	m.state.Completions[taskID] = rec
	return nil
}

func (m *memStore) ClearCompletion(taskID string) error {
	delete(m.state.Completions, taskID)
	return nil
}

func (m *memStore) Note(id string) string { return m.state.Notes[id] }

func (m *memStore) SetNote(id, text string) error {
	if text == "" {
		delete(m.state.Notes, id)
		return nil
	}
	m.state.Notes[id] = text
	return nil
}

func (m *memStore) Backup(destinationPath string) error { return nil }
func (m *memStore) Restore(sourcePath string) error     { return nil }
func (m *memStore) Close() error                        { return nil }

// date parses an ISO day or fails the test.
func date(t *testing.T, iso string) time.Time {
	t.Helper()
	d, ok := models.ParseISODate(iso)
	if !ok {
		t.Fatalf("bad test date %q", iso)
	}
	return d
}

// tpl builds a normalized task template the way the catalog loader
// would emit it.
func tpl(tag, due string) models.TaskTemplate {
	return models.TaskTemplate{
		Template:   tag,
		DateTarget: due,
		Label:      tag,
		Due:        due,
		Category:   models.ClassifyTemplate(tag),
	}
}

// carrotPlant is the planting-window fixture used across builder and
// aggregator tests: a spring direct-sow window 2024-03-15..2024-04-01
// whose midpoint is 2024-03-23.
func carrotPlant() *models.Plant {
	return &models.Plant{
		CatalogID: "carrot",
		Name:      "Carrot",
		Planting: &models.Planting{
			Spring: &models.SeasonWindows{
				DirectSow: &models.DateWindow{Start: "2024-03-15", End: "2024-04-01"},
			},
		},
		TaskPlan: []models.TaskTemplate{
			tpl("seed_start_indoor", "2024-02-01"),
			tpl("harden_off", "2024-03-12"),
			tpl("transplant", "2024-03-22"),
			tpl("direct_sow", "2024-03-20"),
			tpl("bed_prep", "2024-03-10"),
			tpl("fertilize", "2024-04-05"),
		},
	}
}

func findByCategory(tasks []models.TaskInstance, cat models.TemplateCategory) []models.TaskInstance {
	var out []models.TaskInstance
	for _, t := range tasks {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}
