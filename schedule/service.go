package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pcampbell/trellis/models"
	"github.com/pcampbell/trellis/store"
)

var (
	// ErrNoCatalog is returned by lookups that need a specific plant
	// when no catalog is loaded. Bulk queries degrade to empty
	// results instead.
	ErrNoCatalog = errors.New("no catalog loaded")
	// ErrPlantNotFound is returned when a plant id matches nothing in
	// the catalog.
	ErrPlantNotFound = errors.New("plant not found")
)

// Service is the single entry surface over the schedule engine: it
// owns the catalog reference and the state store and exposes the
// query and mutation operations the CLI calls. Every query recomputes
// the derived task set in full, so mutations are always visible to
// the next read.
type Service struct {
	catalog *models.Catalog
	store   store.StateStore
	now     func() time.Time
}

// NewService builds a service. catalog may be nil (load failure);
// queries then return empty results rather than erroring.
func NewService(catalog *models.Catalog, st store.StateStore) *Service {
	return &Service{catalog: catalog, store: st, now: time.Now}
}

// WithClock overrides the service's notion of "today". Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Catalog exposes the loaded catalog (may be nil).
func (s *Service) Catalog() *models.Catalog { return s.catalog }

// Today returns the midnight-normalized current date.
func (s *Service) Today() time.Time { return models.Midnight(s.now()) }

// Plan returns the resolved plan for a plant.
func (s *Service) Plan(plantID string) models.Plan {
	return GetPlan(s.store, plantID)
}

// SetPlan applies a partial plan patch and returns the merged plan.
func (s *Service) SetPlan(plantID string, patch models.PlanPatch) (models.Plan, error) {
	if s.catalog.Plant(plantID) == nil {
		return models.Plan{}, fmt.Errorf("%w: %s", ErrPlantNotFound, plantID)
	}
	return SetPlan(s.store, plantID, patch)
}

// SetCompletion toggles completion for a task instance id or a group
// id. Group ids fan out to every member of the group as currently
// derived. Marking done records today's date; unmarking clears the
// record.
func (s *Service) SetCompletion(id string, done bool) error {
	if strings.HasPrefix(id, GroupPrefix) {
		g, err := s.findGroup(id)
		if err != nil {
			return err
		}
		return SetGroupCompletion(s.store, g, done, s.Today())
	}
	if done {
		return s.store.SetCompletion(id, models.CompletionRecord{Done: true, Date: models.FormatISODate(s.Today())})
	}
	return s.store.ClearCompletion(id)
}

// SetNote stores free text against a task instance id or a group id.
// Group notes live under the group's own synthetic id, independent of
// member notes.
func (s *Service) SetNote(id, text string) error {
	return s.store.SetNote(id, text)
}

// Note returns the note for an id, empty when unset.
func (s *Service) Note(id string) string {
	return s.store.Note(id)
}

// Completed reports completion for a task instance or group id.
func (s *Service) Completed(id string) bool {
	if strings.HasPrefix(id, GroupPrefix) {
		g, err := s.findGroup(id)
		if err != nil {
			return false
		}
		return GroupCompleted(s.store, g)
	}
	return IsCompleted(s.store, id)
}

// AllTasks derives the full deduplicated task universe.
func (s *Service) AllTasks() []models.TaskInstance {
	return BuildAllTasks(s.catalog, s.store, s.Today())
}

// DueSoonTasks returns grouped rows for everything overdue or due
// within the next seven days.
func (s *Service) DueSoonTasks(hideCompleted bool) []models.TaskGroup {
	tasks := DueSoon(s.AllTasks(), s.store, s.Today(), hideCompleted)
	return GroupTasks(tasks)
}

// UpcomingTasks returns grouped rows due within the next windowDays.
func (s *Service) UpcomingTasks(windowDays int, hideCompleted bool) []models.TaskGroup {
	tasks := Upcoming(s.AllTasks(), s.store, s.Today(), windowDays, hideCompleted)
	return GroupTasks(tasks)
}

// PlantTasks returns grouped rows for one plant under its current
// plan, rolling expansion included.
func (s *Service) PlantTasks(plantID string, hideCompleted bool) ([]models.TaskGroup, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	plant := s.catalog.Plant(plantID)
	if plant == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlantNotFound, plantID)
	}

	plan := s.Plan(plantID)
	tasks := BuildPlantSchedule(plant, plan)
	tasks = filterByPlan(tasks, s.store)
	tasks = ExpandRolling(tasks, s.store, s.Today())
	tasks = dedupe(tasks)

	if hideCompleted {
		kept := tasks[:0]
		for _, t := range tasks {
			if !IsCompleted(s.store, t.ID) {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}
	return GroupTasks(tasks), nil
}

// findGroup resolves a synthetic group id against the currently
// derived universe.
func (s *Service) findGroup(id string) (*models.TaskGroup, error) {
	groups := GroupTasks(s.AllTasks())
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], nil
		}
	}
	slog.Debug("group id not found in derived task set", "id", id)
	return nil, fmt.Errorf("group %s not found in current schedule", id)
}
