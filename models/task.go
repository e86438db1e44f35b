package models

import (
	"fmt"
	"time"
)

// GlobalScope is the sentinel scope for tasks not owned by any plant.
const GlobalScope = "GLOBAL"

// TaskInstance is one concrete, dated occurrence derived from a
// template under a specific plan. Instances are ephemeral: the whole
// set is recomputed on every query, so the ID must be a pure function
// of the inputs for completion records and notes to survive.
type TaskInstance struct {
	ID        string
	Scope     string
	PlantName string
	CatalogID string

	Template *TaskTemplate
	Label    string
	Category TemplateCategory

	Due time.Time
	End time.Time // zero when the template has no end date

	IsGlobal    bool
	Generated   bool
	RollingFrom string
	Cycle       int
}

// TaskID builds the deterministic instance identifier:
// scope::template::due::index. idx disambiguates duplicate templates
// landing on the same date within one scope.
func TaskID(scope string, tpl *TaskTemplate, idx int, dueISO string) string {
	return fmt.Sprintf("%s::%s::%s::%d", scope, tpl.Tag(), dueISO, idx)
}

// NewTaskInstance builds an instance from a template and its resolved
// due date. The template payload is referenced, never copied or
// mutated; all per-instance state lives on the instance itself.
func NewTaskInstance(scope, plantName, catalogID string, tpl *TaskTemplate, idx int, due time.Time) TaskInstance {
	dueISO := FormatISODate(due)
	inst := TaskInstance{
		ID:        TaskID(scope, tpl, idx, dueISO),
		Scope:     scope,
		PlantName: plantName,
		CatalogID: catalogID,
		Template:  tpl,
		Label:     tpl.Label,
		Category:  tpl.Category,
		Due:       Midnight(due),
	}
	if end, ok := ParseISODate(tpl.EndDate); ok {
		inst.End = end
	}
	return inst
}

// SeasonTag classifies the instance by its resolved due date: January
// through June reads as spring, July onward as fall. This is
// independent of which catalog window produced the date.
func (t *TaskInstance) SeasonTag() string {
	if t.Due.Month() <= time.June {
		return SeasonSpring
	}
	return SeasonFall
}

// Fertilizer reports whether the instance participates in same-day
// fertilizer grouping: fertilize-category templates, or any template
// carrying a product.
func (t *TaskInstance) Fertilizer() bool {
	if t.Category == CategoryFertilize {
		return true
	}
	return t.Template != nil && t.Template.Product != ""
}

// CompletionRecord marks a task instance done. Date anchors the next
// occurrence of a recurring task.
type CompletionRecord struct {
	Done bool   `json:"done" yaml:"done" toml:"done"`
	Date string `json:"date,omitempty" yaml:"date,omitempty" toml:"date,omitempty"`
}

// GroupKind discriminates display rows.
type GroupKind string

const (
	GroupSingle GroupKind = "single"
	GroupFert   GroupKind = "fert_group"
	GroupBed    GroupKind = "bed_group"
)

// TaskGroup is a display-level merge of task instances sharing a date
// and a matching signature. A single row wraps exactly one instance.
type TaskGroup struct {
	Kind GroupKind
	ID   string
	Due  time.Time

	// PlantName is set for fert groups (same-plant grouping);
	// Signature for bed groups (cross-plant grouping).
	PlantName string
	Signature string

	Items []TaskInstance
}

// Task returns the sole instance of a single row.
func (g *TaskGroup) Task() *TaskInstance {
	if len(g.Items) == 0 {
		return nil
	}
	return &g.Items[0]
}

// State is the persisted user state: one versioned blob of three maps.
// Absent keys default (no plan = DefaultPlan, no completion = not
// done, no note = empty).
type State struct {
	Version     int                         `json:"version" yaml:"version" toml:"version"`
	InstallID   string                      `json:"install_id,omitempty" yaml:"install_id,omitempty" toml:"install_id,omitempty"`
	Plans       map[string]Plan             `json:"plans" yaml:"plans" toml:"plans"`
	Completions map[string]CompletionRecord `json:"completions" yaml:"completions" toml:"completions"`
	Notes       map[string]string           `json:"notes" yaml:"notes" toml:"notes"`
}

// StateVersion is the current blob schema version.
const StateVersion = 1

// NewState returns an empty state with all maps allocated.
func NewState() State {
	return State{
		Version:     StateVersion,
		Plans:       make(map[string]Plan),
		Completions: make(map[string]CompletionRecord),
		Notes:       make(map[string]string),
	}
}

// Normalize allocates any map a decoded blob left nil.
func (s *State) Normalize() {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	if s.Plans == nil {
		s.Plans = make(map[string]Plan)
	}
	if s.Completions == nil {
		s.Completions = make(map[string]CompletionRecord)
	}
	if s.Notes == nil {
		s.Notes = make(map[string]string)
	}
}
