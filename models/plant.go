package models

import "strings"

// TemplateCategory is the normalized classification of a task
// template. It is computed once when the catalog is loaded, so the
// scheduling engine never re-derives it by pattern matching.
type TemplateCategory string

const (
	CategorySeedStart  TemplateCategory = "seed_start"
	CategoryPotUp      TemplateCategory = "pot_up"
	CategoryHardenOff  TemplateCategory = "harden_off"
	CategoryTransplant TemplateCategory = "transplant"
	CategoryDirectSow  TemplateCategory = "direct_sow"
	CategoryBedPrep    TemplateCategory = "bed_prep"
	CategoryFertilize  TemplateCategory = "fertilize"
	CategoryPest       TemplateCategory = "pest"
	CategorySupport    TemplateCategory = "support"
	CategoryPrune      TemplateCategory = "prune"
	CategoryHarvest    TemplateCategory = "harvest"
	CategoryOther      TemplateCategory = "other"
)

// ClassifyTemplate maps a raw template tag to its category. Order
// matters: the more specific workflow steps are checked before the
// broad in-bed families.
func ClassifyTemplate(tag string) TemplateCategory {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = strings.ReplaceAll(t, " ", "_")
	switch {
	case strings.Contains(t, "seed_start") || strings.Contains(t, "indoor_start"):
		return CategorySeedStart
	case strings.Contains(t, "pot_up") || strings.Contains(t, "prick_out"):
		return CategoryPotUp
	case strings.Contains(t, "harden"):
		return CategoryHardenOff
	case strings.Contains(t, "transplant"):
		return CategoryTransplant
	case strings.Contains(t, "direct_sow"):
		return CategoryDirectSow
	case strings.Contains(t, "bed_prep") || strings.Contains(t, "soil_prep") ||
		strings.Contains(t, "soil_amend") || strings.Contains(t, "preplant"):
		return CategoryBedPrep
	case strings.Contains(t, "fert"):
		return CategoryFertilize
	case strings.Contains(t, "pest") || strings.Contains(t, "scout"):
		return CategoryPest
	case strings.Contains(t, "support") || strings.Contains(t, "trellis") ||
		strings.Contains(t, "stake") || strings.Contains(t, "cage"):
		return CategorySupport
	case strings.Contains(t, "prune"):
		return CategoryPrune
	case strings.Contains(t, "harvest"):
		return CategoryHarvest
	default:
		return CategoryOther
	}
}

// SeedPhase reports whether the category belongs to the indoor
// seed-raising phase of a crop. Everything else shifts with the in-bed
// anchor.
func (c TemplateCategory) SeedPhase() bool {
	switch c {
	case CategorySeedStart, CategoryPotUp, CategoryHardenOff:
		return true
	}
	return false
}

// DateWindow is a start/end pair of ISO dates, optionally annotated.
type DateWindow struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// SeasonWindows holds the three planting windows a catalog season may
// define. Any of them may be absent.
type SeasonWindows struct {
	IndoorStart *DateWindow `json:"indoor_start_window,omitempty" yaml:"indoor_start_window,omitempty"`
	Transplant  *DateWindow `json:"transplant_window,omitempty" yaml:"transplant_window,omitempty"`
	DirectSow   *DateWindow `json:"direct_sow_window,omitempty" yaml:"direct_sow_window,omitempty"`
}

// Planting groups the per-season window sets of a plant.
type Planting struct {
	Spring *SeasonWindows `json:"spring,omitempty" yaml:"spring,omitempty"`
	Fall   *SeasonWindows `json:"fall,omitempty" yaml:"fall,omitempty"`
}

// Season returns the window set for a named season, nil if undefined.
func (p *Planting) Season(name string) *SeasonWindows {
	if p == nil {
		return nil
	}
	switch name {
	case SeasonSpring:
		return p.Spring
	case SeasonFall:
		return p.Fall
	}
	return nil
}

// TaskTemplate is a static, catalog-defined task description. The raw
// wire fields tolerate the several aliases historical catalog files
// use for the due date and the display label; the loader resolves them
// once into Due, Label and Category, which is all the engine reads.
type TaskTemplate struct {
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Task     string `json:"task,omitempty" yaml:"task,omitempty"`

	DateTarget string `json:"date_target,omitempty" yaml:"date_target,omitempty"`
	StartDate  string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	When       string `json:"when,omitempty" yaml:"when,omitempty"`
	EndDate    string `json:"end_date,omitempty" yaml:"end_date,omitempty"`

	FrequencyDays          int `json:"frequency_days,omitempty" yaml:"frequency_days,omitempty"`
	SuccessionIntervalDays int `json:"succession_interval_days,omitempty" yaml:"succession_interval_days,omitempty"`

	Product        string  `json:"product,omitempty" yaml:"product,omitempty"`
	Dose           string  `json:"dose,omitempty" yaml:"dose,omitempty"`
	Method         string  `json:"method,omitempty" yaml:"method,omitempty"`
	DepthIn        float64 `json:"depth_in,omitempty" yaml:"depth_in,omitempty"`
	SpacingIn      float64 `json:"spacing_in,omitempty" yaml:"spacing_in,omitempty"`
	RowSpacingIn   float64 `json:"row_spacing_in,omitempty" yaml:"row_spacing_in,omitempty"`
	Notes          string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	MaturitySigns  string  `json:"maturity_signs,omitempty" yaml:"maturity_signs,omitempty"`
	StorageNotes   string  `json:"storage_notes,omitempty" yaml:"storage_notes,omitempty"`
	StopConditions string  `json:"stop_conditions,omitempty" yaml:"stop_conditions,omitempty"`

	// Resolved at catalog load; see catalog.Normalize.
	Label    string           `json:"-" yaml:"-"`
	Due      string           `json:"-" yaml:"-"`
	Category TemplateCategory `json:"-" yaml:"-"`
}

// Tag returns the raw template tag used for identity and display
// fallback.
func (t *TaskTemplate) Tag() string {
	if t.Template != "" {
		return t.Template
	}
	if t.Type != "" {
		return t.Type
	}
	return "task"
}

// Recurring reports whether the template carries a positive repeat
// interval.
func (t *TaskTemplate) Recurring() bool {
	return t.FrequencyDays > 0
}

// Plant is one catalog entry. Immutable at runtime.
type Plant struct {
	CatalogID string    `json:"catalog_id,omitempty" yaml:"catalog_id,omitempty"`
	Name      string    `json:"name" yaml:"name" validate:"required"`
	Species   string    `json:"species,omitempty" yaml:"species,omitempty"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	Planting  *Planting `json:"planting,omitempty" yaml:"planting,omitempty"`

	TaskPlan []TaskTemplate `json:"task_plan,omitempty" yaml:"task_plan,omitempty"`
}

// Key returns the stable identifier tasks and plans are scoped by.
func (p *Plant) Key() string {
	if p == nil {
		return ""
	}
	if p.CatalogID != "" {
		return p.CatalogID
	}
	if p.Name != "" {
		return p.Name
	}
	return "plant"
}

// CatalogMeta carries regional metadata the engine ignores.
type CatalogMeta struct {
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
	Zone   string `json:"zone,omitempty" yaml:"zone,omitempty"`
}

// Catalog is the parsed, normalized plant catalog.
type Catalog struct {
	Meta        CatalogMeta    `json:"meta,omitempty" yaml:"meta,omitempty"`
	Plants      []Plant        `json:"plants" yaml:"plants"`
	GlobalTasks []TaskTemplate `json:"global_tasks,omitempty" yaml:"global_tasks,omitempty"`
}

// Plant looks a plant up by its scope key.
func (c *Catalog) Plant(key string) *Plant {
	if c == nil {
		return nil
	}
	for i := range c.Plants {
		if c.Plants[i].Key() == key {
			return &c.Plants[i]
		}
	}
	return nil
}
