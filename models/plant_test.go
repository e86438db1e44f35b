package models

import (
	"testing"
	"time"
)

func TestClassifyTemplate(t *testing.T) {
	tests := []struct {
		tag  string
		want TemplateCategory
	}{
		{"seed_start_indoor", CategorySeedStart},
		{"indoor_start", CategorySeedStart},
		{"pot_up", CategoryPotUp},
		{"harden_off", CategoryHardenOff},
		{"Harden Off", CategoryHardenOff},
		{"transplant", CategoryTransplant},
		{"transplant_out", CategoryTransplant},
		{"direct_sow", CategoryDirectSow},
		{"bed_prep", CategoryBedPrep},
		{"soil_amendment", CategoryBedPrep},
		{"preplant_fertilizer", CategoryBedPrep}, // preplant wins over fert
		{"fertilize", CategoryFertilize},
		{"side_dress_fertilizer", CategoryFertilize},
		{"pest_scouting", CategoryPest},
		{"install_trellis", CategorySupport},
		{"stake_plants", CategorySupport},
		{"prune_suckers", CategoryPrune},
		{"harvest", CategoryHarvest},
		{"", CategoryOther},
		{"water_deeply", CategoryOther},
	}
	for _, tt := range tests {
		if got := ClassifyTemplate(tt.tag); got != tt.want {
			t.Errorf("ClassifyTemplate(%q) = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestSeedPhase(t *testing.T) {
	seedPhase := []TemplateCategory{CategorySeedStart, CategoryPotUp, CategoryHardenOff}
	for _, c := range seedPhase {
		if !c.SeedPhase() {
			t.Errorf("%s should be seed phase", c)
		}
	}
	bedPhase := []TemplateCategory{CategoryTransplant, CategoryDirectSow, CategoryBedPrep, CategoryFertilize, CategoryHarvest, CategoryOther}
	for _, c := range bedPhase {
		if c.SeedPhase() {
			t.Errorf("%s should not be seed phase", c)
		}
	}
}

func TestPlantKey(t *testing.T) {
	tests := []struct {
		name  string
		plant *Plant
		want  string
	}{
		{"catalog id wins", &Plant{CatalogID: "tomato_roma", Name: "Roma Tomato"}, "tomato_roma"},
		{"name fallback", &Plant{Name: "Roma Tomato"}, "Roma Tomato"},
		{"anonymous", &Plant{}, "plant"},
		{"nil receiver", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.plant.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateTag(t *testing.T) {
	if got := (&TaskTemplate{Template: "harvest", Type: "chore"}).Tag(); got != "harvest" {
		t.Errorf("template field should win, got %q", got)
	}
	if got := (&TaskTemplate{Type: "chore"}).Tag(); got != "chore" {
		t.Errorf("type fallback, got %q", got)
	}
	if got := (&TaskTemplate{}).Tag(); got != "task" {
		t.Errorf("empty template tag = %q, want task", got)
	}
}

func TestSeasonTag(t *testing.T) {
	tests := []struct {
		due  string
		want string
	}{
		{"2024-01-05", SeasonSpring},
		{"2024-06-30", SeasonSpring},
		{"2024-07-01", SeasonFall},
		{"2024-12-20", SeasonFall},
	}
	for _, tt := range tests {
		due, ok := ParseISODate(tt.due)
		if !ok {
			t.Fatalf("bad fixture date %q", tt.due)
		}
		inst := TaskInstance{Due: due}
		if got := inst.SeasonTag(); got != tt.want {
			t.Errorf("SeasonTag(%s) = %s, want %s", tt.due, got, tt.want)
		}
	}
}

func TestFertilizer(t *testing.T) {
	fert := TaskInstance{Category: CategoryFertilize}
	if !fert.Fertilizer() {
		t.Error("fertilize category should group")
	}
	productOnly := TaskInstance{
		Category: CategoryOther,
		Template: &TaskTemplate{Product: "bone meal"},
	}
	if !productOnly.Fertilizer() {
		t.Error("product-bearing template should group")
	}
	plain := TaskInstance{Category: CategoryHarvest, Template: &TaskTemplate{}}
	if plain.Fertilizer() {
		t.Error("plain harvest should not group as fertilizer")
	}
}

func TestTaskID_Deterministic(t *testing.T) {
	tpl := &TaskTemplate{Template: "fertilize"}
	a := TaskID("tomato", tpl, 2, "2024-06-01")
	b := TaskID("tomato", tpl, 2, "2024-06-01")
	if a != b {
		t.Errorf("ids differ: %q vs %q", a, b)
	}
	if a != "tomato::fertilize::2024-06-01::2" {
		t.Errorf("id layout = %q", a)
	}
	if TaskID("tomato", tpl, 3, "2024-06-01") == a {
		t.Error("index must disambiguate same-day duplicates")
	}
}

func TestNewTaskInstance(t *testing.T) {
	tpl := &TaskTemplate{
		Template: "harvest",
		EndDate:  "2024-08-15",
		Label:    "Harvest",
		Category: CategoryHarvest,
	}
	due := time.Date(2024, 7, 1, 14, 30, 0, 0, time.Local)
	inst := NewTaskInstance("tomato", "Tomato", "tomato", tpl, 0, due)

	if inst.Due.Hour() != 0 {
		t.Error("due date not midnight-normalized")
	}
	if FormatISODate(inst.End) != "2024-08-15" {
		t.Errorf("end = %s, want 2024-08-15", FormatISODate(inst.End))
	}
	if inst.Label != "Harvest" || inst.Category != CategoryHarvest {
		t.Errorf("resolved fields not carried: %+v", inst)
	}
	if inst.Template != tpl {
		t.Error("template must be referenced, not copied")
	}
}

func TestStateNormalize(t *testing.T) {
	var s State
	s.Normalize()
	if s.Version != StateVersion {
		t.Errorf("version = %d, want %d", s.Version, StateVersion)
	}
	if s.Plans == nil || s.Completions == nil || s.Notes == nil {
		t.Error("Normalize left a nil map")
	}
}
