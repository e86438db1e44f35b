package schedule

import (
	"testing"

	"github.com/pcampbell/trellis/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestGetPlan_DefaultsWhenUnset(t *testing.T) {
	st := newMemStore()
	got := GetPlan(st, "carrot")
	want := models.DefaultPlan()
	if got != want {
		t.Errorf("GetPlan = %+v, want defaults %+v", got, want)
	}
	// Reading defaults must not persist anything.
	if _, ok := st.Plan("carrot"); ok {
		t.Error("default read should not write a plan record")
	}
}

func TestSetPlan_PartialPatch(t *testing.T) {
	st := newMemStore()

	got, err := SetPlan(st, "carrot", models.PlanPatch{Method: strPtr(models.MethodDirectSow)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Method != models.MethodDirectSow {
		t.Errorf("method = %s, want %s", got.Method, models.MethodDirectSow)
	}
	if got.Season != models.SeasonBoth || got.Cycles != 1 {
		t.Errorf("untouched fields drifted from defaults: %+v", got)
	}

	// A second patch layers over the saved plan, not the defaults.
	got, err = SetPlan(st, "carrot", models.PlanPatch{Cycles: intPtr(3)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Method != models.MethodDirectSow {
		t.Errorf("earlier method choice lost: %+v", got)
	}
	if got.Cycles != 3 {
		t.Errorf("cycles = %d, want 3", got.Cycles)
	}
}

func TestSetPlan_CoercesCycles(t *testing.T) {
	st := newMemStore()
	got, err := SetPlan(st, "carrot", models.PlanPatch{Cycles: intPtr(0)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Cycles != 1 {
		t.Errorf("cycles = %d, want coercion to 1", got.Cycles)
	}
}

func TestPlanMerge_NilFieldsUnchanged(t *testing.T) {
	base := models.Plan{Method: models.MethodTransplant, Season: models.SeasonFall, Cycles: 2}
	got := base.Merge(models.PlanPatch{})
	if got != base {
		t.Errorf("empty patch changed plan: %+v", got)
	}
}
