package schedule

import (
	"testing"

	"github.com/pcampbell/trellis/models"
)

func carrotCatalog() *models.Catalog {
	return &models.Catalog{
		Plants: []models.Plant{*carrotPlant()},
		GlobalTasks: []models.TaskTemplate{
			tpl("bed_prep", "2024-03-01"),
		},
	}
}

func TestBuildAllTasks_NilCatalog(t *testing.T) {
	if got := BuildAllTasks(nil, newMemStore(), date(t, "2024-05-01")); got != nil {
		t.Errorf("nil catalog should yield no tasks, got %d", len(got))
	}
}

func TestBuildAllTasks_GlobalsPassUnconditionally(t *testing.T) {
	st := newMemStore()
	// A fall-only plan filters the carrot's spring tasks but must never
	// touch globals.
	if err := st.SetPlan("carrot", models.Plan{Method: models.MethodEither, Season: models.SeasonFall, Cycles: 1}); err != nil {
		t.Fatal(err)
	}

	tasks := BuildAllTasks(carrotCatalog(), st, date(t, "2024-03-01"))

	var globals, plantTasks int
	for _, task := range tasks {
		if task.IsGlobal {
			globals++
		} else {
			plantTasks++
		}
	}
	if globals != 1 {
		t.Errorf("expected 1 global task, got %d", globals)
	}
	if plantTasks != 0 {
		t.Errorf("fall-only plan should filter all spring carrot tasks, got %d", plantTasks)
	}
}

func TestBuildAllTasks_SeasonFilterKeepsMatching(t *testing.T) {
	st := newMemStore()
	if err := st.SetPlan("carrot", models.Plan{Method: models.MethodEither, Season: models.SeasonSpring, Cycles: 1}); err != nil {
		t.Fatal(err)
	}

	tasks := BuildAllTasks(carrotCatalog(), st, date(t, "2024-03-01"))
	for _, task := range tasks {
		if task.IsGlobal {
			continue
		}
		if task.SeasonTag() != models.SeasonSpring {
			t.Errorf("task %s tagged %s leaked through spring-only plan", task.ID, task.SeasonTag())
		}
	}
}

func TestBuildAllTasks_NoDuplicateIDs(t *testing.T) {
	st := newMemStore()
	if err := st.SetPlan("carrot", models.Plan{Method: models.MethodEither, Season: models.SeasonBoth, Cycles: 3}); err != nil {
		t.Fatal(err)
	}

	tasks := BuildAllTasks(carrotCatalog(), st, date(t, "2024-03-01"))
	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			t.Errorf("duplicate task id %q", task.ID)
		}
		seen[task.ID] = struct{}{}
		if task.Due.IsZero() {
			t.Errorf("task %q has no due date", task.ID)
		}
	}
}

func TestDedupe_FirstWins(t *testing.T) {
	template := tpl("fertilize", "2024-04-05")
	first := models.NewTaskInstance("carrot", "Carrot", "carrot", &template, 0, date(t, "2024-04-05"))
	second := first
	second.Label = "duplicate"

	out := dedupe([]models.TaskInstance{first, second})
	if len(out) != 1 {
		t.Fatalf("expected 1 after dedupe, got %d", len(out))
	}
	if out[0].Label == "duplicate" {
		t.Error("dedupe kept the later instance; first occurrence must win")
	}
}

func TestDedupe_DropsZeroDue(t *testing.T) {
	template := tpl("fertilize", "")
	inst := models.TaskInstance{ID: "carrot::fertilize::::0", Template: &template}

	if out := dedupe([]models.TaskInstance{inst}); len(out) != 0 {
		t.Errorf("instance without a due date must be dropped, got %d", len(out))
	}
}

func TestDueSoon_WindowBoundary(t *testing.T) {
	st := newMemStore()
	today := date(t, "2024-05-01")
	mk := func(due string, idx int) models.TaskInstance {
		template := tpl("fertilize", due)
		return models.NewTaskInstance("carrot", "Carrot", "carrot", &template, idx, date(t, due))
	}
	overdue := mk("2024-04-20", 0)
	inside := mk("2024-05-08", 1)  // today + 7, inclusive
	outside := mk("2024-05-09", 2) // today + 8

	got := DueSoon([]models.TaskInstance{outside, inside, overdue}, st, today, false)
	if len(got) != 2 {
		t.Fatalf("expected overdue + boundary task, got %d", len(got))
	}
	if got[0].ID != overdue.ID {
		t.Errorf("results not sorted by due date; first = %s", got[0].ID)
	}
	if got[1].ID != inside.ID {
		t.Errorf("today+7 task missing from window; second = %s", got[1].ID)
	}
}

func TestDueSoon_HideCompleted(t *testing.T) {
	st := newMemStore()
	today := date(t, "2024-05-01")
	template := tpl("fertilize", "2024-05-02")
	inst := models.NewTaskInstance("carrot", "Carrot", "carrot", &template, 0, date(t, "2024-05-02"))
	if err := st.SetCompletion(inst.ID, models.CompletionRecord{Done: true, Date: "2024-05-01"}); err != nil {
		t.Fatal(err)
	}

	if got := DueSoon([]models.TaskInstance{inst}, st, today, true); len(got) != 0 {
		t.Errorf("completed task should be hidden, got %d", len(got))
	}
	if got := DueSoon([]models.TaskInstance{inst}, st, today, false); len(got) != 1 {
		t.Errorf("completed task should show when not hiding, got %d", len(got))
	}
}

func TestUpcoming_ExcludesOverdue(t *testing.T) {
	st := newMemStore()
	today := date(t, "2024-05-01")
	mk := func(due string, idx int) models.TaskInstance {
		template := tpl("prune", due)
		return models.NewTaskInstance("carrot", "Carrot", "carrot", &template, idx, date(t, due))
	}
	past := mk("2024-04-30", 0)
	todayTask := mk("2024-05-01", 1)
	edge := mk("2024-05-15", 2)
	beyond := mk("2024-05-16", 3)

	got := Upcoming([]models.TaskInstance{beyond, edge, past, todayTask}, st, today, 14, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks in [today, today+14], got %d", len(got))
	}
	if got[0].ID != todayTask.ID || got[1].ID != edge.ID {
		t.Errorf("unexpected window contents: %s, %s", got[0].ID, got[1].ID)
	}
}
