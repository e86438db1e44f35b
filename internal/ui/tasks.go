// Package ui renders task rows, groups and calendars for the CLI.
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pcampbell/trellis/models"
)

// RowState carries the per-row user state the renderer displays but
// does not own.
type RowState struct {
	Completed bool
	Note      string
}

// Badge classifies a due date relative to today for display.
func Badge(today, due time.Time) string {
	delta := models.DaysBetween(models.Midnight(today), models.Midnight(due))
	switch {
	case delta < 0:
		return StyleBadgeOverdue.Render(fmt.Sprintf("%dd overdue", -delta))
	case delta == 0:
		return StyleBadgeDue.Render("due today")
	case delta <= 2:
		return StyleBadgeDue.Render(fmt.Sprintf("due in %dd", delta))
	default:
		return StyleBadgeLater.Render(fmt.Sprintf("in %dd", delta))
	}
}

// RenderGroups prints grouped task rows with date headers.
func RenderGroups(groups []models.TaskGroup, today time.Time, state func(id string) RowState, showPlant bool) string {
	if len(groups) == 0 {
		return StyleSubtle.Render("No tasks.") + "\n"
	}

	var b strings.Builder
	currentDay := ""
	for i := range groups {
		g := &groups[i]
		day := models.FormatISODate(g.Due)
		if day != currentDay {
			currentDay = day
			b.WriteString(StyleSectionTitle.Render(g.Due.Format("Mon Jan 2 2006")))
			b.WriteString("\n")
		}
		switch g.Kind {
		case models.GroupFert:
			renderFertGroup(&b, g, today, state, showPlant)
		case models.GroupBed:
			renderBedGroup(&b, g, today, state)
		default:
			renderSingle(&b, g.Task(), today, state, showPlant)
		}
	}
	return b.String()
}

func checkbox(done bool) string {
	if done {
		return StyleDone.Render("[x]")
	}
	return "[ ]"
}

func renderSingle(b *strings.Builder, t *models.TaskInstance, today time.Time, state func(string) RowState, showPlant bool) {
	if t == nil {
		return
	}
	st := state(t.ID)

	meta := []string{}
	if showPlant && t.PlantName != "" {
		meta = append(meta, t.PlantName)
	}
	if t.CatalogID != "" {
		meta = append(meta, "#"+t.CatalogID)
	}
	if t.IsGlobal {
		meta = append(meta, "global")
	}
	if t.Generated {
		meta = append(meta, "recurring")
	}
	if t.Cycle > 1 {
		meta = append(meta, fmt.Sprintf("cycle %d", t.Cycle))
	}

	fmt.Fprintf(b, "  %s %s %s", checkbox(st.Completed), StyleTitle.Render(prettyLabel(t.Label)), Badge(today, t.Due))
	if len(meta) > 0 {
		fmt.Fprintf(b, "  %s", StyleSubtle.Render(strings.Join(meta, " • ")))
	}
	b.WriteString("\n")

	if tpl := t.Template; tpl != nil {
		details := []string{}
		if tpl.Product != "" {
			details = append(details, "product: "+tpl.Product)
		}
		if tpl.Dose != "" {
			details = append(details, "dose: "+tpl.Dose)
		}
		if tpl.FrequencyDays > 0 {
			details = append(details, fmt.Sprintf("every %dd", tpl.FrequencyDays))
		}
		if tpl.Notes != "" {
			details = append(details, tpl.Notes)
		}
		if len(details) > 0 {
			fmt.Fprintf(b, "      %s\n", StyleSubtle.Render(strings.Join(details, " • ")))
		}
	}
	if st.Note != "" {
		fmt.Fprintf(b, "      %s\n", StyleAccent.Render("note: "+st.Note))
	}
	fmt.Fprintf(b, "      %s\n", StyleSubtle.Render("id: "+t.ID))
}

func renderFertGroup(b *strings.Builder, g *models.TaskGroup, today time.Time, state func(string) RowState, showPlant bool) {
	st := state(g.ID)
	allDone := true
	for _, t := range g.Items {
		if !state(t.ID).Completed {
			allDone = false
			break
		}
	}

	title := fmt.Sprintf("Fertilize (%d items)", len(g.Items))
	meta := ""
	if showPlant && g.PlantName != "" {
		meta = "  " + StyleSubtle.Render(g.PlantName)
	}
	fmt.Fprintf(b, "  %s %s %s%s\n", checkbox(allDone), StyleTitle.Render(title), Badge(today, g.Due), meta)
	for _, t := range g.Items {
		line := prettyLabel(t.Label)
		if t.Template != nil && t.Template.Product != "" {
			line += " — " + t.Template.Product
			if t.Template.Dose != "" {
				line += " (" + t.Template.Dose + ")"
			}
		}
		fmt.Fprintf(b, "      - %s\n", line)
	}
	if st.Note != "" {
		fmt.Fprintf(b, "      %s\n", StyleAccent.Render("note: "+st.Note))
	}
	fmt.Fprintf(b, "      %s\n", StyleSubtle.Render("id: "+g.ID))
}

func renderBedGroup(b *strings.Builder, g *models.TaskGroup, today time.Time, state func(string) RowState) {
	allDone := true
	for _, t := range g.Items {
		if !state(t.ID).Completed {
			allDone = false
			break
		}
	}

	plants := make([]string, 0, len(g.Items))
	seen := map[string]bool{}
	for _, t := range g.Items {
		if t.PlantName != "" && !seen[t.PlantName] {
			seen[t.PlantName] = true
			plants = append(plants, t.PlantName)
		}
	}

	fmt.Fprintf(b, "  %s %s %s  %s\n",
		checkbox(allDone),
		StyleTitle.Render("Bed / soil prep (combined)"),
		Badge(today, g.Due),
		StyleSubtle.Render(strings.Join(plants, ", ")))
	fmt.Fprintf(b, "      %s\n", StyleSubtle.Render("Same amendments on the same date; completing marks all included items."))
	if note := state(g.ID).Note; note != "" {
		fmt.Fprintf(b, "      %s\n", StyleAccent.Render("note: "+note))
	}
	fmt.Fprintf(b, "      %s\n", StyleSubtle.Render("id: "+g.ID))
}

// prettyLabel turns a raw template tag into a display title.
func prettyLabel(label string) string {
	pretty := strings.ReplaceAll(label, "_", " ")
	known := map[string]string{
		"direct sow":         "Direct sow outdoors",
		"seed start":         "Start seeds indoors",
		"seed start indoors": "Start seeds indoors",
		"harden off":         "Harden off seedlings",
		"transplant":         "Transplant outdoors",
		"bed prep":           "Prepare bed / soil",
		"soil prep":          "Prepare bed / soil",
		"pest scout":         "Scout for pests & disease",
		"harvest":            "Harvest",
	}
	if v, ok := known[strings.ToLower(pretty)]; ok {
		return v
	}
	words := strings.Fields(pretty)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RenderPlantList prints a compact plant table with plan badges.
func RenderPlantList(plants []models.Plant, plan func(key string) models.Plan) string {
	var b strings.Builder
	for i := range plants {
		p := &plants[i]
		pl := plan(p.Key())
		fmt.Fprintf(&b, "  %s %s  %s\n",
			StyleTitle.Render(p.Name),
			StyleSubtle.Render(p.Species),
			StyleSubtle.Render(fmt.Sprintf("[%s • %s • %d cycle(s)]", pl.Method, pl.Season, pl.Cycles)))
	}
	if len(plants) == 0 {
		b.WriteString(StyleSubtle.Render("No plants match.") + "\n")
	}
	return b.String()
}

// RenderCalendar prints a plant-by-month matrix: one mark per month a
// plant has at least one task in.
func RenderCalendar(tasks []models.TaskInstance, year int) string {
	type key struct {
		plant string
		month time.Month
	}
	counts := map[key]int{}
	plantSet := map[string]bool{}
	var plants []string
	for _, t := range tasks {
		if t.Due.Year() != year {
			continue
		}
		name := t.PlantName
		if name == "" {
			name = "Global"
		}
		if !plantSet[name] {
			plantSet[name] = true
			plants = append(plants, name)
		}
		counts[key{name, t.Due.Month()}]++
	}
	sort.Strings(plants)

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s", "")
	for m := time.January; m <= time.December; m++ {
		fmt.Fprintf(&b, "%4s", m.String()[:3])
	}
	b.WriteString("\n")
	for _, name := range plants {
		fmt.Fprintf(&b, "%-20s", truncate(name, 19))
		for m := time.January; m <= time.December; m++ {
			if n := counts[key{name, m}]; n > 0 {
				fmt.Fprintf(&b, "%4d", n)
			} else {
				fmt.Fprintf(&b, "%4s", "·")
			}
		}
		b.WriteString("\n")
	}
	if len(plants) == 0 {
		b.WriteString(StyleSubtle.Render(fmt.Sprintf("No tasks in %d.", year)) + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
