// Package catalog loads and normalizes the plant catalog document.
// The catalog is read once at startup and treated as immutable; every
// tolerated field alias and every template classification is resolved
// here so the scheduling engine only ever sees canonical fields.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/pcampbell/trellis/models"
)

// Load reads a catalog file (JSON or YAML by extension, JSON when the
// extension is unknown) and normalizes it. The returned catalog is
// ready for the schedule engine.
func Load(fs afero.Fs, path string) (*models.Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var cat models.Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	}

	Normalize(&cat)
	return &cat, nil
}

// Normalize resolves field aliases and classifies every template in
// place. Safe to call more than once.
func Normalize(cat *models.Catalog) {
	if cat == nil {
		return
	}
	for i := range cat.GlobalTasks {
		normalizeTemplate(&cat.GlobalTasks[i])
	}
	for i := range cat.Plants {
		p := &cat.Plants[i]
		if p.Name == "" && p.CatalogID == "" {
			slog.Warn("catalog plant has no identifier", "index", i)
		}
		for j := range p.TaskPlan {
			normalizeTemplate(&p.TaskPlan[j])
		}
	}
}

// normalizeTemplate fills the resolved Label, Due and Category fields.
// Field priority is fixed and documented here once: the due date comes
// from date_target, then start_date, then date, then when; the label
// from title, then task, then template, then type.
func normalizeTemplate(t *models.TaskTemplate) {
	t.Due = firstNonEmpty(t.DateTarget, t.StartDate, t.Date, t.When)
	t.Label = firstNonEmpty(t.Title, t.Task, t.Template, t.Type)
	if t.Label == "" {
		t.Label = "Task"
	}
	t.Category = models.ClassifyTemplate(t.Tag())
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
