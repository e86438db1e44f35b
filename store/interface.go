package store

import "github.com/pcampbell/trellis/models"

// StateStore defines the persistence contract for user state: plan
// selections, completion records and notes, keyed by the identifiers
// the schedule engine derives. Task instances themselves are never
// persisted; they are recomputed on every query.
type StateStore interface {
	// Initialize configures the store (file path, format) and loads
	// any existing state. Must be called before other operations. A
	// corrupt persisted blob is treated as empty state, not an error.
	Initialize(config map[string]string) error

	// State returns a copy of the full persisted state.
	State() models.State

	// Plan returns the stored plan for a plant, ok=false when none
	// has been saved.
	Plan(plantID string) (models.Plan, bool)

	// SetPlan persists a full (already merged and validated) plan.
	SetPlan(plantID string, plan models.Plan) error

	// ResetPlan removes a stored plan, reverting the plant to
	// defaults.
	ResetPlan(plantID string) error

	// Completion returns the completion record for a task instance
	// id, ok=false when the task has never been marked done.
	Completion(taskID string) (models.CompletionRecord, bool)

	// SetCompletion stores a completion record.
	SetCompletion(taskID string, rec models.CompletionRecord) error

	// ClearCompletion removes a completion record; absence means not
	// completed.
	ClearCompletion(taskID string) error

	// Note returns the note for a task or group id, empty when unset.
	Note(id string) string

	// SetNote stores a note; empty text removes it.
	SetNote(id, text string) error

	// Backup writes the current state to destinationPath.
	Backup(destinationPath string) error

	// Restore replaces the current state with the blob at sourcePath.
	Restore(sourcePath string) error

	// Close releases the file lock and any other held resources.
	Close() error
}
