package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/pcampbell/trellis/models"
)

const (
	defaultStateFile = "state.json"
	stateFileKey     = "stateFile"
	stateFormatKey   = "stateFileFormat"

	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"

	checksumSuffix = ".checksum"
)

// FileStateStore implements StateStore on a single file blob. It
// supports JSON, YAML and TOML formats, guards the file with an
// advisory lock, and keeps a checksum sidecar to detect torn writes.
type FileStateStore struct {
	filePath string
	format   string
	flk      *flock.Flock
	state    models.State
}

// NewFileStateStore creates an uninitialized store; Initialize must be
// called before use.
func NewFileStateStore() *FileStateStore {
	return &FileStateStore{state: models.NewState()}
}

// Initialize configures the store, acquires the file lock for the
// initial load, and reads existing state. Per the error policy, an
// unreadable or corrupt blob resets to empty defaults rather than
// failing.
func (s *FileStateStore) Initialize(config map[string]string) error {
	if v, ok := config[stateFileKey]; ok && v != "" {
		s.filePath = v
	} else {
		s.filePath = defaultStateFile
	}

	if v, ok := config[stateFormatKey]; ok && v != "" {
		f := strings.ToLower(v)
		switch f {
		case formatJSON, formatYAML, formatTOML:
			s.format = f
		default:
			return fmt.Errorf("unsupported stateFileFormat: %s (supported: json, yaml, toml)", v)
		}
	} else {
		s.format = formatJSON
	}

	if s.filePath == defaultStateFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	if dir := filepath.Dir(s.filePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock on %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("acquire blocking lock on %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.loadLocked()
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// loadLocked reads and decodes the state file. Caller holds the lock.
func (s *FileStateStore) loadLocked() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.resetState()
			return s.writeLocked()
		}
		return fmt.Errorf("read state file %s: %w", s.filePath, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.resetState()
		return nil
	}

	if sumData, err := os.ReadFile(s.filePath + checksumSuffix); err == nil {
		if strings.TrimSpace(string(sumData)) != checksum(data) {
			slog.Warn("state file checksum mismatch, resetting to defaults", "path", s.filePath)
			s.resetState()
			return s.writeLocked()
		}
	}

	var st models.State
	if err := s.decode(data, &st); err != nil {
		// Corrupt blob: whole-blob reset, no partial recovery.
		slog.Warn("state file unparseable, resetting to defaults", "path", s.filePath, "error", err)
		s.resetState()
		return s.writeLocked()
	}
	st.Normalize()
	if st.InstallID == "" {
		st.InstallID = uuid.NewString()
	}
	s.state = st
	return nil
}

func (s *FileStateStore) resetState() {
	s.state = models.NewState()
	s.state.InstallID = uuid.NewString()
}

func (s *FileStateStore) decode(data []byte, st *models.State) error {
	switch s.format {
	case formatYAML:
		return yaml.Unmarshal(data, st)
	case formatTOML:
		return toml.Unmarshal(data, st)
	default:
		return json.Unmarshal(data, st)
	}
}

func (s *FileStateStore) encode(st models.State) ([]byte, error) {
	switch s.format {
	case formatYAML:
		return yaml.Marshal(st)
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(st); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(st, "", "  ")
	}
}

// writeLocked persists the in-memory state and its checksum sidecar.
// Caller holds the lock.
func (s *FileStateStore) writeLocked() error {
	data, err := s.encode(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replace state file %s: %w", s.filePath, err)
	}
	if err := os.WriteFile(s.filePath+checksumSuffix, []byte(checksum(data)), 0o644); err != nil {
		return fmt.Errorf("write checksum sidecar: %w", err)
	}
	return nil
}

// mutate runs fn over the state under the file lock and persists the
// result.
func (s *FileStateStore) mutate(fn func(st *models.State)) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()
	fn(&s.state)
	return s.writeLocked()
}

// State returns a deep copy so callers cannot mutate the store's maps
// behind its back.
func (s *FileStateStore) State() models.State {
	out := models.NewState()
	out.Version = s.state.Version
	out.InstallID = s.state.InstallID
	for k, v := range s.state.Plans {
		out.Plans[k] = v
	}
	for k, v := range s.state.Completions {
		out.Completions[k] = v
	}
	for k, v := range s.state.Notes {
		out.Notes[k] = v
	}
	return out
}

func (s *FileStateStore) Plan(plantID string) (models.Plan, bool) {
	p, ok := s.state.Plans[plantID]
	return p, ok
}

func (s *FileStateStore) SetPlan(plantID string, plan models.Plan) error {
	if err := models.ValidateStruct(plan); err != nil {
		return fmt.Errorf("invalid plan for %s: %w", plantID, err)
	}
	return s.mutate(func(st *models.State) {
		st.Plans[plantID] = plan
	})
}

func (s *FileStateStore) ResetPlan(plantID string) error {
	return s.mutate(func(st *models.State) {
		delete(st.Plans, plantID)
	})
}

func (s *FileStateStore) Completion(taskID string) (models.CompletionRecord, bool) {
	rec, ok := s.state.Completions[taskID]
	return rec, ok
}

func (s *FileStateStore) SetCompletion(taskID string, rec models.CompletionRecord) error {
	return s.mutate(func(st *models.State) {
		st.Completions[taskID] = rec
	})
}

func (s *FileStateStore) ClearCompletion(taskID string) error {
	return s.mutate(func(st *models.State) {
		delete(st.Completions, taskID)
	})
}

func (s *FileStateStore) Note(id string) string {
	return s.state.Notes[id]
}

func (s *FileStateStore) SetNote(id, text string) error {
	return s.mutate(func(st *models.State) {
		if text == "" {
			delete(st.Notes, id)
			return
		}
		st.Notes[id] = text
	})
}

// Backup copies the encoded state to destinationPath.
func (s *FileStateStore) Backup(destinationPath string) error {
	data, err := s.encode(s.state)
	if err != nil {
		return fmt.Errorf("encode state for backup: %w", err)
	}
	if dir := filepath.Dir(destinationPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(destinationPath, data, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current state with the decoded blob at
// sourcePath. Unlike Initialize, a corrupt source is an error here:
// the user named the file explicitly.
func (s *FileStateStore) Restore(sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read restore source %s: %w", sourcePath, err)
	}
	var st models.State
	if err := s.decode(data, &st); err != nil {
		return fmt.Errorf("parse restore source %s: %w", sourcePath, err)
	}
	st.Normalize()
	return s.mutate(func(cur *models.State) {
		*cur = st
	})
}

func (s *FileStateStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
