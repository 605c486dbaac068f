package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// SchemaVersion is the task file format version written by Save.
const SchemaVersion = 1

// File represents the task file structure.
type File struct {
	SchemaVersion int    `json:"schema_version"`
	NextID        uint64 `json:"next_id"`
	Tasks         []Task `json:"tasks"`

	// Legacy is set when the file was read from the {"todos": [...]} layout.
	Legacy bool `json:"-"`

	// raw holds the bytes Parse decoded; schema validation checks these.
	raw []byte
}

// legacyTodo is an entry of the older {"todos": [...]} layout.
type legacyTodo struct {
	ID       uint64 `json:"id"`
	Task     string `json:"task"`
	Priority int    `json:"priority"`
	Created  int64  `json:"created"`
}

type rawFile struct {
	SchemaVersion int          `json:"schema_version"`
	NextID        uint64       `json:"next_id"`
	Tasks         []Task       `json:"tasks"`
	Todos         []legacyTodo `json:"todos"`
}

// NewFile returns an empty task file.
func NewFile() *File {
	return &File{
		SchemaVersion: SchemaVersion,
		NextID:        1,
		Tasks:         []Task{},
	}
}

// Load reads and parses a task file from path.
// A missing file yields an empty task file.
func Load(fsys afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewFile(), nil
		}
		return nil, fmt.Errorf("read todo file: %w", err)
	}
	return Parse(data)
}

// Parse decodes task file contents, converting the legacy layout if needed.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}

	if raw.Tasks == nil && raw.Todos != nil {
		return convertLegacy(raw.Todos), nil
	}

	f := &File{
		SchemaVersion: raw.SchemaVersion,
		NextID:        raw.NextID,
		Tasks:         raw.Tasks,
		raw:           data,
	}
	return f, nil
}

func convertLegacy(todos []legacyTodo) *File {
	f := NewFile()
	f.Legacy = true
	for _, t := range todos {
		f.Tasks = append(f.Tasks, Task{
			ID:        t.ID,
			Name:      t.Task,
			Priority:  t.Priority,
			CreatedAt: time.Unix(t.Created, 0).UTC(),
		})
		if t.ID >= f.NextID {
			f.NextID = t.ID + 1
		}
	}
	return f
}

// Save writes the task file to path with 2-space indentation.
// The data goes to a temp file in the same directory which is then renamed over path.
func (f *File) Save(fsys afero.Fs, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todo file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create todo dir: %w", err)
	}

	tmp, err := afero.TempFile(fsys, dir, ".todos-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("write todo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("write todo file: %w", err)
	}
	// TempFile creates 0600; keep the mode of the file being replaced.
	mode := os.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := fsys.Chmod(tmpName, mode); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("chmod todo file: %w", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("replace todo file: %w", err)
	}

	return nil
}

// Store builds a store from the file after checking it is consistent.
func (f *File) Store(opts ...Option) (*Store, error) {
	result := f.Validate(ValidationOptions{})
	if !result.Valid {
		return nil, fmt.Errorf("invalid todo file: %w", errors.Join(result.Errors...))
	}
	s := NewStore(opts...)
	s.tasks = make([]Task, len(f.Tasks))
	copy(s.tasks, f.Tasks)
	s.nextID = f.NextID
	return s, nil
}

// Snapshot captures the store contents as a task file.
func Snapshot(s *Store) *File {
	return &File{
		SchemaVersion: SchemaVersion,
		NextID:        s.nextID,
		Tasks:         s.List(),
	}
}
