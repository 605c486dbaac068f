package todo

import (
	"fmt"

	"github.com/spf13/afero"
)

// Repository loads stores from and saves them to one task file.
type Repository struct {
	fs   afero.Fs
	path string
	opts []Option
}

// NewRepository returns a repository for the task file at path.
// Options are applied to every store it loads.
func NewRepository(fsys afero.Fs, path string, opts ...Option) *Repository {
	return &Repository{fs: fsys, path: path, opts: opts}
}

// Path returns the task file path.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the task file into a new store. A missing file gives an empty
// store. The returned warnings are non-fatal findings such as a legacy layout.
func (r *Repository) Load() (*Store, []string, error) {
	f, err := Load(r.fs, r.path)
	if err != nil {
		return nil, nil, err
	}
	var warnings []string
	if f.Legacy {
		warnings = append(warnings, fmt.Sprintf("%s uses the legacy todos layout; it will be rewritten on next save", r.path))
	}
	s, err := f.Store(r.opts...)
	if err != nil {
		return nil, warnings, fmt.Errorf("%s: %w", r.path, err)
	}
	return s, warnings, nil
}

// Save writes the store to the task file.
func (r *Repository) Save(s *Store) error {
	return Snapshot(s).Save(r.fs, r.path)
}

// Validate reads the task file and validates it, including the JSON Schema check.
func (r *Repository) Validate() (*ValidationResult, error) {
	f, err := Load(r.fs, r.path)
	if err != nil {
		return nil, err
	}
	return f.Validate(ValidationOptions{Schema: true}), nil
}
