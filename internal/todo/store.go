package todo

import (
	"sort"
	"time"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

// Task is a single todo entry.
type Task struct {
	ID        uint64    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Priority  int       `json:"priority" yaml:"priority"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ValidPriority reports whether p is inside [MinPriority, MaxPriority].
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used to stamp new tasks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns a set of tasks in insertion order.
// It is not safe for concurrent use.
type Store struct {
	tasks  []Task
	nextID uint64
	now    func() time.Time
}

// NewStore returns an empty store whose first id is 1.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new task and returns its id.
func (s *Store) Add(name string, priority int) (uint64, error) {
	if !ValidPriority(priority) {
		return 0, invalidPriority(priority)
	}
	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, Task{
		ID:        id,
		Name:      name,
		Priority:  priority,
		CreatedAt: s.now().UTC(),
	})
	return id, nil
}

// Remove deletes the task with the given id. Remaining ids are untouched.
func (s *Store) Remove(id uint64) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Edit replaces the name of the task with the given id.
func (s *Store) Edit(id uint64, name string) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks[i].Name = name
	return nil
}

// SetPriority changes the priority of the task with the given id.
func (s *Store) SetPriority(id uint64, priority int) error {
	if !ValidPriority(priority) {
		return invalidPriority(priority)
	}
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks[i].Priority = priority
	return nil
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id uint64) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	return s.tasks[i], nil
}

// Clear removes every task. The id counter keeps its value.
func (s *Store) Clear() {
	s.tasks = nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() uint64 {
	return s.nextID
}

// List returns the tasks in insertion order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Prioritize returns the tasks ordered by priority, most urgent first.
// Equal priorities keep id order.
func (s *Store) Prioritize() []Task {
	out := s.List()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Schedule returns the tasks ordered by creation time, earliest first.
// Equal timestamps keep id order.
func (s *Store) Schedule() []Task {
	out := s.List()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// index uses binary search since ids are strictly increasing.
func (s *Store) index(id uint64) int {
	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].ID >= id
	})
	if i < len(s.tasks) && s.tasks[i].ID == id {
		return i
	}
	return -1
}
