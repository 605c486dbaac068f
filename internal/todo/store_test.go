package todo

import (
	"errors"
	"testing"
	"time"
)

// fakeClock returns a clock that advances by step on every call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func names(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func ids(tasks []Task) []uint64 {
	out := make([]uint64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddValidPriorities(t *testing.T) {
	s := NewStore()
	var last uint64
	for p := MinPriority; p <= MaxPriority; p++ {
		id, err := s.Add("task", p)
		if err != nil {
			t.Fatalf("Add(priority %d) failed: %v", p, err)
		}
		if id <= last {
			t.Errorf("Add(priority %d) id = %d, want > %d", p, id, last)
		}
		last = id
	}
	if s.Len() != 5 {
		t.Errorf("Len: got %d, want 5", s.Len())
	}
}

func TestAddInvalidPriority(t *testing.T) {
	tests := []struct {
		name     string
		priority int
	}{
		{name: "zero", priority: 0},
		{name: "six", priority: 6},
		{name: "negative", priority: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			if _, err := s.Add("keep", 3); err != nil {
				t.Fatal(err)
			}

			_, err := s.Add("bad", tt.priority)
			if !errors.Is(err, ErrInvalidPriority) {
				t.Fatalf("Add(%d) error = %v, want ErrInvalidPriority", tt.priority, err)
			}
			var te *TaskError
			if !errors.As(err, &te) || te.Priority != tt.priority {
				t.Errorf("TaskError priority: got %+v, want %d", te, tt.priority)
			}
			if s.Len() != 1 {
				t.Errorf("Len: got %d, want 1", s.Len())
			}
			if s.NextID() != 2 {
				t.Errorf("NextID: got %d, want 2", s.NextID())
			}
		})
	}
}

func TestAddStampsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	s := NewStore(WithClock(func() time.Time { return start }))

	id, err := s.Add("task", 1)
	if err != nil {
		t.Fatal(err)
	}
	task, err := s.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if task.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location: got %v, want UTC", task.CreatedAt.Location())
	}
	if !task.CreatedAt.Equal(start) {
		t.Errorf("CreatedAt: got %v, want %v", task.CreatedAt, start)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"task 1", "task 2", "task 3"} {
		if _, err := s.Add(name, 1); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Remove(2); err != nil {
		t.Fatalf("Remove(2) failed: %v", err)
	}
	if got, want := ids(s.List()), []uint64{1, 3}; !equalIDs(got, want) {
		t.Errorf("List ids: got %v, want %v", got, want)
	}

	id, err := s.Add("task 4", 2)
	if err != nil {
		t.Fatal(err)
	}
	if id != 4 {
		t.Errorf("next Add id: got %d, want 4", id)
	}
}

func TestRemoveNotFound(t *testing.T) {
	s := NewStore()

	if err := s.Remove(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove on empty store: got %v, want ErrNotFound", err)
	}

	if _, err := s.Add("task 1", 1); err != nil {
		t.Fatal(err)
	}
	for _, id := range []uint64{0, 2, 99} {
		err := s.Remove(id)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Remove(%d): got %v, want ErrNotFound", id, err)
		}
		var te *TaskError
		if errors.As(err, &te) && te.ID != id {
			t.Errorf("TaskError id: got %d, want %d", te.ID, id)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestRemovedIDNotReused(t *testing.T) {
	s := NewStore()
	id, _ := s.Add("only", 3)
	if err := s.Remove(id); err != nil {
		t.Fatal(err)
	}
	next, _ := s.Add("again", 3)
	if next == id {
		t.Errorf("id %d reused after removal", id)
	}
}

func TestEdit(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(fakeClock(created, time.Second)))
	for _, name := range []string{"task 1", "task 2", "task 3"} {
		if _, err := s.Add(name, 2); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Edit(1, "edited task"); err != nil {
		t.Fatalf("Edit(1) failed: %v", err)
	}
	task, _ := s.Get(1)
	if task.Name != "edited task" {
		t.Errorf("Name: got %q, want %q", task.Name, "edited task")
	}
	if task.Priority != 2 || !task.CreatedAt.Equal(created) || task.ID != 1 {
		t.Errorf("Edit changed other fields: %+v", task)
	}

	if err := s.Edit(4, "bad edited task"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit(4): got %v, want ErrNotFound", err)
	}
	if got, want := names(s.List()), []string{"edited task", "task 2", "task 3"}; !equalStrings(got, want) {
		t.Errorf("List: got %v, want %v", got, want)
	}
}

func TestSetPriority(t *testing.T) {
	s := NewStore()
	id, _ := s.Add("task", 1)

	if err := s.SetPriority(id, 5); err != nil {
		t.Fatalf("SetPriority failed: %v", err)
	}
	task, _ := s.Get(id)
	if task.Priority != 5 {
		t.Errorf("Priority: got %d, want 5", task.Priority)
	}

	if err := s.SetPriority(id, 0); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("SetPriority(0): got %v, want ErrInvalidPriority", err)
	}
	if err := s.SetPriority(42, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPriority(missing): got %v, want ErrNotFound", err)
	}
	task, _ = s.Get(id)
	if task.Priority != 5 {
		t.Errorf("Priority after failures: got %d, want 5", task.Priority)
	}
}

func TestListEmpty(t *testing.T) {
	s := NewStore()
	got := s.List()
	if got == nil || len(got) != 0 {
		t.Errorf("List on empty store: got %#v, want empty slice", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := NewStore()
	id, _ := s.Add("original", 3)

	tasks := s.List()
	tasks[0].Name = "mutated"

	task, _ := s.Get(id)
	if task.Name != "original" {
		t.Errorf("store mutated through List: got %q", task.Name)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Add("task 1", 1)
	s.Add("task 2", 2)

	s.Clear()
	if got := s.List(); len(got) != 0 {
		t.Errorf("List after Clear: got %v, want empty", got)
	}

	// Clearing twice is harmless.
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}

	id, err := s.Add("task 3", 3)
	if err != nil {
		t.Fatal(err)
	}
	if id != 3 {
		t.Errorf("id after Clear: got %d, want 3", id)
	}
}

func TestPrioritize(t *testing.T) {
	t.Run("highest first", func(t *testing.T) {
		s := NewStore()
		s.Add("buy milk", 3)
		s.Add("call mom", 5)

		got := names(s.Prioritize())
		want := []string{"call mom", "buy milk"}
		if !equalStrings(got, want) {
			t.Errorf("Prioritize: got %v, want %v", got, want)
		}
	})

	t.Run("ties by id", func(t *testing.T) {
		s := NewStore()
		s.Add("a", 2)
		s.Add("b", 4)
		s.Add("c", 2)
		s.Add("d", 4)
		s.Add("e", 1)
		s.Remove(1)
		s.Add("f", 2)

		got := ids(s.Prioritize())
		want := []uint64{2, 4, 3, 6, 5}
		if !equalIDs(got, want) {
			t.Errorf("Prioritize ids: got %v, want %v", got, want)
		}
	})

	t.Run("does not reorder store", func(t *testing.T) {
		s := NewStore()
		s.Add("low", 1)
		s.Add("high", 5)
		s.Prioritize()
		if got, want := names(s.List()), []string{"low", "high"}; !equalStrings(got, want) {
			t.Errorf("List after Prioritize: got %v, want %v", got, want)
		}
	})
}

func TestSchedule(t *testing.T) {
	t.Run("earliest first regardless of edits", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s := NewStore(WithClock(fakeClock(start, time.Minute)))
		s.Add("first", 1)
		s.Add("second", 5)
		s.Add("third", 3)
		s.Edit(1, "zzz renamed")
		s.Edit(3, "aaa renamed")

		got := ids(s.Schedule())
		want := []uint64{1, 2, 3}
		if !equalIDs(got, want) {
			t.Errorf("Schedule ids: got %v, want %v", got, want)
		}
	})

	t.Run("clock going backwards", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s := NewStore(WithClock(fakeClock(start, -time.Minute)))
		s.Add("first", 1)
		s.Add("second", 1)
		s.Add("third", 1)

		got := ids(s.Schedule())
		want := []uint64{3, 2, 1}
		if !equalIDs(got, want) {
			t.Errorf("Schedule ids: got %v, want %v", got, want)
		}
	})

	t.Run("same timestamp ties by id", func(t *testing.T) {
		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s := NewStore(WithClock(func() time.Time { return fixed }))
		s.Add("a", 5)
		s.Add("b", 1)
		s.Add("c", 3)

		got := ids(s.Schedule())
		want := []uint64{1, 2, 3}
		if !equalIDs(got, want) {
			t.Errorf("Schedule ids: got %v, want %v", got, want)
		}
	})
}

func TestTaskErrorMessages(t *testing.T) {
	s := NewStore()
	_, err := s.Add("x", 6)
	if got, want := err.Error(), "invalid priority 6 (must be 1-5)"; got != want {
		t.Errorf("error: got %q, want %q", got, want)
	}
	err = s.Remove(9)
	if got, want := err.Error(), "task 9 not found"; got != want {
		t.Errorf("error: got %q, want %q", got, want)
	}
}
