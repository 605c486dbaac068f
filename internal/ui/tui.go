// Package ui provides the interactive task viewer.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/render"
	"github.com/nibzard/todo-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	watch      bool
	timeFormat string
	logger     *log.Logger
}

// WithWatch enables reloading when the task file changes on disk.
func WithWatch(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.watch = enabled
	}
}

// WithTimeFormat sets the Go layout used for created timestamps.
func WithTimeFormat(layout string) TUIOption {
	return func(c *tuiConfig) {
		c.timeFormat = layout
	}
}

// WithLogger sets the logger for watcher problems.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI starts the viewer on the given repository.
func RunTUI(ctx context.Context, repo *todo.Repository, opts ...TUIOption) error {
	c := &tuiConfig{
		watch:      true,
		timeFormat: "2006-01-02 15:04:05",
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !render.IsTerminal(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(repo, c.timeFormat)

	if c.watch {
		watcher, err := watchFile(repo.Path())
		if err != nil {
			c.logger.Warn("file watching disabled", "path", repo.Path(), "err", err)
		} else {
			defer watcher.Close()
			model.changes = filterEvents(watcher, repo.Path())
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// View selects which ordering the viewer shows.
type View int

const (
	ViewList View = iota
	ViewPriority
	ViewSchedule
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewPriority:
		return "priority"
	case ViewSchedule:
		return "schedule"
	default:
		return "list"
	}
}

type tuiModel struct {
	repo       *todo.Repository
	store      *todo.Store
	loadErr    error
	err        error
	status     string
	view       View
	cursor     int
	editing    bool
	input      textinput.Model
	changes    <-chan struct{}
	styles     render.Styles
	timeFormat string
}

// fileChangedMsg reports that the task file changed on disk.
type fileChangedMsg struct{}

func newTUIModel(repo *todo.Repository, timeFormat string) *tuiModel {
	ti := textinput.New()
	ti.Prompt = "name: "
	ti.CharLimit = 200
	ti.Width = 50

	m := &tuiModel{
		repo:       repo,
		input:      ti,
		styles:     render.NewStyles(lipgloss.DefaultRenderer()),
		timeFormat: timeFormat,
	}
	m.reload()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	case fileChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)
	}
	return m, nil
}

func (m *tuiModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.view = (m.view + 1) % viewCount
	case "shift+tab":
		m.view = (m.view + viewCount - 1) % viewCount
	case "1":
		m.view = ViewList
	case "2":
		m.view = ViewPriority
	case "3":
		m.view = ViewSchedule
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks())-1 {
			m.cursor++
		}
	case "r", "f5":
		m.reload()
		m.status = "reloaded"
	case "x", "delete":
		if t, ok := m.selected(); ok {
			m.mutate(fmt.Sprintf("removed task %d", t.ID), func(s *todo.Store) error {
				return s.Remove(t.ID)
			})
		}
	case "+", "=":
		if t, ok := m.selected(); ok && t.Priority < todo.MaxPriority {
			m.mutate(fmt.Sprintf("task %d priority %d", t.ID, t.Priority+1), func(s *todo.Store) error {
				return s.SetPriority(t.ID, t.Priority+1)
			})
		}
	case "-":
		if t, ok := m.selected(); ok && t.Priority > todo.MinPriority {
			m.mutate(fmt.Sprintf("task %d priority %d", t.ID, t.Priority-1), func(s *todo.Store) error {
				return s.SetPriority(t.ID, t.Priority-1)
			})
		}
	case "e", "enter":
		if t, ok := m.selected(); ok {
			m.editing = true
			m.input.SetValue(t.Name)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	}

	m.clampCursor()
	return m, nil
}

func (m *tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.stopEditing()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		t, ok := m.selected()
		m.stopEditing()
		if ok && name != "" && name != t.Name {
			m.mutate(fmt.Sprintf("renamed task %d", t.ID), func(s *todo.Store) error {
				return s.Edit(t.ID, name)
			})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

// mutate applies fn and saves. On a failed save the store is reloaded from disk.
func (m *tuiModel) mutate(status string, fn func(*todo.Store) error) {
	if m.store == nil {
		return
	}
	if err := fn(m.store); err != nil {
		m.err = err
		return
	}
	if err := m.repo.Save(m.store); err != nil {
		m.err = err
		m.reload()
		return
	}
	m.status = status
}

func (m *tuiModel) reload() {
	store, _, err := m.repo.Load()
	if err != nil {
		m.loadErr = err
		m.store = nil
		return
	}
	m.loadErr = nil
	m.store = store
	m.clampCursor()
}

func (m *tuiModel) tasks() []todo.Task {
	if m.store == nil {
		return nil
	}
	switch m.view {
	case ViewPriority:
		return m.store.Prioritize()
	case ViewSchedule:
		return m.store.Schedule()
	default:
		return m.store.List()
	}
}

func (m *tuiModel) selected() (todo.Task, bool) {
	tasks := m.tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	n := len(m.tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.loadErr != nil {
		b.WriteString("Error loading todo file:\n")
		b.WriteString("  " + m.styles.Error.Render(m.loadErr.Error()) + "\n\n")
		writeFooter(&b, m.repo.Path())
		return b.String()
	}

	m.writeTasks(&b)

	if m.editing {
		b.WriteString(m.input.View() + "\n\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status) + "\n\n")
	}

	writeFooter(&b, m.repo.Path())
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	var tabs []string
	for v := ViewList; v < viewCount; v++ {
		label := fmt.Sprintf("%d %s", v+1, v)
		if v == m.view {
			label = m.styles.Title.Render("[" + label + "]")
		} else {
			label = " " + label + " "
		}
		tabs = append(tabs, label)
	}
	b.WriteString("todo  " + strings.Join(tabs, " ") + "\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	tasks := m.tasks()
	if len(tasks) == 0 {
		b.WriteString("  " + render.EmptyMessage + "\n\n")
		return
	}
	for i, t := range tasks {
		line := fmt.Sprintf("%3d  %s  %s  %s",
			t.ID,
			m.styles.Priority(t.Priority).Render(fmt.Sprintf("P%d", t.Priority)),
			t.CreatedAt.UTC().Format(m.timeFormat),
			t.Name,
		)
		if i == m.cursor {
			b.WriteString("> " + m.styles.Selected.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, path string) {
	b.WriteString(fmt.Sprintf("File: %s\n", path))
	b.WriteString("tab views | j/k move | e edit | +/- priority | x remove | r reload | q quit\n")
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// watchFile watches the directory holding path; saves replace the file by
// rename, which drops a watch placed on the file itself.
func watchFile(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// filterEvents forwards write, create and rename events for path.
// Bursts collapse into a single pending notification.
func filterEvents(watcher *fsnotify.Watcher, path string) <-chan struct{} {
	out := make(chan struct{}, 1)
	target := filepath.Clean(path)
	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out
}
