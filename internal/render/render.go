// Package render prints tasks for the terminal.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todo-go/internal/todo"
)

// EmptyMessage is printed in place of an empty task listing.
const EmptyMessage = "No tasks left!"

// Options controls task output.
type Options struct {
	// Color enables styling. It only takes effect on terminals.
	Color bool
	// TimeFormat is the Go layout used for created timestamps.
	TimeFormat string
}

// Printer writes task listings to a writer.
type Printer struct {
	w          io.Writer
	timeFormat string
	styled     bool
	styles     Styles
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	layout := opts.TimeFormat
	if layout == "" {
		layout = "2006-01-02 15:04:05"
	}
	styled := opts.Color && IsTerminal(w)
	return &Printer{
		w:          w,
		timeFormat: layout,
		styled:     styled,
		styles:     NewStyles(lipgloss.NewRenderer(w)),
	}
}

// Tasks prints one line per task, or EmptyMessage when there are none.
func (p *Printer) Tasks(tasks []todo.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(p.w, EmptyMessage)
		return err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintln(p.w, p.Line(t)); err != nil {
			return err
		}
	}
	return nil
}

// Line formats a single task as "<id>: <name> [P<priority>], created: <time>".
func (p *Printer) Line(t todo.Task) string {
	id := fmt.Sprintf("%d", t.ID)
	prio := fmt.Sprintf("[P%d]", t.Priority)
	created := t.CreatedAt.UTC().Format(p.timeFormat)
	if p.styled {
		id = p.styles.ID.Render(id)
		prio = p.styles.Priority(t.Priority).Render(prio)
		created = p.styles.Muted.Render(created)
	}
	return fmt.Sprintf("%s: %s %s, created: %s", id, t.Name, prio, created)
}

// Messagef prints a plain status line such as "Added task 3".
func (p *Printer) Messagef(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
