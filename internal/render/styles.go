package render

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by the printer and the viewer.
type Styles struct {
	ID       lipgloss.Style
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	priority [6]lipgloss.Style
}

// priorityColors maps priority 1..5 to a color, least to most urgent.
var priorityColors = [6]lipgloss.Color{"", "245", "70", "220", "208", "196"}

// NewStyles builds the styles for the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	s := Styles{
		ID:       r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Selected: r.NewStyle().Reverse(true),
		Error:    r.NewStyle().Foreground(lipgloss.Color("196")),
	}
	for p := 1; p < len(priorityColors); p++ {
		s.priority[p] = r.NewStyle().Foreground(priorityColors[p])
	}
	s.priority[0] = r.NewStyle()
	return s
}

// Priority returns the style for priority p.
func (s Styles) Priority(p int) lipgloss.Style {
	if p < 1 || p >= len(s.priority) {
		return s.priority[0]
	}
	return s.priority[p]
}
