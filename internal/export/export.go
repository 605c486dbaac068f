// Package export writes task listings in file formats meant for other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/todo-go/internal/todo"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV, FormatPDF}

// ParseFormat normalizes a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (json|yaml|csv|pdf)", s)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// Options controls export output.
type Options struct {
	// Title heads the PDF report.
	Title string
	// TimeFormat is used for PDF timestamps; the data formats always use RFC 3339.
	TimeFormat string
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []todo.Task, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatYAML:
		return writeYAML(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks, opts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func writeYAML(w io.Writer, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeCSV(w io.Writer, tasks []todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "priority", "created_at"}); err != nil {
		return err
	}
	for _, t := range tasks {
		record := []string{
			strconv.FormatUint(t.ID, 10),
			t.Name,
			strconv.Itoa(t.Priority),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []todo.Task, opts Options) error {
	title := opts.Title
	if title == "" {
		title = "Todo List"
	}
	layout := opts.TimeFormat
	if layout == "" {
		layout = "2006-01-02 15:04:05"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	// The core fonts only cover cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks left!", "0", "L", false)
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%d: %s [P%d], created: %s", t.ID, t.Name, t.Priority, t.CreatedAt.UTC().Format(layout))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
