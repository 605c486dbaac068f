package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/utils"
)

//go:embed todo.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/nibzard/todo-go/todo.schema.json"

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// Schema runs JSON Schema validation against the embedded schema
	// before the structural checks.
	Schema bool
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate validates the task file.
// The structural checks always run: JSON Schema cannot express id ordering.
func (f *File) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if f.Legacy {
		result.Warnings = append(result.Warnings, "file uses the legacy todos layout; it will be rewritten on next save")
	}

	if opts.Schema {
		validateWithSchema(f, result)
	}

	f.validateMinimal(result)

	return result
}

// validateMinimal performs the structural checks.
func (f *File) validateMinimal(result *ValidationResult) {
	if f.SchemaVersion != SchemaVersion {
		result.addError("schema_version", fmt.Errorf("expected %d, got %d", SchemaVersion, f.SchemaVersion))
	}

	if f.NextID < 1 {
		result.addError("next_id", fmt.Errorf("must be at least 1, got %d", f.NextID))
	}

	if f.Tasks == nil {
		result.addError("tasks", fmt.Errorf("missing required field"))
		return
	}

	var prev uint64
	for i, task := range f.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if task.ID == 0 {
			result.addError(path+".id", fmt.Errorf("must be positive"))
		} else if task.ID <= prev {
			result.addError(path+".id", fmt.Errorf("id %d is not greater than previous id %d", task.ID, prev))
		}
		if f.NextID >= 1 && task.ID >= f.NextID {
			result.addError(path+".id", fmt.Errorf("id %d is not below next_id %d", task.ID, f.NextID))
		}
		if !ValidPriority(task.Priority) {
			result.addError(path+".priority", fmt.Errorf("must be between %d and %d, got %d", MinPriority, MaxPriority, task.Priority))
		}
		if task.CreatedAt.IsZero() {
			result.addError(path+".created_at", fmt.Errorf("missing required field"))
		}
		if task.ID > prev {
			prev = task.ID
		}
	}
}

func (r *ValidationResult) addError(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// validateWithSchema validates the file against the embedded JSON Schema.
func validateWithSchema(f *File, result *ValidationResult) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema: %v", err))
		return
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema: %v", err))
		return
	}

	result.UsedSchema = true

	// Parsed files are checked as read so unknown keys are caught; files
	// built in memory or converted from the legacy layout are marshaled.
	fileData := f.raw
	if fileData == nil {
		fileData, err = json.Marshal(f)
		if err != nil {
			result.addError("", fmt.Errorf("failed to marshal file for validation: %w", err))
			return
		}
	}

	var fileObj interface{}
	if err := json.Unmarshal(fileData, &fileObj); err != nil {
		result.addError("", fmt.Errorf("failed to unmarshal file for validation: %w", err))
		return
	}

	if err := schema.Validate(fileObj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
