// Package seed loads and validates the board a session starts from.
//
// Seed files hold one list per column:
//
//	{
//	  "todo":  [{"id": "task-1", "title": "Design new feature", "status": "todo"}],
//	  "doing": [],
//	  "done":  []
//	}
//
// JSON, YAML (.yaml, .yml) and TOML (.toml) encodings are accepted. The
// snapshot files written by the notify package use the same shape, so a
// snapshot can seed the next session.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/doable-go/internal/board"
)

// Document is the decoded seed file.
type Document struct {
	Todo  []board.Task `json:"todo"`
	Doing []board.Task `json:"doing"`
	Done  []board.Task `json:"done"`
}

// Board converts the document into a board.
func (d *Document) Board() board.Board {
	return board.New(d.columns())
}

func (d *Document) columns() map[board.ColumnID][]board.Task {
	return map[board.ColumnID][]board.Task{
		board.ColumnTodo:  d.Todo,
		board.ColumnDoing: d.Doing,
		board.ColumnDone:  d.Done,
	}
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err joins the validation errors, or returns nil for a valid result.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("invalid board: %s", strings.Join(msgs, "; "))
}

// Load reads, validates and converts a seed file.
func Load(path string) (board.Board, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return board.Board{}, err
	}
	return doc.Board(), nil
}

// LoadDocument reads and validates a seed file without converting it.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	raw, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	doc, result := Validate(raw)
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return doc, nil
}

// decode parses data according to the file extension into JSON-shaped
// values (maps, slices, strings, float64, bool, nil).
func decode(path string, data []byte) (any, error) {
	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		raw = table
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	return normalize(raw)
}

// normalize round-trips v through JSON so YAML and TOML values take the
// same Go types as decoded JSON.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks a decoded seed value against the board schema and the
// board invariants: unique ids, and a status matching its column when one
// is given.
func Validate(raw any) (*Document, *ValidationResult) {
	result := &ValidationResult{Valid: true, Errors: make([]error, 0)}

	if raw == nil {
		raw = map[string]any{}
	}
	schema, err := compileSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("compile schema: %w", err)})
		return nil, result
	}
	if err := schema.Validate(raw); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return nil, result
	}

	data, err := json.Marshal(raw)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: err})
		return nil, result
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: err})
		return nil, result
	}

	seen := make(map[string]string)
	for _, col := range board.Columns() {
		for i, t := range doc.columns()[col.ID] {
			path := fmt.Sprintf("%s[%d]", col.ID, i)
			if prev, ok := seen[t.ID]; ok {
				result.Valid = false
				result.Errors = append(result.Errors, &ValidationError{
					Path: path + ".id",
					Err:  fmt.Errorf("duplicate id %q (first at %s)", t.ID, prev),
				})
			} else {
				seen[t.ID] = path
			}
			if t.Status != "" && t.Status != col.ID {
				result.Valid = false
				result.Errors = append(result.Errors, &ValidationError{
					Path: path + ".status",
					Err:  fmt.Errorf("status %q does not match column %q", t.Status, col.ID),
				})
			}
		}
	}
	if !result.Valid {
		return nil, result
	}
	return &doc, result
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(SchemaURL, strings.NewReader(Schema)); err != nil {
		return nil, err
	}
	return compiler.Compile(SchemaURL)
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
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/todo/0/id" into "todo[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Save writes b to path as indented JSON with a trailing newline.
func Save(path string, b board.Board) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write board file: %w", err)
	}
	return nil
}
