// Package table describes the shape of a table: named columns, which of
// them are sortable or searchable, and how cells render to display text.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tablekit/tablekit/ecode"
)

var validate = validator.New()

// RenderFunc formats a raw cell value for display.
type RenderFunc func(value any) string

// Column describes a single table column.
type Column struct {
	// Key identifies the column in query parameters and row maps.
	Key string `json:"key" validate:"required"`

	// Label is the display heading.
	Label string `json:"label" validate:"required"`

	// Sortable marks the column as a valid sortBy target.
	Sortable bool `json:"sortable,omitempty"`

	// Searchable includes the column in free-text search.
	Searchable bool `json:"searchable,omitempty"`

	// Render overrides the default fmt.Sprint cell formatting.
	Render RenderFunc `json:"-"`
}

// Definition is the full table description handed to the handler layer.
type Definition struct {
	Name    string   `json:"name" validate:"required"`
	Columns []Column `json:"columns" validate:"required,min=1,dive"`
}

// NewDefinition validates and returns a table definition. Unlike query
// parsing, a broken definition is a programming error and is reported.
func NewDefinition(name string, columns []Column) (*Definition, error) {
	def := &Definition{Name: name, Columns: columns}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// DefinitionError reports which parts of a definition failed validation,
// with a display-ready message per field.
type DefinitionError struct {
	Name   string
	Fields map[string]string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid table definition %q", e.Name)
}

// Validate checks the definition the same way NewDefinition does. It
// exists for definitions constructed literally rather than through
// NewDefinition; the handler layer calls it before serving.
func (d *Definition) Validate() error {
	fields := make(map[string]string)
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			key := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				fields[key] = ecode.FieldIsRequired(key)
			case "min":
				fields[key] = ecode.FieldIsEmpty(key)
			default:
				fields[key] = ecode.FieldIsInvalid(key)
			}
		}
	}
	seen := make(map[string]bool, len(d.Columns))
	for _, col := range d.Columns {
		if seen[col.Key] {
			fields["columns"] = ecode.FieldIsInvalid("duplicate column key " + strconv.Quote(col.Key))
		}
		seen[col.Key] = true
	}
	if len(fields) == 0 {
		return nil
	}
	return &DefinitionError{Name: d.Name, Fields: fields}
}

// Column looks up a column by key.
func (d *Definition) Column(key string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// SortableKeys lists the keys accepted as sortBy values.
func (d *Definition) SortableKeys() []string {
	var keys []string
	for _, col := range d.Columns {
		if col.Sortable {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// SearchableKeys lists the keys participating in free-text search.
func (d *Definition) SearchableKeys() []string {
	var keys []string
	for _, col := range d.Columns {
		if col.Searchable {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// CanSortBy reports whether key names a sortable column. Unknown or
// unsortable keys are how malformed sortBy parameters get neutralized.
func (d *Definition) CanSortBy(key string) bool {
	col, ok := d.Column(key)
	return ok && col.Sortable
}

// Cell renders a single value through the column's renderer, falling back
// to fmt.Sprint.
func (c Column) Cell(value any) string {
	if c.Render != nil {
		return c.Render(value)
	}
	return fmt.Sprint(value)
}
