// Package schemas checks dataset documents against JSON Schema.
package schemas

import (
	"fmt"

	docs "github.com/jonathan/skillboard/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Violation is one place where a document breaks the schema.
type Violation struct {
	Field       string // dotted path, "(root)" for the document itself
	Description string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("document does not match schema: %s: %s", v.Field, v.Description)
	}
	return fmt.Sprintf("document does not match schema: %d violations, first %s: %s",
		len(e.Violations), e.Violations[0].Field, e.Violations[0].Description)
}

// Messages returns one "field: description" line per violation.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field+": "+v.Description)
	}
	return out
}

// SchemaError reports a schema that could not be compiled.
type SchemaError struct {
	Name  string
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// DocumentError reports a document that is not well-formed JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document is not valid JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Validate checks a JSON document against a JSON Schema. name labels the schema in
// errors. Returns *SchemaError, *DocumentError or *ValidationError.
func Validate(name string, schema, doc []byte) error {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return &SchemaError{Name: name, Cause: err}
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violations = append(violations, Violation{Field: field, Description: desc.Description()})
	}
	return &ValidationError{Violations: violations}
}

// ValidateDataset checks dataset JSON against the built-in skill groups schema.
func ValidateDataset(doc []byte) error {
	schema, err := docs.FS.ReadFile(docs.SkillGroupsFile)
	if err != nil {
		return &SchemaError{Name: docs.SkillGroupsFile, Cause: err}
	}
	return Validate(docs.SkillGroupsFile, schema, doc)
}
