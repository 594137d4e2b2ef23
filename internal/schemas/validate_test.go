package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func fields(t *testing.T, err error) []string {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	out := make([]string, 0, len(validationErr.Violations))
	for _, v := range validationErr.Violations {
		out = append(out, v.Field)
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		fields []string
	}{
		{"valid", `{"name": "Kira", "age": 30}`, nil},
		{"missing field", `{"age": 30}`, []string{"(root)"}},
		{"wrong type", `{"name": "Kira", "age": "thirty"}`, []string{"age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("person", []byte(personSchema), []byte(tt.doc))
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, fields(t, err))
		})
	}
}

func TestValidate_BadSchema(t *testing.T) {
	err := Validate("broken.json", []byte(`{"type": 12}`), []byte(`{}`))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "broken.json", schemaErr.Name)
	assert.Contains(t, err.Error(), "invalid schema broken.json")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate("person", []byte(personSchema), []byte("{ invalid json }"))

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)

	var schemaErr *SchemaError
	assert.False(t, errors.As(err, &schemaErr), "a bad document must not be blamed on the schema")
}

func TestValidationError_Messages(t *testing.T) {
	err := &ValidationError{
		Violations: []Violation{
			{Field: "name", Description: "is required"},
			{Field: "age", Description: "must be a number"},
		},
	}

	assert.Equal(t, []string{"name: is required", "age: must be a number"}, err.Messages())
	assert.Equal(t, "document does not match schema: 2 violations, first name: is required", err.Error())

	single := &ValidationError{Violations: err.Violations[:1]}
	assert.Equal(t, "document does not match schema: name: is required", single.Error())
}

func TestValidateDataset_Valid(t *testing.T) {
	doc := `[
		{"id": 255, "name": "Gunnery", "totalGroupSP": 256000, "skills": [
			{"name": "Gunnery", "rank": {"value": 1}, "skill": {"trained_skill_level": 5, "skillpoints_in_skill": 256000}},
			{"name": "Capital Energy Turret", "rank": {"value": 7}, "skill": null}
		]},
		{"id": 0, "name": "Empty", "skills": []}
	]`

	assert.NoError(t, ValidateDataset([]byte(doc)))
}

func TestValidateDataset_Empty(t *testing.T) {
	assert.NoError(t, ValidateDataset([]byte(`[]`)))
}

func TestValidateDataset_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not an array", `{"id": 1}`, "(root)"},
		{"missing name", `[{"id": 1, "skills": []}]`, "0"},
		{"negative id", `[{"id": -1, "name": "G"}]`, "0.id"},
		{"level above five", `[{"id": 1, "name": "G", "skills": [{"name": "S", "skill": {"trained_skill_level": 9, "skillpoints_in_skill": 0}}]}]`, "0.skills.0.skill.trained_skill_level"},
		{"skill without points", `[{"id": 1, "name": "G", "skills": [{"name": "S", "skill": {"trained_skill_level": 1}}]}]`, "0.skills.0.skill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, fields(t, ValidateDataset([]byte(tt.doc))), tt.field)
		})
	}
}

func TestValidateDataset_Malformed(t *testing.T) {
	err := ValidateDataset([]byte(`[{`))

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
}

func TestSchemaError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected token")
	err := &SchemaError{Name: "x.json", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid schema x.json: unexpected token", err.Error())
}
