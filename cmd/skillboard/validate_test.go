package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/skillboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Success(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "skill_groups.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "DATASET IS VALID")
	assert.Contains(t, out, "Groups:    3")
	assert.Contains(t, out, "Total SP:  301,255")
}

func TestValidateCommand_YAML(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "skill_groups.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Groups:    2")
}

func TestValidateCommand_SchemaFailure(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("invalid", "level_out_of_range.json"))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "DATASET ISSUES")
	assert.Contains(t, out, "trained_skill_level")
}

func TestValidateCommand_DuplicateGroup(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("invalid", "duplicate_group.json"))
	require.Error(t, err)
	assert.Contains(t, out, "duplicate skill group id: 255")
}

func TestValidateCommand_ExplicitSchema(t *testing.T) {
	schema := "../../schemas/skill_groups.schema.json"

	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "skill_groups.json"), "--schema", schema)
	require.NoError(t, err)
	assert.Contains(t, out, "DATASET IS VALID")

	out, err = executeCommand(t, "validate", "--dataset", fixture("invalid", "level_out_of_range.json"), "--schema", schema)
	require.Error(t, err)
	assert.Contains(t, out, "DATASET ISSUES")
}

func TestValidateCommand_ExplicitSchemaYAML(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "skill_groups.yaml"),
		"--schema", "../../schemas/skill_groups.schema.json")
	require.NoError(t, err)
	assert.Contains(t, out, "DATASET IS VALID")
}

func TestValidateCommand_ExplicitSchemaURL(t *testing.T) {
	content, err := os.ReadFile(fixture("valid", "skill_groups.json"))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	out, err := executeCommand(t, "validate", "--dataset", srv.URL+"/skills", "--schema", "../../schemas/skill_groups.schema.json")
	require.NoError(t, err)
	assert.Contains(t, out, "DATASET IS VALID")
}

func TestValidateCommand_BrokenSchema(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "broken.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": 12}`), 0644))

	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "skill_groups.yaml"), "--schema", schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema broken.schema.json")
	assert.NotContains(t, out, "DATASET ISSUES")
}

func TestValidateCommand_VerboseMetadata(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "skill_groups.json"), "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, `"format": "json"`)
	assert.Contains(t, out, `"groups": 3`)
	assert.Contains(t, out, `"hash": "`)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	out, err := executeCommand(t, "validate", "--dataset", fixture("valid", "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read dataset file")
	assert.NotContains(t, out, "DATASET ISSUES")
}

func TestValidateCommand_MissingFlag(t *testing.T) {
	_, err := executeCommand(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestDatasetIssues_Fallback(t *testing.T) {
	assert.Equal(t, []string{"boom"}, datasetIssues(errors.New("boom")))
	assert.Equal(t, []string{"duplicate skill group id: 4"}, datasetIssues(&types.DuplicateGroupError{ID: 4}))
}

func TestDatasetIssues_FieldRules(t *testing.T) {
	err := types.Dataset{{ID: 1, Name: ""}}.Validate()
	require.Error(t, err)

	issues := datasetIssues(err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "Name")
	assert.Contains(t, issues[0], "required")
}
