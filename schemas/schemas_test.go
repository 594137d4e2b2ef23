package schemas_test

import (
	"encoding/json"
	"io/fs"
	"os"
	"testing"

	"github.com/jonathan/skillboard/internal/schemas"
	docs "github.com/jonathan/skillboard/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	files, err := fs.Glob(docs.FS, "*.schema.json")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, schemaFile := range files {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := docs.FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestSkillGroupsSchema_AcceptsExample(t *testing.T) {
	data, err := docs.FS.ReadFile(docs.SkillGroupsFile)
	require.NoError(t, err)

	doc := `[
		{
			"id": 255,
			"name": "Gunnery",
			"totalGroupSP": 256000,
			"skills": [
				{"name": "Gunnery", "rank": {"value": 1}, "skill": {"trained_skill_level": 5, "skillpoints_in_skill": 256000}},
				{"name": "Capital Energy Turret", "rank": {"value": 7}}
			]
		},
		{"id": 0, "name": "Unassigned", "skills": null}
	]`

	assert.NoError(t, schemas.Validate(docs.SkillGroupsFile, data, []byte(doc)))
}

func TestSkillGroupsSchema_RejectsBadLevel(t *testing.T) {
	data, err := docs.FS.ReadFile(docs.SkillGroupsFile)
	require.NoError(t, err)

	doc := `[{"id": 1, "name": "G", "skills": [{"name": "S", "skill": {"trained_skill_level": 6, "skillpoints_in_skill": 0}}]}]`

	err = schemas.Validate(docs.SkillGroupsFile, data, []byte(doc))
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Violations)
}

func TestSkillGroupsSchema_Fixtures(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{"../testdata/valid/skill_groups.json", true},
		{"../testdata/invalid/level_out_of_range.json", false},
		// Unique ids are not expressible in the schema.
		{"../testdata/invalid/duplicate_group.json", true},
	}

	schema, err := docs.FS.ReadFile(docs.SkillGroupsFile)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			doc, err := os.ReadFile(tt.path)
			require.NoError(t, err)

			err = schemas.Validate(docs.SkillGroupsFile, schema, doc)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
