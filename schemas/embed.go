// Package schemas holds the JSON Schema documents for skillboard data files.
package schemas

import "embed"

// SkillGroupsFile is the schema for a dataset file.
const SkillGroupsFile = "skill_groups.schema.json"

//go:embed *.schema.json
var FS embed.FS
