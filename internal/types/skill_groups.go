// Package types provides type definitions for the skill data rendered by skillboard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxTrainedLevel is the highest level a skill can be trained to.
const MaxTrainedLevel = 5

// Rank is the difficulty multiplier of a skill type.
type Rank struct {
	Value int `json:"value" yaml:"value" validate:"gte=0"`
}

// TrainedSkill is the character's state for a skill that has been injected.
type TrainedSkill struct {
	TrainedSkillLevel  int `json:"trained_skill_level" yaml:"trained_skill_level" validate:"gte=0,lte=5"`
	SkillpointsInSkill int `json:"skillpoints_in_skill" yaml:"skillpoints_in_skill" validate:"gte=0"`
}

// SkillEntry is one skill inside a group. Skill is nil when the skill has not been injected.
type SkillEntry struct {
	Name  string        `json:"name" yaml:"name" validate:"required"`
	Rank  *Rank         `json:"rank,omitempty" yaml:"rank,omitempty"`
	Skill *TrainedSkill `json:"skill,omitempty" yaml:"skill,omitempty"`
}

// Injected returns the trained state and true when the skill has been injected.
func (e SkillEntry) Injected() (TrainedSkill, bool) {
	if e.Skill == nil {
		return TrainedSkill{}, false
	}
	return *e.Skill, true
}

// IsInjected reports whether the skill has been injected.
func (e SkillEntry) IsInjected() bool {
	return e.Skill != nil
}

// RankValue returns the rank of the skill, or 0 when no rank is known.
func (e SkillEntry) RankValue() int {
	if e.Rank == nil {
		return 0
	}
	return e.Rank.Value
}

// TrainedLevel returns the trained level, or 0 for uninjected skills.
func (e SkillEntry) TrainedLevel() int {
	if e.Skill == nil {
		return 0
	}
	return e.Skill.TrainedSkillLevel
}

// SkillGroup is a named collection of related skills with an aggregate point total.
type SkillGroup struct {
	ID           int          `json:"id" yaml:"id" validate:"gte=0"`
	Name         string       `json:"name" yaml:"name" validate:"required"`
	TotalGroupSP int          `json:"totalGroupSP" yaml:"totalGroupSP" validate:"gte=0"`
	Skills       []SkillEntry `json:"skills" yaml:"skills" validate:"dive"`
}

// Dataset is the ordered list of skill groups for one character.
type Dataset []SkillGroup

// datasetEnvelope lets validator dive into the top-level slice.
type datasetEnvelope struct {
	Groups []SkillGroup `validate:"dive"`
}

// DuplicateGroupError is returned when two groups share an id.
type DuplicateGroupError struct {
	ID int
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("duplicate skill group id: %d", e.ID)
}

// Validate checks field ranges and that group ids are unique.
func (d Dataset) Validate() error {
	validate := validator.New()
	if err := validate.Struct(datasetEnvelope{Groups: d}); err != nil {
		return err
	}

	seen := make(map[int]bool, len(d))
	for _, g := range d {
		if seen[g.ID] {
			return &DuplicateGroupError{ID: g.ID}
		}
		seen[g.ID] = true
	}
	return nil
}

// SkillCount returns the number of skill entries across all groups.
func (d Dataset) SkillCount() int {
	n := 0
	for _, g := range d {
		n += len(g.Skills)
	}
	return n
}
