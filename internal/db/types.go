package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skillboard/internal/types"
)

// ImportBatch records one dataset import for a character
type ImportBatch struct {
	ID          uuid.UUID `json:"id"`
	CharacterID int64     `json:"character_id"`
	Source      string    `json:"source"`
	ContentHash string    `json:"content_hash"`
	GroupCount  int       `json:"group_count"`
	SkillCount  int       `json:"skill_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImportInput describes where an imported dataset came from
type ImportInput struct {
	CharacterID int64
	Source      string
	ContentHash string
	Dataset     types.Dataset
}

// groupRecord is one row of skill_groups
type groupRecord struct {
	GroupID      int
	Position     int
	Name         string
	TotalGroupSP int64
}

// skillRecord is one row of group_skills. Level and Points are both nil for a skill
// that is not injected.
type skillRecord struct {
	GroupID  int
	Position int
	Name     string
	Rank     *int
	Level    *int
	Points   *int64
}

// flattenDataset turns a dataset into ordered table rows.
func flattenDataset(dataset types.Dataset) ([]groupRecord, []skillRecord) {
	groups := make([]groupRecord, 0, len(dataset))
	skills := make([]skillRecord, 0, dataset.SkillCount())

	for gi, group := range dataset {
		groups = append(groups, groupRecord{
			GroupID:      group.ID,
			Position:     gi,
			Name:         group.Name,
			TotalGroupSP: int64(group.TotalGroupSP),
		})

		for si, entry := range group.Skills {
			rec := skillRecord{GroupID: group.ID, Position: si, Name: entry.Name}
			if entry.Rank != nil {
				rank := entry.Rank.Value
				rec.Rank = &rank
			}
			if trained, ok := entry.Injected(); ok {
				level := trained.TrainedSkillLevel
				points := int64(trained.SkillpointsInSkill)
				rec.Level = &level
				rec.Points = &points
			}
			skills = append(skills, rec)
		}
	}

	return groups, skills
}

// assembleDataset rebuilds a dataset from rows ordered by position. Skills whose group
// is missing are dropped.
func assembleDataset(groups []groupRecord, skills []skillRecord) types.Dataset {
	dataset := make(types.Dataset, 0, len(groups))
	index := make(map[int]int, len(groups))

	for _, g := range groups {
		index[g.GroupID] = len(dataset)
		dataset = append(dataset, types.SkillGroup{
			ID:           g.GroupID,
			Name:         g.Name,
			TotalGroupSP: int(g.TotalGroupSP),
			Skills:       []types.SkillEntry{},
		})
	}

	for _, s := range skills {
		i, ok := index[s.GroupID]
		if !ok {
			continue
		}
		entry := types.SkillEntry{Name: s.Name}
		if s.Rank != nil {
			entry.Rank = &types.Rank{Value: *s.Rank}
		}
		if s.Level != nil && s.Points != nil {
			entry.Skill = &types.TrainedSkill{
				TrainedSkillLevel:  *s.Level,
				SkillpointsInSkill: int(*s.Points),
			}
		}
		dataset[i].Skills = append(dataset[i].Skills, entry)
	}

	return dataset
}
