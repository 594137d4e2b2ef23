// Package skills provides the counts and sums shown for a skill group.
package skills

import "github.com/jonathan/skillboard/internal/types"

// PointsPerRank is the number of skill points needed to train one rank of a skill to level V.
const PointsPerRank = 256000

// Summary holds every aggregate shown for a group, computed in one pass.
type Summary struct {
	SkillCount        int `json:"skill_count"`
	InjectedCount     int `json:"injected_count"`
	Level5Count       int `json:"level5_count"`
	Level5TotalPoints int `json:"level5_total_points"`
	TotalGroupSP      int `json:"total_group_sp"`
}

// InjectedCount returns how many skills in the group have been injected.
func InjectedCount(group types.SkillGroup) int {
	n := 0
	for _, entry := range group.Skills {
		if entry.IsInjected() {
			n++
		}
	}
	return n
}

// Level5Count returns how many injected skills are trained to level V.
func Level5Count(group types.SkillGroup) int {
	n := 0
	for _, entry := range group.Skills {
		if trained, ok := entry.Injected(); ok && trained.TrainedSkillLevel == types.MaxTrainedLevel {
			n++
		}
	}
	return n
}

// Level5TotalPoints sums the skill points of the injected skills trained to level V.
func Level5TotalPoints(group types.SkillGroup) int {
	total := 0
	for _, entry := range group.Skills {
		if trained, ok := entry.Injected(); ok && trained.TrainedSkillLevel == types.MaxTrainedLevel {
			total += trained.SkillpointsInSkill
		}
	}
	return total
}

// PotentialPoints returns the points needed to max a skill of the given rank.
func PotentialPoints(rank int) int {
	return rank * PointsPerRank
}

// Summarize computes all group aggregates at once.
func Summarize(group types.SkillGroup) Summary {
	s := Summary{
		SkillCount:   len(group.Skills),
		TotalGroupSP: group.TotalGroupSP,
	}
	for _, entry := range group.Skills {
		trained, ok := entry.Injected()
		if !ok {
			continue
		}
		s.InjectedCount++
		if trained.TrainedSkillLevel == types.MaxTrainedLevel {
			s.Level5Count++
			s.Level5TotalPoints += trained.SkillpointsInSkill
		}
	}
	return s
}
