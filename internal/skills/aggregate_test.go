package skills

import (
	"testing"

	"github.com/jonathan/skillboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func injected(name string, level, points int) types.SkillEntry {
	return types.SkillEntry{
		Name:  name,
		Skill: &types.TrainedSkill{TrainedSkillLevel: level, SkillpointsInSkill: points},
	}
}

func exampleGroup() types.SkillGroup {
	return types.SkillGroup{
		ID:           1,
		Name:         "Gunnery",
		TotalGroupSP: 500000,
		Skills: []types.SkillEntry{
			injected("A", 5, 256000),
			{Name: "B"},
		},
	}
}

func TestAggregates_Example(t *testing.T) {
	g := exampleGroup()

	assert.Equal(t, 1, InjectedCount(g))
	assert.Equal(t, 1, Level5Count(g))
	assert.Equal(t, 256000, Level5TotalPoints(g))
}

func TestAggregates_EmptyGroup(t *testing.T) {
	g := types.SkillGroup{ID: 3, Name: "Empty"}

	assert.Equal(t, 0, InjectedCount(g))
	assert.Equal(t, 0, Level5Count(g))
	assert.Equal(t, 0, Level5TotalPoints(g))
	assert.Equal(t, Summary{}, Summarize(g))
}

func TestAggregates_MixedLevels(t *testing.T) {
	g := types.SkillGroup{
		ID:   2,
		Name: "Drones",
		Skills: []types.SkillEntry{
			injected("Drones", 5, 256000),
			injected("Light Drone Operation", 5, 256000),
			injected("Heavy Drone Operation", 4, 271530),
			injected("Drone Interfacing", 0, 0),
			{Name: "Fighters", Rank: &types.Rank{Value: 12}},
		},
	}

	assert.Equal(t, 4, InjectedCount(g))
	assert.Equal(t, 2, Level5Count(g))
	assert.Equal(t, 512000, Level5TotalPoints(g))
}

func TestAggregates_Invariants(t *testing.T) {
	groups := []types.SkillGroup{
		exampleGroup(),
		{ID: 4, Name: "None injected", Skills: []types.SkillEntry{{Name: "X"}, {Name: "Y"}}},
		{ID: 5, Name: "All level V", Skills: []types.SkillEntry{injected("X", 5, 1), injected("Y", 5, 2)}},
		{ID: 6, Name: "Empty"},
	}

	for _, g := range groups {
		t.Run(g.Name, func(t *testing.T) {
			assert.LessOrEqual(t, InjectedCount(g), len(g.Skills))
			assert.LessOrEqual(t, Level5Count(g), InjectedCount(g))
		})
	}
}

func TestPotentialPoints(t *testing.T) {
	tests := []struct {
		rank int
		want int
	}{
		{rank: 0, want: 0},
		{rank: 1, want: 256000},
		{rank: 4, want: 1024000},
		{rank: 16, want: 4096000},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, PotentialPoints(tc.rank), "rank %d", tc.rank)
		assert.Equal(t, tc.rank*PointsPerRank, PotentialPoints(tc.rank))
	}
}

func TestSummarize_MatchesIndividualAggregates(t *testing.T) {
	g := exampleGroup()

	s := Summarize(g)
	assert.Equal(t, Summary{
		SkillCount:        2,
		InjectedCount:     InjectedCount(g),
		Level5Count:       Level5Count(g),
		Level5TotalPoints: Level5TotalPoints(g),
		TotalGroupSP:      500000,
	}, s)
}
