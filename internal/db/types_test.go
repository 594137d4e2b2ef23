package db

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/skillboard/internal/types"
)

func sampleDataset() types.Dataset {
	return types.Dataset{
		{
			ID:           255,
			Name:         "Gunnery",
			TotalGroupSP: 256000,
			Skills: []types.SkillEntry{
				{Name: "Gunnery", Rank: &types.Rank{Value: 1}, Skill: &types.TrainedSkill{TrainedSkillLevel: 5, SkillpointsInSkill: 256000}},
				{Name: "Capital Energy Turret", Rank: &types.Rank{Value: 7}},
				{Name: "Unranked"},
			},
		},
		{ID: 0, Name: "Empty", Skills: []types.SkillEntry{}},
	}
}

func TestFlattenDataset(t *testing.T) {
	groups, skills := flattenDataset(sampleDataset())

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[1].Position != 1 || groups[1].GroupID != 0 {
		t.Errorf("groups[1] = %+v, want position 1 and id 0", groups[1])
	}
	if len(skills) != 3 {
		t.Fatalf("len(skills) = %d, want 3", len(skills))
	}

	trained := skills[0]
	if trained.Level == nil || *trained.Level != 5 || trained.Points == nil || *trained.Points != 256000 {
		t.Errorf("trained skill record = %+v", trained)
	}

	uninjected := skills[1]
	if uninjected.Level != nil || uninjected.Points != nil {
		t.Errorf("uninjected skill should have no level or points: %+v", uninjected)
	}
	if uninjected.Rank == nil || *uninjected.Rank != 7 {
		t.Errorf("uninjected rank = %v, want 7", uninjected.Rank)
	}
	if skills[2].Rank != nil {
		t.Errorf("unranked skill should have nil rank")
	}
	if skills[2].Position != 2 {
		t.Errorf("skills[2].Position = %d, want 2", skills[2].Position)
	}
}

func TestAssembleDataset_RoundTrip(t *testing.T) {
	original := sampleDataset()

	groups, skills := flattenDataset(original)
	rebuilt := assembleDataset(groups, skills)

	if diff := cmp.Diff(original, rebuilt); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleDataset_DropsOrphanSkills(t *testing.T) {
	groups := []groupRecord{{GroupID: 1, Name: "A"}}
	skills := []skillRecord{
		{GroupID: 1, Name: "kept"},
		{GroupID: 99, Name: "orphan"},
	}

	dataset := assembleDataset(groups, skills)

	if len(dataset) != 1 || len(dataset[0].Skills) != 1 {
		t.Fatalf("unexpected dataset: %+v", dataset)
	}
	if dataset[0].Skills[0].Name != "kept" {
		t.Errorf("kept skill name = %q", dataset[0].Skills[0].Name)
	}
}

func TestAssembleDataset_PartialTrainingIsUninjected(t *testing.T) {
	level := 3
	groups := []groupRecord{{GroupID: 1, Name: "A"}}
	skills := []skillRecord{{GroupID: 1, Name: "half", Level: &level}}

	dataset := assembleDataset(groups, skills)

	if dataset[0].Skills[0].IsInjected() {
		t.Errorf("skill without points should not be injected")
	}
}

func TestAssembleDataset_Empty(t *testing.T) {
	dataset := assembleDataset(nil, nil)
	if dataset == nil || len(dataset) != 0 {
		t.Errorf("expected empty non-nil dataset, got %#v", dataset)
	}
}
