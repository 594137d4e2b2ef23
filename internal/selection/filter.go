package selection

import (
	"github.com/jonathan/skillboard/internal/skills"
	"github.com/jonathan/skillboard/internal/types"
	"go.uber.org/zap"
)

// Row is one skill line in a group's detail card.
type Row struct {
	Name      string `json:"name"`
	Injected  bool   `json:"injected"`
	Rank      int    `json:"rank"`
	Level     int    `json:"level"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
	// Cells is the five-cell level indicator, true for trained levels. Nil when not injected.
	Cells []bool `json:"cells,omitempty"`
}

// GroupDetail is a group card: the group, its aggregates and the rows that survived the filter.
type GroupDetail struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	Summary skills.Summary `json:"summary"`
	Rows    []Row          `json:"rows"`
}

// Matches reports whether a skill entry passes the level filter.
func Matches(entry types.SkillEntry, level int) bool {
	trained, injected := entry.Injected()
	if level == LevelUninjected && injected {
		return false
	}
	if !injected && level >= LevelInjected {
		return false
	}
	if injected && level > LevelInjected && level != trained.TrainedSkillLevel {
		return false
	}
	return true
}

// includesGroup reports whether a group passes the group filter. Ids of 0 or below never filter.
func (s Selection) includesGroup(id int) bool {
	return s.GroupID <= 0 || s.GroupID == id
}

// Details filters the dataset by the selection. Groups and skills keep dataset order and
// groups left without rows are dropped. The dataset is not modified.
func Details(dataset types.Dataset, sel Selection, logger *zap.Logger) []GroupDetail {
	if logger == nil {
		logger = zap.NewNop()
	}

	details := make([]GroupDetail, 0, len(dataset))
	for _, group := range dataset {
		if !sel.includesGroup(group.ID) {
			continue
		}

		rows := make([]Row, 0, len(group.Skills))
		for _, entry := range group.Skills {
			if !Matches(entry, sel.Level) {
				continue
			}
			rows = append(rows, newRow(entry))
		}

		if len(rows) == 0 {
			logger.Debug("no skills left in group after filtering",
				zap.Int("group_id", group.ID),
				zap.Int("level", sel.Level))
			continue
		}

		details = append(details, GroupDetail{
			ID:      group.ID,
			Name:    group.Name,
			Summary: skills.Summarize(group),
			Rows:    rows,
		})
	}
	return details
}

func newRow(entry types.SkillEntry) Row {
	rank := entry.RankValue()
	row := Row{
		Name:      entry.Name,
		Rank:      rank,
		MaxPoints: skills.PotentialPoints(rank),
	}

	trained, ok := entry.Injected()
	if !ok {
		return row
	}

	row.Injected = true
	row.Level = trained.TrainedSkillLevel
	row.Points = trained.SkillpointsInSkill
	row.Cells = make([]bool, types.MaxTrainedLevel)
	for i := range row.Cells {
		row.Cells[i] = i < trained.TrainedSkillLevel
	}
	return row
}

// RowCount returns the total number of rows across the details.
func RowCount(details []GroupDetail) int {
	n := 0
	for _, d := range details {
		n += len(d.Rows)
	}
	return n
}
