// Package rendering turns skill datasets and selections into HTML regions and pages.
package rendering

import (
	"fmt"

	"github.com/jonathan/skillboard/internal/selection"
	"github.com/jonathan/skillboard/internal/skills"
	"github.com/jonathan/skillboard/internal/types"
)

// FilterItem is one clickable entry of the level or group filter list.
type FilterItem struct {
	Value  int    `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	// Href applies the item's selection on top of the current one.
	Href string `json:"href"`
	// Counts is set for group items only.
	Counts *skills.Summary `json:"counts,omitempty"`
}

// levelLabels lists the fixed level filter entries ahead of the per-level ones.
var levelLabels = []struct {
	value int
	label string
}{
	{selection.LevelAll, "All Skills"},
	{selection.LevelUninjected, "All Uninjected/Untrained Skills"},
	{selection.LevelInjected, "All Injected Skills"},
}

// LevelFilter builds the level filter list for the current selection.
func LevelFilter(sel selection.Selection) []FilterItem {
	items := make([]FilterItem, 0, len(levelLabels)+types.MaxTrainedLevel)
	add := func(value int, label string) {
		next, _ := sel.SelectLevel(value)
		items = append(items, FilterItem{
			Value:  value,
			Label:  label,
			Active: sel.Level == value,
			Href:   "?" + next.Query().Encode(),
		})
	}

	for _, l := range levelLabels {
		add(l.value, l.label)
	}
	for level := 1; level <= types.MaxTrainedLevel; level++ {
		add(level, fmt.Sprintf("Skill Trained Level %d", level))
	}
	return items
}

// GroupFilter builds the group filter list: an "All" entry followed by every group in
// dataset order with its injected count and total points.
func GroupFilter(dataset types.Dataset, sel selection.Selection) []FilterItem {
	items := make([]FilterItem, 0, len(dataset)+1)

	all, _ := sel.SelectGroup(selection.AllGroups)
	items = append(items, FilterItem{
		Value:  selection.AllGroups,
		Label:  "All",
		Active: sel.GroupID == selection.AllGroups,
		Href:   "?" + all.Query().Encode(),
	})

	for _, group := range dataset {
		next, _ := sel.SelectGroup(group.ID)
		summary := skills.Summarize(group)
		items = append(items, FilterItem{
			Value:  group.ID,
			Label:  group.Name,
			Active: sel.GroupID == group.ID,
			Href:   "?" + next.Query().Encode(),
			Counts: &summary,
		})
	}
	return items
}
