// Package selection holds the group/level selection state and the filter that turns a
// dataset plus a selection into the rows shown in the detail region.
package selection

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Level filter values.
const (
	LevelAll        = -2 // every skill, injected or not
	LevelUninjected = -1 // only skills that have not been injected
	LevelInjected   = 0  // every injected skill regardless of level
)

// AllGroups is the group id meaning "do not filter by group".
const AllGroups = -1

// Unmatched replaces selection values that could not be parsed. It is larger than any
// trained level, so every detail row is filtered out.
const Unmatched = math.MaxInt32

// Query parameter names carrying a selection.
const (
	QueryGroup = "group"
	QueryLevel = "level"
)

// Region identifies one of the independently rendered markup regions.
type Region string

// Stable region identifiers.
const (
	RegionLevelFilter Region = "skillLevelListGroup"
	RegionGroupFilter Region = "skillGroupListGroup"
	RegionDetails     Region = "skillGroupDetails"
)

// AllRegions lists every region in page order.
var AllRegions = []Region{RegionLevelFilter, RegionGroupFilter, RegionDetails}

// ParseRegion maps a region identifier back to a Region.
func ParseRegion(s string) (Region, bool) {
	for _, r := range AllRegions {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Selection is the user's current group and level filter. It is a value: transitions
// return a new Selection and never modify the receiver.
type Selection struct {
	GroupID int `json:"group_id"`
	Level   int `json:"level"`
}

// Default returns the initial selection: all groups, injected skills only.
func Default() Selection {
	return Selection{GroupID: AllGroups, Level: LevelInjected}
}

// SelectGroup returns the selection with a new group and the regions that must be redrawn.
func (s Selection) SelectGroup(id int) (Selection, []Region) {
	s.GroupID = id
	return s, []Region{RegionGroupFilter, RegionDetails}
}

// SelectLevel returns the selection with a new level filter and the regions that must be redrawn.
func (s Selection) SelectLevel(level int) (Selection, []Region) {
	s.Level = level
	return s, []Region{RegionLevelFilter, RegionDetails}
}

// ParseValue parses an event value such as a data-id or data-level attribute.
// Anything that is not an integer becomes Unmatched.
func ParseValue(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Unmatched
	}
	return v
}

// FromQuery reads a selection from query parameters. Missing parameters keep their
// default; malformed ones become Unmatched.
func FromQuery(q url.Values) Selection {
	s := Default()
	if q.Has(QueryGroup) {
		s.GroupID = ParseValue(q.Get(QueryGroup))
	}
	if q.Has(QueryLevel) {
		s.Level = ParseValue(q.Get(QueryLevel))
	}
	return s
}

// Query encodes the selection as query parameters.
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set(QueryGroup, strconv.Itoa(s.GroupID))
	q.Set(QueryLevel, strconv.Itoa(s.Level))
	return q
}
