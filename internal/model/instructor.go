package model

import "sort"

// InstructorUnknown is the sentinel roster entry entries fall back to when no
// instructor is given. Its id is resolved from the store at startup, never
// hardcoded in handlers.
const InstructorUnknown = "k.A."

type Instructor struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// rosterRank fixes the display order of the instructor roster. The unknown
// sentinel always sorts last.
var rosterRank = map[string]int{
	"Hasieb":          1,
	"Taner":           2,
	"Berat":           3,
	"Sefa":            4,
	"Momo":            5,
	"Tamer":           6,
	"Onur":            7,
	InstructorUnknown: 8,
}

// RosterRank returns the display rank for an instructor name. Names outside
// the roster keep their fetch order behind all ranked names.
func RosterRank(name string) int {
	if r, ok := rosterRank[name]; ok {
		return r
	}
	return len(rosterRank) + 1
}

// SortByRoster orders instructors by the fixed roster rank, in place. The
// sort is stable so unranked names keep their relative order.
func SortByRoster(list []Instructor) {
	sort.SliceStable(list, func(i, j int) bool {
		return RosterRank(list[i].Name) < RosterRank(list[j].Name)
	})
}
