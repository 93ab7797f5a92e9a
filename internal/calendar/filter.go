package calendar

import "github.com/THGoZ/lauch-shifts-sub001/internal/shift"

// StatusFilter selects shifts by status. The zero value (All unset, no
// concrete status) is not meaningful; construct with ByStatus or All.
type StatusFilter struct {
	status shift.Status
	all    bool
}

// All matches every shift.
var All = StatusFilter{all: true}

// ByStatus matches shifts with exactly the given status.
func ByStatus(s shift.Status) StatusFilter {
	return StatusFilter{status: s}
}

// ParseFilter maps a query value to a filter; the empty string and "All"
// (any case of its first letter) mean the wildcard.
func ParseFilter(raw string) (StatusFilter, bool) {
	switch raw {
	case "", "all", "All":
		return All, true
	}
	s := shift.Status(raw)
	if !s.Valid() {
		return StatusFilter{}, false
	}
	return ByStatus(s), true
}

func (f StatusFilter) Matches(s shift.Status) bool {
	return f.all || f.status == s
}

// Filter returns the subset matching f, preserving input order. The
// wildcard returns the input slice unchanged.
func Filter(f StatusFilter, shifts []shift.ShiftWithPatient) []shift.ShiftWithPatient {
	if f.all {
		return shifts
	}
	var out []shift.ShiftWithPatient
	for _, s := range shifts {
		if f.Matches(s.Status) {
			out = append(out, s)
		}
	}
	return out
}
