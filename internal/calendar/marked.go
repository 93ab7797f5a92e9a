package calendar

import "github.com/THGoZ/lauch-shifts-sub001/internal/shift"

// Dot is one status marker on a month-view date.
type Dot struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// DayMark decorates a date on the month view.
type DayMark struct {
	Marked bool  `json:"marked"`
	Dots   []Dot `json:"dots,omitempty"`
}

var statusColors = map[shift.Status]string{
	shift.StatusPending:   "#f0ad4e",
	shift.StatusConfirmed: "#5cb85c",
	shift.StatusCanceled:  "#d9534f",
}

// dotOrder keeps marker output deterministic regardless of input order.
var dotOrder = []shift.Status{shift.StatusPending, shift.StatusConfirmed, shift.StatusCanceled}

// MarkedDates maps every distinct date in the collection to its decoration:
// marked, with one dot per status present on that date. The key set equals
// exactly the set of dates present.
func MarkedDates(shifts []shift.ShiftWithPatient) map[string]DayMark {
	present := make(map[string]map[shift.Status]bool, len(shifts))
	for _, s := range shifts {
		if present[s.Date] == nil {
			present[s.Date] = make(map[shift.Status]bool, 3)
		}
		present[s.Date][s.Status] = true
	}

	marked := make(map[string]DayMark, len(present))
	for date, statuses := range present {
		mark := DayMark{Marked: true}
		for _, st := range dotOrder {
			if statuses[st] {
				mark.Dots = append(mark.Dots, Dot{Key: string(st), Color: statusColors[st]})
			}
		}
		marked[date] = mark
	}
	return marked
}
