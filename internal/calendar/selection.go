package calendar

import "time"

// Selection holds the two independent cursors a calendar UI reads: the
// selected date and the selected month. It derives nothing itself; callers
// feed the cursors into the projections above.
type Selection struct {
	date  string
	month string
}

// NewSelection starts both cursors at the given instant's date.
func NewSelection(now time.Time) *Selection {
	today := now.Format(DateLayout)
	return &Selection{date: today, month: today}
}

func (s *Selection) Date() string  { return s.date }
func (s *Selection) Month() string { return s.month }

func (s *Selection) SetDate(date string)   { s.date = date }
func (s *Selection) SetMonth(month string) { s.month = month }
