package calendar

import (
	"fmt"
	"time"

	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

// Event is a timed record for a day-timeline view. End is always
// Start + duration, so the event covers the half-open interval
// [Start, End).
type Event struct {
	ID    int64     `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title"`
}

// TimelineEvents maps shifts to timed events anchored to the target date.
// The stored date of each shift is deliberately ignored: even a
// mis-filtered input produces events on the requested day, never on a
// neighboring one.
func TimelineEvents(target string, shifts []shift.ShiftWithPatient) ([]Event, error) {
	day, err := time.Parse(DateLayout, target)
	if err != nil {
		return nil, fmt.Errorf("parse timeline date: %w", err)
	}

	events := make([]Event, 0, len(shifts))
	for _, s := range shifts {
		clock, err := time.Parse(TimeLayout, s.StartTime)
		if err != nil {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		events = append(events, Event{
			ID:    s.ID,
			Start: start,
			End:   start.Add(time.Duration(s.Duration) * time.Minute),
			Title: eventTitle(s),
		})
	}
	return events, nil
}

func eventTitle(s shift.ShiftWithPatient) string {
	title := "Shift"
	if s.Patient != nil {
		title = s.Patient.Name + " " + s.Patient.Lastname
	}
	if s.Details != nil && *s.Details != "" {
		title += " - " + *s.Details
	}
	return title
}
