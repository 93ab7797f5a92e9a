// Package calendar derives calendar-ready projections from flat shift
// collections. Every function here is pure: no storage access, no shared
// state, safe to recompute on every input change.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Section groups one date's shifts under a formatted heading, sorted by
// start_time ascending.
type Section struct {
	Title string                   `json:"title"`
	Data  []shift.ShiftWithPatient `json:"data"`
}

// WeekOf returns the seven dates of the ISO week (Monday start) containing
// the given date.
func WeekOf(date string) ([]string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse week date: %w", err)
	}

	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := t.AddDate(0, 0, -offset)

	week := make([]string, 7)
	for i := range week {
		week[i] = monday.AddDate(0, 0, i).Format(DateLayout)
	}
	return week, nil
}

// Agenda projects a flat shift collection onto a target week. Only dates
// with at least one shift produce a section; sections follow week order and
// each section's data is sorted by start_time, ties keeping input order.
func Agenda(shifts []shift.ShiftWithPatient, week []string) []Section {
	byDate := make(map[string][]shift.ShiftWithPatient, len(week))
	for _, s := range shifts {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	var sections []Section
	for _, date := range week {
		day := byDate[date]
		if len(day) == 0 {
			continue
		}
		data := make([]shift.ShiftWithPatient, len(day))
		copy(data, day)
		sort.SliceStable(data, func(i, j int) bool {
			return data[i].StartTime < data[j].StartTime
		})
		sections = append(sections, Section{Title: sectionTitle(date), Data: data})
	}
	return sections
}

func sectionTitle(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, 02 Jan 2006")
}
