package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

func TestTimelineEvents_AnchorsToTargetDate(t *testing.T) {
	// The shift is stored on 05-09 but the timeline is asked for 05-10:
	// the event must land on the requested day.
	stored := sw(1, "2024-05-09", "09:00", shift.StatusPending)
	stored.Duration = 30

	events, err := TimelineEvents("2024-05-10", []shift.ShiftWithPatient{stored})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC), events[0].End)
}

func TestTimelineEvents_EndIsStartPlusDuration(t *testing.T) {
	s := sw(2, "2024-05-10", "14:15", shift.StatusConfirmed)
	s.Duration = 45

	events, err := TimelineEvents("2024-05-10", []shift.ShiftWithPatient{s})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 45*time.Minute, events[0].End.Sub(events[0].Start))
}

func TestTimelineEvents_TitleFromPatientAndDetails(t *testing.T) {
	details := "follow-up consultation"
	s := sw(3, "2024-05-10", "10:00", shift.StatusPending)
	s.Details = &details
	s.Patient = &shift.Patient{Name: "Ana", Lastname: "Gomez"}

	events, err := TimelineEvents("2024-05-10", []shift.ShiftWithPatient{s})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Ana Gomez - follow-up consultation", events[0].Title)
}

func TestTimelineEvents_MissingPatientFallsBack(t *testing.T) {
	events, err := TimelineEvents("2024-05-10", []shift.ShiftWithPatient{
		sw(4, "2024-05-10", "10:00", shift.StatusPending),
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Shift", events[0].Title)
}

func TestTimelineEvents_BadTargetDate(t *testing.T) {
	_, err := TimelineEvents("not-a-date", nil)
	assert.Error(t, err)
}

func TestTimelineEvents_SkipsUnparseableStartTime(t *testing.T) {
	bad := sw(5, "2024-05-10", "late morning", shift.StatusPending)
	good := sw(6, "2024-05-10", "11:00", shift.StatusPending)

	events, err := TimelineEvents("2024-05-10", []shift.ShiftWithPatient{bad, good})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(6), events[0].ID)
}
