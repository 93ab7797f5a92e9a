package shift

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// DefaultDuration is applied when a create payload omits duration.
const DefaultDuration = 60

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

type Patient struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Lastname  string     `json:"lastname"`
	DNI       string     `json:"dni"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Shift is one booked appointment. Date is "2006-01-02", StartTime "15:04",
// Duration is minutes. Together they define the half-open interval
// [start, start+duration) the calendar package projects.
type Shift struct {
	ID               int64      `json:"id"`
	PatientID        int64      `json:"patient_id"`
	Date             string     `json:"date"`
	StartTime        string     `json:"start_time"`
	Duration         int        `json:"duration"`
	Status           Status     `json:"status"`
	ReasonIncomplete *string    `json:"reason_incomplete,omitempty"`
	Details          *string    `json:"details,omitempty"`
	Reprogramed      bool       `json:"reprogramed"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// AvailableDay marks a weekday the practice operates. Day holds the weekday
// name and is unique per row.
type AvailableDay struct {
	ID  int64  `json:"id"`
	Day string `json:"day"`
}

// AvailableTime is one open interval within an AvailableDay.
type AvailableTime struct {
	ID        int64  `json:"id"`
	DayID     int64  `json:"day_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Availability is the read model the API exposes: each operating weekday
// with its open intervals.
type Availability struct {
	Day   AvailableDay    `json:"day"`
	Times []AvailableTime `json:"times"`
}

// ShiftWithPatient is the read-model join the calendar derivations consume.
// Patient is nil when the joined patient row was soft-deleted.
type ShiftWithPatient struct {
	Shift
	Patient *Patient `json:"patient,omitempty"`
}
