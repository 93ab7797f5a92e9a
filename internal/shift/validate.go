package shift

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/THGoZ/lauch-shifts-sub001/internal/result"
)

var dniPattern = regexp.MustCompile(`^[0-9]{8}$`)

const (
	detailsMin = 10
	detailsMax = 500
	reasonMin  = 4
	reasonMax  = 500
)

type PatientPayload struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	DNI      string `json:"dni"`
}

type CreateShiftPayload struct {
	PatientID        int64   `json:"patient_id"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	Duration         int     `json:"duration"`
	Status           string  `json:"status"`
	ReasonIncomplete *string `json:"reason_incomplete"`
	Details          *string `json:"details"`
}

type UpdateStatusPayload struct {
	Status           string  `json:"status"`
	ReasonIncomplete *string `json:"reason_incomplete"`
}

// ValidatePatient checks a patient payload and returns every violated field,
// not just the first.
func ValidatePatient(p PatientPayload) []result.FieldError {
	var errs []result.FieldError
	if p.Name == "" {
		errs = append(errs, result.FieldError{Field: "name", Message: "name is required"})
	}
	if p.Lastname == "" {
		errs = append(errs, result.FieldError{Field: "lastname", Message: "lastname is required"})
	}
	if !dniPattern.MatchString(p.DNI) {
		errs = append(errs, result.FieldError{Field: "dni", Message: "dni must be exactly 8 digits"})
	}
	return errs
}

// ValidateCreateShift checks a shift-create payload. A zero Duration is not
// a violation; Normalize fills the default afterwards.
func ValidateCreateShift(p CreateShiftPayload) []result.FieldError {
	var errs []result.FieldError
	if p.PatientID <= 0 {
		errs = append(errs, result.FieldError{Field: "patient_id", Message: "patient_id must be a positive integer"})
	}
	if p.Date == "" {
		errs = append(errs, result.FieldError{Field: "date", Message: "date is required"})
	} else if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		errs = append(errs, result.FieldError{Field: "date", Message: "date must be formatted YYYY-MM-DD"})
	}
	if p.StartTime == "" {
		errs = append(errs, result.FieldError{Field: "start_time", Message: "start_time is required"})
	} else if _, err := time.Parse("15:04", p.StartTime); err != nil {
		errs = append(errs, result.FieldError{Field: "start_time", Message: "start_time must be formatted HH:MM"})
	}
	if p.Duration < 0 {
		errs = append(errs, result.FieldError{Field: "duration", Message: "duration must be a positive integer"})
	}
	if p.Status != "" && !Status(p.Status).Valid() {
		errs = append(errs, result.FieldError{Field: "status", Message: "status must be one of pending, confirmed, canceled"})
	}
	if p.Details != nil {
		if n := utf8.RuneCountInString(*p.Details); n < detailsMin || n > detailsMax {
			errs = append(errs, result.FieldError{
				Field:   "details",
				Message: fmt.Sprintf("details must be between %d and %d characters", detailsMin, detailsMax),
			})
		}
	}
	return errs
}

// ValidateStatusUpdate checks a status-update payload. An empty
// reason_incomplete counts as "no reason given" and passes.
func ValidateStatusUpdate(p UpdateStatusPayload) []result.FieldError {
	var errs []result.FieldError
	if !Status(p.Status).Valid() {
		errs = append(errs, result.FieldError{Field: "status", Message: "status must be one of pending, confirmed, canceled"})
	}
	if p.ReasonIncomplete != nil && *p.ReasonIncomplete != "" {
		if n := utf8.RuneCountInString(*p.ReasonIncomplete); n < reasonMin || n > reasonMax {
			errs = append(errs, result.FieldError{
				Field:   "reason_incomplete",
				Message: fmt.Sprintf("reason_incomplete must be between %d and %d characters", reasonMin, reasonMax),
			})
		}
	}
	return errs
}

// Normalize applies defaults to an already validated create payload.
func (p CreateShiftPayload) Normalize() CreateShiftPayload {
	if p.Duration == 0 {
		p.Duration = DefaultDuration
	}
	if p.Status == "" {
		p.Status = string(StatusPending)
	}
	if p.ReasonIncomplete != nil && *p.ReasonIncomplete == "" {
		p.ReasonIncomplete = nil
	}
	return p
}
