package shift

import (
	"context"
	"errors"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrShiftNotFound   = errors.New("shift not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	CreatePatient(ctx context.Context, p Patient) (*Patient, error)
	GetPatientByID(ctx context.Context, id int64) (*Patient, error)
	ListPatients(ctx context.Context) ([]Patient, error)
	SoftDeletePatient(ctx context.Context, id int64) error

	CreateShift(ctx context.Context, s Shift) (*Shift, error)
	GetShiftByID(ctx context.Context, id int64) (*Shift, error)

	// For conflict checks inside the booking lock
	GetActiveShiftAt(ctx context.Context, date, startTime string) (*Shift, error)

	UpdateShiftStatus(ctx context.Context, id int64, from, to Status, reason *string, reprogramed bool) (*Shift, error)
	SoftDeleteShift(ctx context.Context, id int64) error

	// Read models for the calendar derivations
	ListShiftsWithPatients(ctx context.Context) ([]ShiftWithPatient, error)
	ListShiftsByPatient(ctx context.Context, patientID int64) ([]ShiftWithPatient, error)

	// Sweep worker
	FindMissedPending(ctx context.Context, before string) ([]Shift, error)

	ListAvailability(ctx context.Context) ([]Availability, error)
}
