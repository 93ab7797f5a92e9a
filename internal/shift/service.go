package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	redisclient "github.com/THGoZ/lauch-shifts-sub001/internal/redis"
	"github.com/THGoZ/lauch-shifts-sub001/internal/result"
	"github.com/THGoZ/lauch-shifts-sub001/internal/storeerr"
)

var (
	ErrSlotTaken               = errors.New("a shift is already booked at that date and time")
	ErrSlotBeingBooked         = errors.New("slot is currently being booked, please retry")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

const sweepReason = "missed"

type Service struct {
	repo   Repository
	locker redisclient.Locker
}

func NewService(repo Repository, locker redisclient.Locker) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
	}
}

// storeFail translates a storage error into an envelope: field errors when
// the message matches a known constraint pattern, a generic failure with the
// original message otherwise.
func storeFail[T any](message string, err error) result.Of[T] {
	if fields := storeerr.Translate(err); len(fields) > 0 {
		return result.FailFields[T](message, fields)
	}
	return result.Fail[T](message, storeerr.Message(err))
}

// CreatePatient validates the payload and inserts the patient. A dni
// uniqueness violation comes back as a field error on dni.
func (s *Service) CreatePatient(ctx context.Context, payload PatientPayload) result.Of[*Patient] {
	if fields := ValidatePatient(payload); len(fields) > 0 {
		return result.FailFields[*Patient]("invalid patient", fields)
	}

	created, err := s.repo.CreatePatient(ctx, Patient{
		Name:     payload.Name,
		Lastname: payload.Lastname,
		DNI:      payload.DNI,
	})
	if err != nil {
		return storeFail[*Patient]("could not create patient", err)
	}

	log.Info().Int64("patient_id", created.ID).Msg("patient created")
	return result.OkMsg(created, "patient created")
}

// GetPatient short-circuits on a missing id: that is a caller bug, not a
// storage failure, so no lookup happens.
func (s *Service) GetPatient(ctx context.Context, id int64) result.Of[*Patient] {
	if id <= 0 {
		return result.FailCode[*Patient](result.CodeInvalid, "no patient id provided", "missing id")
	}

	p, err := s.repo.GetPatientByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return result.FailCode[*Patient](result.CodeNotFound, "patient not found", err.Error())
		}
		return storeFail[*Patient]("could not load patient", err)
	}
	return result.Ok(p)
}

func (s *Service) ListPatients(ctx context.Context) result.Of[[]Patient] {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return storeFail[[]Patient]("could not list patients", err)
	}
	return result.Ok(patients)
}

func (s *Service) DeletePatient(ctx context.Context, id int64) result.Of[bool] {
	if id <= 0 {
		return result.FailCode[bool](result.CodeInvalid, "no patient id provided", "missing id")
	}

	if err := s.repo.SoftDeletePatient(ctx, id); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return result.FailCode[bool](result.CodeNotFound, "patient not found", err.Error())
		}
		return storeFail[bool]("could not delete patient", err)
	}

	log.Info().Int64("patient_id", id).Msg("patient deleted")
	return result.OkMsg(true, "patient deleted")
}

// CreateShift validates the payload, then books the slot under the booking
// lock so two concurrent requests for the same date+start_time cannot both
// insert an active shift.
func (s *Service) CreateShift(ctx context.Context, payload CreateShiftPayload) result.Of[*Shift] {
	if fields := ValidateCreateShift(payload); len(fields) > 0 {
		return result.FailFields[*Shift]("invalid shift", fields)
	}
	payload = payload.Normalize()

	var created *Shift

	err := s.locker.WithBookingLock(ctx, payload.Date, payload.StartTime, func(lockCtx context.Context) error {
		// Re-check inside the critical section
		existing, err := s.repo.GetActiveShiftAt(lockCtx, payload.Date, payload.StartTime)
		if err != nil && !errors.Is(err, ErrShiftNotFound) {
			return fmt.Errorf("check existing shift: %w", err)
		}
		if existing != nil {
			return ErrSlotTaken
		}

		created, err = s.repo.CreateShift(lockCtx, Shift{
			PatientID:        payload.PatientID,
			Date:             payload.Date,
			StartTime:        payload.StartTime,
			Duration:         payload.Duration,
			Status:           Status(payload.Status),
			ReasonIncomplete: payload.ReasonIncomplete,
			Details:          payload.Details,
		})
		if err != nil {
			return fmt.Errorf("create shift: %w", err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, redisclient.ErrLockNotAcquired):
			return result.FailCode[*Shift](result.CodeConflict, "slot is being booked", ErrSlotBeingBooked.Error())
		case errors.Is(err, ErrSlotTaken):
			return result.FailCode[*Shift](result.CodeConflict, "slot already taken", err.Error())
		default:
			return storeFail[*Shift]("could not create shift", err)
		}
	}

	log.Info().
		Int64("shift_id", created.ID).
		Str("date", created.Date).
		Str("start_time", created.StartTime).
		Msg("shift created")
	return result.OkMsg(created, "shift created")
}

func (s *Service) GetShift(ctx context.Context, id int64) result.Of[*Shift] {
	if id <= 0 {
		return result.FailCode[*Shift](result.CodeInvalid, "no shift id provided", "missing id")
	}

	sh, err := s.repo.GetShiftByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return result.FailCode[*Shift](result.CodeNotFound, "shift not found", err.Error())
		}
		return storeFail[*Shift]("could not load shift", err)
	}
	return result.Ok(sh)
}

// UpdateShiftStatus moves a shift through the status machine. Re-opening a
// canceled shift marks it reprogramed.
func (s *Service) UpdateShiftStatus(ctx context.Context, id int64, payload UpdateStatusPayload) result.Of[*Shift] {
	if id <= 0 {
		return result.FailCode[*Shift](result.CodeInvalid, "no shift id provided", "missing id")
	}
	if fields := ValidateStatusUpdate(payload); len(fields) > 0 {
		return result.FailFields[*Shift]("invalid status update", fields)
	}

	current, err := s.repo.GetShiftByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return result.FailCode[*Shift](result.CodeNotFound, "shift not found", err.Error())
		}
		return storeFail[*Shift]("could not load shift", err)
	}

	to := Status(payload.Status)
	if !CanTransition(current.Status, to) {
		return result.FailCode[*Shift](
			result.CodeConflict,
			fmt.Sprintf("cannot move shift from %s to %s", current.Status, to),
			ErrInvalidStatusTransition.Error(),
		)
	}

	reason := payload.ReasonIncomplete
	if reason != nil && *reason == "" {
		reason = nil
	}
	reprogramed := current.Status == StatusCanceled && to == StatusPending

	updated, err := s.repo.UpdateShiftStatus(ctx, id, current.Status, to, reason, reprogramed)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			// Status moved between the read and the guarded update
			return result.FailCode[*Shift](result.CodeConflict, "shift status changed concurrently, please retry", ErrInvalidStatusTransition.Error())
		}
		return storeFail[*Shift]("could not update shift status", err)
	}

	log.Info().
		Int64("shift_id", updated.ID).
		Str("from", string(current.Status)).
		Str("to", string(updated.Status)).
		Msg("shift status updated")
	return result.OkMsg(updated, "status updated")
}

func (s *Service) DeleteShift(ctx context.Context, id int64) result.Of[bool] {
	if id <= 0 {
		return result.FailCode[bool](result.CodeInvalid, "no shift id provided", "missing id")
	}

	if err := s.repo.SoftDeleteShift(ctx, id); err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return result.FailCode[bool](result.CodeNotFound, "shift not found", err.Error())
		}
		return storeFail[bool]("could not delete shift", err)
	}

	log.Info().Int64("shift_id", id).Msg("shift deleted")
	return result.OkMsg(true, "shift deleted")
}

func (s *Service) ListShifts(ctx context.Context) result.Of[[]ShiftWithPatient] {
	shifts, err := s.repo.ListShiftsWithPatients(ctx)
	if err != nil {
		return storeFail[[]ShiftWithPatient]("could not list shifts", err)
	}
	return result.Ok(shifts)
}

func (s *Service) ListShiftsByPatient(ctx context.Context, patientID int64) result.Of[[]ShiftWithPatient] {
	if patientID <= 0 {
		return result.FailCode[[]ShiftWithPatient](result.CodeInvalid, "no patient id provided", "missing id")
	}

	shifts, err := s.repo.ListShiftsByPatient(ctx, patientID)
	if err != nil {
		return storeFail[[]ShiftWithPatient]("could not list shifts", err)
	}
	return result.Ok(shifts)
}

func (s *Service) ListAvailability(ctx context.Context) result.Of[[]Availability] {
	availability, err := s.repo.ListAvailability(ctx)
	if err != nil {
		return storeFail[[]Availability]("could not list availability", err)
	}
	return result.Ok(availability)
}

// SweepMissedShifts cancels pending shifts whose date has passed, recording
// why they went unattended. Intended to be called by the worker
// periodically.
func (s *Service) SweepMissedShifts(ctx context.Context, now time.Time) result.Of[int] {
	today := now.Format("2006-01-02")

	missed, err := s.repo.FindMissedPending(ctx, today)
	if err != nil {
		return storeFail[int]("could not find missed shifts", err)
	}

	reason := sweepReason
	swept := 0
	for _, sh := range missed {
		_, err := s.repo.UpdateShiftStatus(ctx, sh.ID, StatusPending, StatusCanceled, &reason, false)
		if err != nil {
			// ErrShiftNotFound here means the status moved between the
			// query and the guarded update; either way nothing was swept.
			if !errors.Is(err, ErrShiftNotFound) {
				log.Error().Err(err).Int64("shift_id", sh.ID).Msg("failed to sweep shift")
			}
			continue
		}
		swept++
	}

	if swept > 0 {
		log.Info().Int("swept", swept).Msg("missed shifts canceled")
	}
	return result.Ok(swept)
}
