package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/THGoZ/lauch-shifts-sub001/internal/redis"
	"github.com/THGoZ/lauch-shifts-sub001/internal/result"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	patients map[int64]*Patient
	shifts   map[int64]*Shift
	nextID   int64

	createPatientErr error
	createShiftErr   error

	// staleMissed is returned by FindMissedPending on top of the live
	// rows, standing in for a snapshot that lags a concurrent update.
	staleMissed []Shift
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patients: make(map[int64]*Patient),
		shifts:   make(map[int64]*Shift),
		nextID:   1,
	}
}

func (f *fakeRepo) CreatePatient(_ context.Context, p Patient) (*Patient, error) {
	if f.createPatientErr != nil {
		return nil, f.createPatientErr
	}
	p.ID = f.nextID
	f.nextID++
	f.patients[p.ID] = &p
	return &p, nil
}

func (f *fakeRepo) GetPatientByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := f.patients[id]
	if !ok || p.DeletedAt != nil {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

func (f *fakeRepo) ListPatients(_ context.Context) ([]Patient, error) {
	var out []Patient
	for _, p := range f.patients {
		if p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) SoftDeletePatient(_ context.Context, id int64) error {
	p, ok := f.patients[id]
	if !ok || p.DeletedAt != nil {
		return ErrPatientNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (f *fakeRepo) CreateShift(_ context.Context, s Shift) (*Shift, error) {
	if f.createShiftErr != nil {
		return nil, f.createShiftErr
	}
	s.ID = f.nextID
	f.nextID++
	f.shifts[s.ID] = &s
	return &s, nil
}

func (f *fakeRepo) GetShiftByID(_ context.Context, id int64) (*Shift, error) {
	s, ok := f.shifts[id]
	if !ok || s.DeletedAt != nil {
		return nil, ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetActiveShiftAt(_ context.Context, date, startTime string) (*Shift, error) {
	for _, s := range f.shifts {
		if s.DeletedAt == nil && s.Date == date && s.StartTime == startTime && s.Status != StatusCanceled {
			return s, nil
		}
	}
	return nil, ErrShiftNotFound
}

func (f *fakeRepo) UpdateShiftStatus(_ context.Context, id int64, from, to Status, reason *string, reprogramed bool) (*Shift, error) {
	s, ok := f.shifts[id]
	if !ok || s.DeletedAt != nil || s.Status != from {
		return nil, ErrShiftNotFound
	}
	s.Status = to
	if reason != nil {
		s.ReasonIncomplete = reason
	}
	if reprogramed {
		s.Reprogramed = true
	}
	return s, nil
}

func (f *fakeRepo) SoftDeleteShift(_ context.Context, id int64) error {
	s, ok := f.shifts[id]
	if !ok || s.DeletedAt != nil {
		return ErrShiftNotFound
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

func (f *fakeRepo) ListShiftsWithPatients(_ context.Context) ([]ShiftWithPatient, error) {
	var out []ShiftWithPatient
	for _, s := range f.shifts {
		if s.DeletedAt != nil {
			continue
		}
		out = append(out, ShiftWithPatient{Shift: *s, Patient: f.patients[s.PatientID]})
	}
	return out, nil
}

func (f *fakeRepo) ListShiftsByPatient(_ context.Context, patientID int64) ([]ShiftWithPatient, error) {
	var out []ShiftWithPatient
	for _, s := range f.shifts {
		if s.DeletedAt == nil && s.PatientID == patientID {
			out = append(out, ShiftWithPatient{Shift: *s, Patient: f.patients[s.PatientID]})
		}
	}
	return out, nil
}

func (f *fakeRepo) FindMissedPending(_ context.Context, before string) ([]Shift, error) {
	out := append([]Shift{}, f.staleMissed...)
	for _, s := range f.shifts {
		if s.DeletedAt == nil && s.Status == StatusPending && s.Date < before {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAvailability(_ context.Context) ([]Availability, error) {
	return nil, nil
}

// fakeLocker runs the critical section inline, optionally simulating
// contention.
type fakeLocker struct {
	contended bool
	calls     int
	lastKey   string
}

func (l *fakeLocker) WithBookingLock(ctx context.Context, date, startTime string, fn func(ctx context.Context) error) error {
	l.calls++
	l.lastKey = date + " " + startTime
	if l.contended {
		return redisclient.ErrLockNotAcquired
	}
	return fn(ctx)
}

func newTestService() (*Service, *fakeRepo, *fakeLocker) {
	repo := newFakeRepo()
	locker := &fakeLocker{}
	return NewService(repo, locker), repo, locker
}

func TestCreatePatient_Success(t *testing.T) {
	svc, _, _ := newTestService()

	res := svc.CreatePatient(context.Background(), PatientPayload{Name: "Ana", Lastname: "Gomez", DNI: "12345678"})

	require.True(t, res.Success)
	assert.Equal(t, "Ana", res.Result.Name)
	assert.NotZero(t, res.Result.ID)
}

func TestCreatePatient_ValidationFailure(t *testing.T) {
	svc, _, _ := newTestService()

	res := svc.CreatePatient(context.Background(), PatientPayload{DNI: "1234567"})

	require.False(t, res.Success)
	fields, ok := res.Error.([]result.FieldError)
	require.True(t, ok)
	assert.Len(t, fields, 3)
}

func TestCreatePatient_UniqueDNITranslated(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.createPatientErr = errors.New(`duplicate key value violates unique constraint "patients_dni_key"`)

	res := svc.CreatePatient(context.Background(), PatientPayload{Name: "Ana", Lastname: "Gomez", DNI: "12345678"})

	require.False(t, res.Success)
	fields, ok := res.Error.([]result.FieldError)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "dni", fields[0].Field)
}

func TestGetPatient_MissingIDShortCircuits(t *testing.T) {
	svc, _, _ := newTestService()

	res := svc.GetPatient(context.Background(), 0)

	assert.False(t, res.Success)
	assert.Nil(t, res.Result)
}

func TestCreateShift_Success(t *testing.T) {
	svc, _, locker := newTestService()

	res := svc.CreateShift(context.Background(), CreateShiftPayload{
		PatientID: 1,
		Date:      "2024-05-10",
		StartTime: "09:00",
	})

	require.True(t, res.Success)
	assert.Equal(t, 1, locker.calls, "create must go through the booking lock")
	assert.Equal(t, "2024-05-10 09:00", locker.lastKey)
	assert.Equal(t, DefaultDuration, res.Result.Duration)
	assert.Equal(t, StatusPending, res.Result.Status)
}

func TestCreateShift_SlotTaken(t *testing.T) {
	svc, _, _ := newTestService()
	payload := CreateShiftPayload{PatientID: 1, Date: "2024-05-10", StartTime: "09:00"}

	first := svc.CreateShift(context.Background(), payload)
	require.True(t, first.Success)

	second := svc.CreateShift(context.Background(), payload)
	require.False(t, second.Success)
	assert.Equal(t, ErrSlotTaken.Error(), second.Error)
}

func TestCreateShift_CanceledShiftFreesSlot(t *testing.T) {
	svc, _, _ := newTestService()
	payload := CreateShiftPayload{PatientID: 1, Date: "2024-05-10", StartTime: "09:00"}

	first := svc.CreateShift(context.Background(), payload)
	require.True(t, first.Success)

	upd := svc.UpdateShiftStatus(context.Background(), first.Result.ID, UpdateStatusPayload{Status: "canceled"})
	require.True(t, upd.Success)

	second := svc.CreateShift(context.Background(), payload)
	assert.True(t, second.Success)
}

func TestCreateShift_LockContention(t *testing.T) {
	svc, _, locker := newTestService()
	locker.contended = true

	res := svc.CreateShift(context.Background(), CreateShiftPayload{
		PatientID: 1,
		Date:      "2024-05-10",
		StartTime: "09:00",
	})

	require.False(t, res.Success)
	assert.Equal(t, ErrSlotBeingBooked.Error(), res.Error)
}

func TestCreateShift_ValidationFailureSkipsLock(t *testing.T) {
	svc, _, locker := newTestService()

	res := svc.CreateShift(context.Background(), CreateShiftPayload{})

	require.False(t, res.Success)
	assert.Zero(t, locker.calls)
}

func TestUpdateShiftStatus_ConfirmPending(t *testing.T) {
	svc, _, _ := newTestService()
	created := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-10", StartTime: "09:00"})
	require.True(t, created.Success)

	res := svc.UpdateShiftStatus(context.Background(), created.Result.ID, UpdateStatusPayload{Status: "confirmed"})

	require.True(t, res.Success)
	assert.Equal(t, StatusConfirmed, res.Result.Status)
}

func TestUpdateShiftStatus_InvalidTransition(t *testing.T) {
	svc, _, _ := newTestService()
	created := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-10", StartTime: "09:00"})
	require.True(t, created.Success)

	confirmed := svc.UpdateShiftStatus(context.Background(), created.Result.ID, UpdateStatusPayload{Status: "confirmed"})
	require.True(t, confirmed.Success)

	// confirmed -> pending is not in the transition table
	res := svc.UpdateShiftStatus(context.Background(), created.Result.ID, UpdateStatusPayload{Status: "pending"})

	require.False(t, res.Success)
	assert.Equal(t, ErrInvalidStatusTransition.Error(), res.Error)
}

func TestUpdateShiftStatus_ReopenSetsReprogramed(t *testing.T) {
	svc, _, _ := newTestService()
	created := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-10", StartTime: "09:00"})
	require.True(t, created.Success)

	reason := "patient called to cancel"
	canceled := svc.UpdateShiftStatus(context.Background(), created.Result.ID, UpdateStatusPayload{Status: "canceled", ReasonIncomplete: &reason})
	require.True(t, canceled.Success)
	require.NotNil(t, canceled.Result.ReasonIncomplete)
	assert.Equal(t, reason, *canceled.Result.ReasonIncomplete)

	reopened := svc.UpdateShiftStatus(context.Background(), created.Result.ID, UpdateStatusPayload{Status: "pending"})
	require.True(t, reopened.Success)
	assert.True(t, reopened.Result.Reprogramed)
}

func TestDeleteShift_ThenNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	created := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-10", StartTime: "09:00"})
	require.True(t, created.Success)

	deleted := svc.DeleteShift(context.Background(), created.Result.ID)
	require.True(t, deleted.Success)

	res := svc.GetShift(context.Background(), created.Result.ID)
	assert.False(t, res.Success)
}

func TestSweepMissedShifts(t *testing.T) {
	svc, repo, _ := newTestService()
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	past := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-08", StartTime: "09:00"})
	require.True(t, past.Success)
	future := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-12", StartTime: "09:00"})
	require.True(t, future.Success)

	res := svc.SweepMissedShifts(context.Background(), now)

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Result)

	swept := repo.shifts[past.Result.ID]
	assert.Equal(t, StatusCanceled, swept.Status)
	require.NotNil(t, swept.ReasonIncomplete)
	assert.Equal(t, "missed", *swept.ReasonIncomplete)

	untouched := repo.shifts[future.Result.ID]
	assert.Equal(t, StatusPending, untouched.Status)
}

func TestSweepMissedShifts_SkipsConcurrentlyMovedShifts(t *testing.T) {
	svc, repo, _ := newTestService()
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	past := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-08", StartTime: "09:00"})
	require.True(t, past.Success)

	// This shift shows up in the missed query but was confirmed before the
	// guarded update runs; it must not count as swept.
	moved := svc.CreateShift(context.Background(), CreateShiftPayload{PatientID: 1, Date: "2024-05-07", StartTime: "10:00"})
	require.True(t, moved.Success)
	repo.staleMissed = append(repo.staleMissed, *repo.shifts[moved.Result.ID])
	repo.shifts[moved.Result.ID].Status = StatusConfirmed

	res := svc.SweepMissedShifts(context.Background(), now)

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Result)
	assert.Equal(t, StatusConfirmed, repo.shifts[moved.Result.ID].Status)
}
