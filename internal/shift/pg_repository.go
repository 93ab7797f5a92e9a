package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Lastname,
		&p.DNI,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func scanShift(row pgx.Row) (*Shift, error) {
	var s Shift

	err := row.Scan(
		&s.ID,
		&s.PatientID,
		&s.Date,
		&s.StartTime,
		&s.Duration,
		&s.Status,
		&s.ReasonIncomplete,
		&s.Details,
		&s.Reprogramed,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}

	return &s, nil
}

const shiftColumns = `id, patient_id, date, start_time, duration, status,
		reason_incomplete, details, reprogramed, created_at, updated_at, deleted_at`

// Interface methods

func (r *PgRepository) CreatePatient(ctx context.Context, p Patient) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, lastname, dni, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, name, lastname, dni, created_at, updated_at, deleted_at
	`, p.Name, p.Lastname, p.DNI)
	return scanPatient(row)
}

func (r *PgRepository) GetPatientByID(ctx context.Context, id int64) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, lastname, dni, created_at, updated_at, deleted_at
		FROM patients
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, lastname, dni, created_at, updated_at, deleted_at
		FROM patients
		WHERE deleted_at IS NULL
		ORDER BY lastname, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) SoftDeletePatient(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET deleted_at = now(),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *PgRepository) CreateShift(ctx context.Context, s Shift) (*Shift, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO shifts (patient_id, date, start_time, duration, status,
			reason_incomplete, details, reprogramed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING `+shiftColumns+`
	`, s.PatientID, s.Date, s.StartTime, s.Duration, s.Status,
		s.ReasonIncomplete, s.Details, s.Reprogramed)
	return scanShift(row)
}

func (r *PgRepository) GetShiftByID(ctx context.Context, id int64) (*Shift, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanShift(row)
}

func (r *PgRepository) GetActiveShiftAt(ctx context.Context, date, startTime string) (*Shift, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts
		WHERE date = $1
		  AND start_time = $2
		  AND status <> 'canceled'
		  AND deleted_at IS NULL
		LIMIT 1
	`, date, startTime)
	return scanShift(row)
}

func (r *PgRepository) UpdateShiftStatus(ctx context.Context, id int64, from, to Status, reason *string, reprogramed bool) (*Shift, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE shifts
		SET status = $2,
		    reason_incomplete = COALESCE($4, reason_incomplete),
		    reprogramed = reprogramed OR $5,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		  AND deleted_at IS NULL
		RETURNING `+shiftColumns+`
	`, id, to, from, reason, reprogramed)
	return scanShift(row)
}

func (r *PgRepository) SoftDeleteShift(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE shifts
		SET deleted_at = now(),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func (r *PgRepository) ListShiftsWithPatients(ctx context.Context) ([]ShiftWithPatient, error) {
	return r.queryShiftsWithPatients(ctx, `
		SELECT s.id, s.patient_id, s.date, s.start_time, s.duration, s.status,
		       s.reason_incomplete, s.details, s.reprogramed,
		       s.created_at, s.updated_at, s.deleted_at,
		       p.id, p.name, p.lastname, p.dni, p.created_at, p.updated_at, p.deleted_at
		FROM shifts s
		LEFT JOIN patients p ON p.id = s.patient_id AND p.deleted_at IS NULL
		WHERE s.deleted_at IS NULL
		ORDER BY s.date, s.start_time, s.id
	`)
}

func (r *PgRepository) ListShiftsByPatient(ctx context.Context, patientID int64) ([]ShiftWithPatient, error) {
	return r.queryShiftsWithPatients(ctx, `
		SELECT s.id, s.patient_id, s.date, s.start_time, s.duration, s.status,
		       s.reason_incomplete, s.details, s.reprogramed,
		       s.created_at, s.updated_at, s.deleted_at,
		       p.id, p.name, p.lastname, p.dni, p.created_at, p.updated_at, p.deleted_at
		FROM shifts s
		LEFT JOIN patients p ON p.id = s.patient_id AND p.deleted_at IS NULL
		WHERE s.deleted_at IS NULL AND s.patient_id = $1
		ORDER BY s.date, s.start_time, s.id
	`, patientID)
}

func (r *PgRepository) queryShiftsWithPatients(ctx context.Context, sql string, args ...any) ([]ShiftWithPatient, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShiftWithPatient
	for rows.Next() {
		var sw ShiftWithPatient
		var pID *int64
		var pName, pLastname, pDNI *string
		var pCreated, pUpdated, pDeleted *time.Time

		err := rows.Scan(
			&sw.ID,
			&sw.PatientID,
			&sw.Date,
			&sw.StartTime,
			&sw.Duration,
			&sw.Status,
			&sw.ReasonIncomplete,
			&sw.Details,
			&sw.Reprogramed,
			&sw.CreatedAt,
			&sw.UpdatedAt,
			&sw.DeletedAt,
			&pID,
			&pName,
			&pLastname,
			&pDNI,
			&pCreated,
			&pUpdated,
			&pDeleted,
		)
		if err != nil {
			return nil, err
		}

		if pID != nil {
			sw.Patient = &Patient{
				ID:        *pID,
				Name:      *pName,
				Lastname:  *pLastname,
				DNI:       *pDNI,
				CreatedAt: *pCreated,
				UpdatedAt: *pUpdated,
				DeletedAt: pDeleted,
			}
		}

		result = append(result, sw)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) FindMissedPending(ctx context.Context, before string) ([]Shift, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts
		WHERE status = 'pending'
		  AND date < $1
		  AND deleted_at IS NULL
	`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) ListAvailability(ctx context.Context) ([]Availability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.day, t.id, t.day_id, t.start_time, t.end_time
		FROM available_days d
		LEFT JOIN available_times t ON t.day_id = d.id
		ORDER BY d.id, t.start_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Availability
	byDay := make(map[int64]int)

	for rows.Next() {
		var day AvailableDay
		var tID, tDayID *int64
		var tStart, tEnd *string

		if err := rows.Scan(&day.ID, &day.Day, &tID, &tDayID, &tStart, &tEnd); err != nil {
			return nil, err
		}

		idx, ok := byDay[day.ID]
		if !ok {
			result = append(result, Availability{Day: day})
			idx = len(result) - 1
			byDay[day.ID] = idx
		}

		if tID != nil {
			result[idx].Times = append(result[idx].Times, AvailableTime{
				ID:        *tID,
				DayID:     *tDayID,
				StartTime: *tStart,
				EndTime:   *tEnd,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
