package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/THGoZ/lauch-shifts-sub001/internal/db"
	"github.com/THGoZ/lauch-shifts-sub001/internal/logging"
	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

func main() {
	logging.Init("seed", "dev")
	log.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAvailability(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("seed availability")
	}
	patientIDs, err := seedPatients(context.Background(), pool, 50)
	if err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}
	if err := seedShifts(context.Background(), pool, patientIDs, 200); err != nil {
		log.Fatal().Err(err).Msg("seed shifts")
	}

	log.Info().Msg("seed complete")
}

// seedAvailability opens Monday to Friday with a morning and an afternoon
// window each.
func seedAvailability(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("seeding availability")

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	windows := [][2]string{{"09:00", "13:00"}, {"14:00", "18:00"}}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, day := range days {
		var dayID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO available_days (day)
			VALUES ($1)
			ON CONFLICT (day) DO UPDATE SET day = EXCLUDED.day
			RETURNING id
		`, day).Scan(&dayID)
		if err != nil {
			return err
		}

		for _, w := range windows {
			_, err := tx.Exec(ctx, `
				INSERT INTO available_times (day_id, start_time, end_time)
				VALUES ($1, $2, $3)
			`, dayID, w[0], w[1])
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]int64, error) {
	log.Info().Int("count", count).Msg("seeding patients")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.FirstName()
		lastname := gofakeit.LastName()
		dni := fmt.Sprintf("%08d", gofakeit.Number(10000000, 99999999))

		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO patients (name, lastname, dni, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			ON CONFLICT (dni) DO NOTHING
			RETURNING id
		`, name, lastname, dni).Scan(&id)
		if err != nil {
			// dni collision, skip this one
			continue
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Int("seeded", len(ids)).Msg("patients seeded")
	return ids, nil
}

// seedShifts spreads shifts over the surrounding two months, hourly slots,
// mixed statuses. Uniqueness of date+start_time keeps the agenda realistic.
func seedShifts(ctx context.Context, pool *pgxpool.Pool, patientIDs []int64, count int) error {
	if len(patientIDs) == 0 {
		return fmt.Errorf("no patients to book shifts for")
	}
	log.Info().Int("count", count).Msg("seeding shifts")

	statuses := []shift.Status{shift.StatusPending, shift.StatusConfirmed, shift.StatusCanceled}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	taken := make(map[string]bool, count)
	seeded := 0
	for i := 0; i < count; i++ {
		date := time.Now().AddDate(0, 0, gofakeit.Number(-30, 30)).Format("2006-01-02")
		startTime := fmt.Sprintf("%02d:00", gofakeit.Number(9, 17))
		if taken[date+startTime] {
			continue
		}
		taken[date+startTime] = true

		patientID := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		var reason *string
		if status == shift.StatusCanceled {
			r := gofakeit.Sentence(4)
			reason = &r
		}
		var details *string
		if gofakeit.Bool() {
			d := gofakeit.Sentence(8)
			details = &d
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO shifts (patient_id, date, start_time, duration, status,
				reason_incomplete, details, reprogramed, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, false, now(), now())
		`, patientID, date, startTime, shift.DefaultDuration, status, reason, details)
		if err != nil {
			return err
		}
		seeded++
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Info().Int("seeded", seeded).Msg("shifts seeded")
	return nil
}
