package storeerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_NotNullSQLiteStyle(t *testing.T) {
	msg := "NOT NULL constraint failed: shift.patient_id"

	fields := Translate(errors.New(msg))

	require.Len(t, fields, 1)
	assert.Equal(t, "patient_id", fields[0].Field)
	assert.Equal(t, msg, fields[0].Message)
}

func TestTranslate_UniqueSQLiteStyle(t *testing.T) {
	fields := Translate(errors.New("UNIQUE constraint failed: patient.dni"))

	require.Len(t, fields, 1)
	assert.Equal(t, "dni", fields[0].Field)
}

func TestTranslate_MissingColumn(t *testing.T) {
	fields := Translate(errors.New("table shift has no column named reprogramed"))

	require.Len(t, fields, 1)
	assert.Equal(t, "reprogramed", fields[0].Field)
}

func TestTranslate_NoSuchColumn(t *testing.T) {
	fields := Translate(errors.New("no such column: start_time"))

	require.Len(t, fields, 1)
	assert.Equal(t, "start_time", fields[0].Field)
}

func TestTranslate_PostgresNotNull(t *testing.T) {
	fields := Translate(errors.New(`null value in column "patient_id" of relation "shifts" violates not-null constraint`))

	require.Len(t, fields, 1)
	assert.Equal(t, "patient_id", fields[0].Field)
}

func TestTranslate_PostgresDuplicateKey(t *testing.T) {
	fields := Translate(errors.New(`duplicate key value violates unique constraint "patients_dni_key"`))

	require.Len(t, fields, 1)
	assert.Equal(t, "dni", fields[0].Field)
}

func TestTranslate_PgErrorPrefersMessageAttribute(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23502",
		Message: `null value in column "dni" of relation "patients" violates not-null constraint`,
	}

	fields := Translate(fmt.Errorf("insert patient: %w", pgErr))

	require.Len(t, fields, 1)
	assert.Equal(t, "dni", fields[0].Field)
	assert.Equal(t, pgErr.Message, fields[0].Message)
}

// A message matching several patterns emits one entry per match; callers own
// deduplication.
func TestTranslate_MultipleMatches(t *testing.T) {
	msg := "NOT NULL constraint failed: shift.date; no such column: duration"

	fields := Translate(errors.New(msg))

	require.Len(t, fields, 2)
	assert.Equal(t, "date", fields[0].Field)
	assert.Equal(t, "duration", fields[1].Field)
	for _, f := range fields {
		assert.Equal(t, msg, f.Message)
	}
}

func TestTranslate_UnrecognizedMessage(t *testing.T) {
	assert.Empty(t, Translate(errors.New("connection refused")))
}

func TestTranslate_NilAndEmpty(t *testing.T) {
	assert.Empty(t, Translate(nil))
	assert.Empty(t, Translate(""))
}

func TestTranslate_Idempotent(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: patient.dni")

	first := Translate(err)
	second := Translate(err)

	assert.Equal(t, first, second)
}

func TestMessage_Coercion(t *testing.T) {
	assert.Equal(t, "plain text", Message("plain text"))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "42", Message(42))
	assert.Equal(t, "", Message(nil))
}
