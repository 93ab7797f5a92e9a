// Package storeerr turns opaque persistence-layer failures into
// field-addressable error descriptors.
package storeerr

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/THGoZ/lauch-shifts-sub001/internal/result"
)

// constraintPatterns is checked in order and non-exclusively: every pattern
// that matches emits one entry, so a message can yield duplicates. The last
// capture group is the bare column name in every pattern.
var constraintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`table \w+ has no column named (\w+)`),
	regexp.MustCompile(`NOT NULL constraint failed: \w+\.(\w+)`),
	regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`),
	regexp.MustCompile(`no such column: (?:\w+\.)?(\w+)`),
	regexp.MustCompile(`null value in column "(\w+)"`),
	regexp.MustCompile(`duplicate key value violates unique constraint "\w+?_(\w+)_key"`),
}

// Translate coerces an arbitrary storage error to its textual message and
// maps every recognized constraint-failure pattern to a field error carrying
// the original message. An empty slice means the failure is not attributable
// to a field and should be surfaced generically.
func Translate(err any) []result.FieldError {
	msg := Message(err)
	if msg == "" {
		return nil
	}

	var fields []result.FieldError
	for _, pat := range constraintPatterns {
		m := pat.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		fields = append(fields, result.FieldError{Field: m[len(m)-1], Message: msg})
	}
	return fields
}

// Message extracts a textual message from an arbitrary error value. A
// structured Postgres error contributes its message attribute; anything
// else falls back to Error() or plain stringification.
func Message(err any) string {
	switch e := err.(type) {
	case nil:
		return ""
	case *pgconn.PgError:
		return e.Message
	case error:
		var pgErr *pgconn.PgError
		if errors.As(e, &pgErr) {
			return pgErr.Message
		}
		return e.Error()
	case string:
		return e
	default:
		return fmt.Sprint(e)
	}
}
