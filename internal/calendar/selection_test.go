package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelection_DefaultsToToday(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	sel := NewSelection(now)

	assert.Equal(t, "2024-05-10", sel.Date())
	assert.Equal(t, "2024-05-10", sel.Month())
}

func TestSelection_CursorsAreIndependent(t *testing.T) {
	sel := NewSelection(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	sel.SetDate("2024-05-15")
	assert.Equal(t, "2024-05-15", sel.Date())
	assert.Equal(t, "2024-05-10", sel.Month(), "month cursor must not follow the date cursor")

	sel.SetMonth("2024-06-01")
	assert.Equal(t, "2024-06-01", sel.Month())
	assert.Equal(t, "2024-05-15", sel.Date(), "date cursor must not follow the month cursor")
}
