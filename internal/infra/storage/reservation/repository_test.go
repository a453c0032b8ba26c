package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayLockKey(t *testing.T) {
	day := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "3:2025-06-02", dayLockKey(3, day))
	assert.Equal(t, dayLockKey(3, day), dayLockKey(3, day.Add(-15*time.Hour)))
	assert.NotEqual(t, dayLockKey(3, day), dayLockKey(1<<32+3, day))
	assert.NotEqual(t, dayLockKey(3, day), dayLockKey(3, day.AddDate(0, 0, 1)))
}
