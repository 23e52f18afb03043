package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leave-backend/internal/models"
	"leave-backend/internal/services"
)

func span(start time.Time, d time.Duration) models.LeaveRequest {
	return models.LeaveRequest{StartDate: start, EndDate: start.Add(d)}
}

func TestLeaveDuration_SameDayIsZero(t *testing.T) {
	l := models.LeaveRequest{StartDate: day(10), EndDate: day(10)}

	assert.Equal(t, 0, services.LeaveDuration(l))
	assert.Equal(t, int64(0), services.RoundedDays(l))
	assert.Equal(t, 0.0, services.ElapsedDays(l))
}

func TestDayCounts_FloorVersusRound(t *testing.T) {
	cases := []struct {
		name    string
		d       time.Duration
		floor   int
		rounded int64
		elapsed float64
	}{
		{"five days", 5 * 24 * time.Hour, 5, 5, 5},
		{"day and a half", 36 * time.Hour, 1, 2, 1.5},
		{"two and a half", 60 * time.Hour, 2, 2, 2.5},
		{"three and a half", 84 * time.Hour, 3, 4, 3.5},
		{"half a day", 12 * time.Hour, 0, 0, 0.5},
		{"under half", 9 * time.Hour, 0, 0, 0.375},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := span(day(1), tc.d)
			assert.Equal(t, tc.floor, services.LeaveDuration(l))
			assert.Equal(t, tc.rounded, services.RoundedDays(l))
			assert.InDelta(t, tc.elapsed, services.ElapsedDays(l), 1e-9)
		})
	}
}
