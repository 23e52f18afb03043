package services

import (
	"math"
	"time"

	"leave-backend/internal/models"
)

const day = 24 * time.Hour

// ElapsedDays is end minus start in days, unrounded.
func ElapsedDays(l models.LeaveRequest) float64 {
	return float64(l.EndDate.Sub(l.StartDate)) / float64(day)
}

// LeaveDuration counts whole elapsed days; a same-day request is 0.
// Balances and the per-user listing use this.
func LeaveDuration(l models.LeaveRequest) int {
	return int(math.Floor(ElapsedDays(l)))
}

// RoundedDays rounds half to even, matching Mongo's $round. Only the pending report uses it.
func RoundedDays(l models.LeaveRequest) int64 {
	return int64(math.RoundToEven(ElapsedDays(l)))
}
