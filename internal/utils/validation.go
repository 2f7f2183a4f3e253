package utils

import (
	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// ValidateShiftSchedule checks the scheduling attributes of a shift before
// it is created.
func ValidateShiftSchedule(shift *domain.Shift) error {
	if shift.StartDate.After(shift.EndDate) {
		return domain.InvalidInput("start date cannot be after end date")
	}
	if shift.StartTime.After(shift.EndTime) {
		return domain.InvalidInput("start time cannot be after end time")
	}
	if shift.MaxEmployees < 1 {
		return domain.InvalidInput("maximum employees must be at least 1")
	}
	if shift.BreakDuration < 0 {
		return domain.InvalidInput("break duration cannot be negative")
	}
	return nil
}
