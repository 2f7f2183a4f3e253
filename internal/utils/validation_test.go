package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

func validShift() *domain.Shift {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &domain.Shift{
		Title:         "Warehouse morning",
		StartDate:     day,
		EndDate:       day,
		StartTime:     day.Add(9 * time.Hour),
		EndTime:       day.Add(17 * time.Hour),
		MaxEmployees:  3,
		BreakDuration: 30,
	}
}

func TestValidateShiftSchedule(t *testing.T) {
	require.NoError(t, ValidateShiftSchedule(validShift()))
}

func TestValidateShiftScheduleRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *domain.Shift)
	}{
		{"start date after end date", func(s *domain.Shift) {
			s.StartDate = s.EndDate.AddDate(0, 0, 1)
		}},
		{"start time after end time", func(s *domain.Shift) {
			s.StartTime, s.EndTime = s.EndTime, s.StartTime
		}},
		{"zero max employees", func(s *domain.Shift) {
			s.MaxEmployees = 0
		}},
		{"negative break duration", func(s *domain.Shift) {
			s.BreakDuration = -15
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shift := validShift()
			tc.mutate(shift)

			err := ValidateShiftSchedule(shift)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidInput(err))
		})
	}
}
