package shifts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

func TestAvailable(t *testing.T) {
	env := newTestEnv()

	open := env.seedShift(&domain.Shift{
		Title:        "Open slot",
		StartTime:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
		MaxEmployees: 2,
	})
	env.seedShift(&domain.Shift{
		Title:           "Already full",
		StartTime:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
		MaxEmployees:    1,
		AssignedUserIDs: []int64{2},
	})
	env.seedShift(&domain.Shift{
		Title:     "Cancelled",
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
		Status:    domain.ShiftStatusCancelled,
	})

	available, err := env.svc.Available(nil, nil)
	require.NoError(t, err)

	require.Len(t, available, 1)
	assert.Equal(t, open.ID, available[0].ID)
}

func TestAvailableFiltersByDateAndStart(t *testing.T) {
	env := newTestEnv()

	env.seedShift(&domain.Shift{
		Title:     "Today early",
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
	})
	late := env.seedShift(&domain.Shift{
		Title:     "Today late",
		StartTime: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC),
	})
	env.seedShift(&domain.Shift{
		Title:     "Tomorrow",
		StartTime: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC),
	})

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	startAfter := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	available, err := env.svc.Available(&date, &startAfter)
	require.NoError(t, err)

	require.Len(t, available, 1)
	assert.Equal(t, late.ID, available[0].ID)
}

func TestUserShiftsRequiresExistingUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.UserShifts(42)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUserShifts(t *testing.T) {
	env := newTestEnv()
	shift := env.pickedUpMorningShift(t, 1)
	env.morningShift() // not picked up

	userShifts, err := env.svc.UserShifts(1)
	require.NoError(t, err)

	require.Len(t, userShifts, 1)
	assert.Equal(t, shift.ID, userShifts[0].ID)
}

func TestCurrentClockInStatus(t *testing.T) {
	env := newTestEnv()
	shift := env.clockedInMorningShift(t, 1)

	status, err := env.svc.CurrentClockInStatus(1)
	require.NoError(t, err)

	require.NotNil(t, status)
	assert.Equal(t, shift.ID, status.ShiftID)
	assert.Equal(t, shift.Title, status.Title)
	assert.Equal(t, env.clock.Now(), status.ClockInTime)
}

func TestCurrentClockInStatusNilWhenNotClockedIn(t *testing.T) {
	env := newTestEnv()
	env.pickedUpMorningShift(t, 1)

	status, err := env.svc.CurrentClockInStatus(1)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestTodayTimeSummary(t *testing.T) {
	env := newTestEnv()

	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(3 * time.Hour)
	env.seedShift(&domain.Shift{
		Title:           "Closed session",
		StartTime:       clockIn,
		EndTime:         clockIn.Add(8 * time.Hour),
		AssignedUserIDs: []int64{1},
		ClockRecords:    []domain.ClockRecord{{UserID: 1, ClockIn: clockIn, ClockOut: &clockOut}},
	})

	openIn := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	env.seedShift(&domain.Shift{
		Title:           "Open session",
		StartTime:       openIn,
		EndTime:         openIn.Add(8 * time.Hour),
		AssignedUserIDs: []int64{1},
		ClockRecords:    []domain.ClockRecord{{UserID: 1, ClockIn: openIn}},
	})

	// yesterday's work must not count
	yIn := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	yOut := yIn.Add(8 * time.Hour)
	env.seedShift(&domain.Shift{
		Title:           "Yesterday",
		StartTime:       yIn,
		EndTime:         yOut,
		AssignedUserIDs: []int64{1},
		ClockRecords:    []domain.ClockRecord{{UserID: 1, ClockIn: yIn, ClockOut: &yOut}},
	})

	// 3h closed + 1h30m open-to-now
	env.clock.Set(time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC))

	summary, err := env.svc.TodayTimeSummary(1)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalHours)
	assert.Equal(t, 30, summary.TotalMinutes)
	assert.Len(t, summary.Entries, 2)
}

func TestRecentTimeEntries(t *testing.T) {
	env := newTestEnv()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		in := base.AddDate(0, 0, i)
		out := in.Add(6 * time.Hour)
		env.seedShift(&domain.Shift{
			Title:           "History",
			StartTime:       in,
			EndTime:         out,
			AssignedUserIDs: []int64{1},
			ClockRecords:    []domain.ClockRecord{{UserID: 1, ClockIn: in, ClockOut: &out}},
		})
	}
	// an open session is excluded
	openIn := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	env.seedShift(&domain.Shift{
		Title:           "Ongoing",
		StartTime:       openIn,
		EndTime:         openIn.Add(8 * time.Hour),
		AssignedUserIDs: []int64{1},
		ClockRecords:    []domain.ClockRecord{{UserID: 1, ClockIn: openIn}},
	})

	entries, err := env.svc.RecentTimeEntries(1, 2)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, base.AddDate(0, 0, 2), entries[0].ClockIn)
	assert.Equal(t, base.AddDate(0, 0, 1), entries[1].ClockIn)
	assert.Equal(t, 360, entries[0].Duration)
}

func TestListAppliesFilters(t *testing.T) {
	env := newTestEnv()

	env.seedShift(&domain.Shift{
		Title:     "Warehouse morning",
		Type:      "morning",
		JobID:     1,
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
	})
	catering := env.seedShift(&domain.Shift{
		Title:     "Catering night",
		Type:      "night",
		JobID:     2,
		StartTime: time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC),
	})

	result, err := env.svc.List(domain.ShiftFilters{Type: "night"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, catering.ID, result[0].ID)

	result, err = env.svc.List(domain.ShiftFilters{JobID: 1})
	require.NoError(t, err)
	require.Len(t, result, 1)

	result, err = env.svc.List(domain.ShiftFilters{})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
