package shifts

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

func TestConcurrentPickupRespectsCapacity(t *testing.T) {
	env := newTestEnv()

	const workers = 6
	for i := int64(3); i <= workers; i++ {
		env.store.users[i] = &domain.User{
			ID:       i,
			Username: fmt.Sprintf("worker%d", i),
			FullName: fmt.Sprintf("Worker %d", i),
			Role:     domain.RoleEmployee,
			IsActive: true,
		}
	}

	shift := env.seedShift(&domain.Shift{
		Title:        "Two slots",
		StartTime:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
		MaxEmployees: 2,
	})

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Pickup(shift.ID, int64(i+1))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, domain.IsConflict(err))
	}
	assert.Equal(t, 2, succeeded)

	stored, err := env.store.GetShiftByID(shift.ID)
	require.NoError(t, err)
	assert.Len(t, stored.AssignedUserIDs, 2)
}

func TestConcurrentDuplicatePickup(t *testing.T) {
	env := newTestEnv()
	shift := env.morningShift()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Pickup(shift.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	stored, err := env.store.GetShiftByID(shift.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, stored.AssignedUserIDs)
}

// A clock-out racing the sweep must never leave the record open or let the
// sweep overwrite the clock-out with stale data: either the clock-out lands
// first (record closed at the later time), or the sweep force-closes first
// and the clock-out fails on the already-closed record.
func TestClockOutRacingSweep(t *testing.T) {
	for i := 0; i < 10; i++ {
		env := newTestEnv()

		clockIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		shift := env.seedShift(&domain.Shift{
			Title:           "Long night",
			StartTime:       clockIn,
			EndTime:         clockIn.Add(8 * time.Hour),
			AssignedUserIDs: []int64{1},
			ClockRecords:    []domain.ClockRecord{{UserID: 1, ClockIn: clockIn}},
		})

		now := clockIn.Add(9 * time.Hour)
		env.clock.Set(now)

		var wg sync.WaitGroup
		var clockOutErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			env.svc.Sweep()
		}()
		go func() {
			defer wg.Done()
			_, clockOutErr = env.svc.ClockOut(shift.ID, 1, "")
		}()
		wg.Wait()

		stored, err := env.store.GetShiftByID(shift.ID)
		require.NoError(t, err)
		require.Len(t, stored.ClockRecords, 1)
		record := stored.ClockRecords[0]
		require.NotNil(t, record.ClockOut)

		if clockOutErr == nil {
			assert.Equal(t, now, *record.ClockOut)
		} else {
			assert.True(t, domain.IsConflict(clockOutErr))
			assert.Equal(t, clockIn.Add(8*time.Hour), *record.ClockOut)
		}
	}
}

func TestShiftLocksReleased(t *testing.T) {
	env := newTestEnv()
	shift := env.morningShift()

	_, err := env.svc.Pickup(shift.ID, 1)
	require.NoError(t, err)
	_, err = env.svc.ClockIn(shift.ID, 1, onSite)
	require.NoError(t, err)
	_, err = env.svc.ClockOut(shift.ID, 1, "")
	require.NoError(t, err)
	env.svc.Sweep()

	env.svc.mu.Lock()
	defer env.svc.mu.Unlock()
	assert.Empty(t, env.svc.locks)
}
