package shifts

import (
	"log/slog"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// Sweep walks every shift and force-closes clock records left open for the
// maximum session length or longer. The recorded clock-out is always exactly
// clockIn + MaxSessionLength, regardless of how long past the limit the
// sweep runs. A shift that cannot be processed is logged and skipped; the
// pass never aborts.
func (s *Service) Sweep() int {
	all, err := s.store.GetShifts(domain.ShiftFilters{})
	if err != nil {
		slog.Error("sweep: failed to list shifts", "error", err)
		return 0
	}

	now := s.now()
	closed := 0

	for _, shift := range all {
		n, err := s.sweepShift(shift.ID, now)
		if err != nil {
			slog.Error("sweep: failed to process shift", "shiftID", shift.ID, "error", err)
			continue
		}
		closed += n
	}

	return closed
}

func (s *Service) sweepShift(shiftID int64, now time.Time) (int, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	// reload under the lock so the sweep never overwrites a concurrent
	// clock-out with stale data
	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return 0, err
	}

	closed := 0
	for i := range shift.ClockRecords {
		record := &shift.ClockRecords[i]
		if !record.IsOpen() {
			continue
		}
		if now.Sub(record.ClockIn) < s.maxSession {
			continue
		}

		end := record.ClockIn.Add(s.maxSession)
		record.ClockOut = &end
		closed++
		slog.Info("sweep: force-closed abandoned clock session", "shiftID", shift.ID, "userID", record.UserID, "clockOut", end)
	}

	if closed == 0 {
		return 0, nil
	}

	if err := s.store.UpdateShift(shift); err != nil {
		return 0, err
	}

	return closed, nil
}
