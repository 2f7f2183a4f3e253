package shifts

import (
	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/geo"
)

// ClockIn opens a clock record for the user on the shift. The user must be
// on the roster with no open record, the coordinate must fall within the
// job's geofence, and the current time must lie in the window from
// EarlyClockInWindow before the start time up to the start time itself.
// Clocking in after the shift has started is rejected.
func (s *Service) ClockIn(shiftID, userID int64, point geo.Point) (*domain.Shift, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	if !shift.IsAssigned(userID) {
		return nil, domain.Conflict("you are not assigned to this shift")
	}

	if shift.ActiveClockRecord(userID) != nil {
		return nil, domain.Conflict("you are already clocked in")
	}

	job, err := s.store.GetJobByID(shift.JobID)
	if err != nil {
		return nil, err
	}

	radius := job.Location.Radius
	if radius <= 0 {
		radius = s.defaultRadius
	}

	center := geo.Point{Lat: job.Location.Lat, Lon: job.Location.Lon}
	inside, err := geo.WithinGeofence(point, center, radius)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, domain.Conflict("you are outside the job site geofence")
	}

	now := s.now()
	if now.Before(shift.StartTime.Add(-s.earlyWindow)) {
		return nil, domain.Conflict("cannot clock in more than %d minutes before the shift starts", int(s.earlyWindow.Minutes()))
	}
	if now.After(shift.StartTime) {
		return nil, domain.Conflict("cannot clock in after the shift has started")
	}

	shift.ClockRecords = append(shift.ClockRecords, domain.ClockRecord{
		UserID:  userID,
		ClockIn: now,
	})

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// ClockOut closes the user's open clock record and stores the optional note
// on it.
func (s *Service) ClockOut(shiftID, userID int64, note string) (*domain.Shift, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	if !shift.IsAssigned(userID) {
		return nil, domain.Conflict("you are not assigned to this shift")
	}

	record := shift.ActiveClockRecord(userID)
	if record == nil {
		return nil, domain.Conflict("no active clock-in record found")
	}

	now := s.now()
	record.ClockOut = &now
	record.Note = note

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}
