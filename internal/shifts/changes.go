package shifts

import (
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// RequestClockInChange records a pending correction to the user's current
// clock-in time. The user must have an open clock record and no other
// pending request on this shift.
func (s *Service) RequestClockInChange(shiftID, userID int64, requestedClockIn time.Time) (*domain.Shift, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	if !shift.IsAssigned(userID) {
		return nil, domain.Conflict("you are not assigned to this shift")
	}

	if shift.ActiveClockRecord(userID) == nil {
		return nil, domain.Conflict("no clock-in record to change")
	}

	if shift.PendingChangeRequest(userID) != nil {
		return nil, domain.Conflict("a pending clock-in change request already exists")
	}

	shift.ChangeRequests = append(shift.ChangeRequests, domain.ClockInChangeRequest{
		UserID:           userID,
		RequestedClockIn: requestedClockIn,
	})

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// ResolveClockInChange approves or rejects the user's pending change
// request. Approval overwrites the clock-in time of the user's open record
// with the requested value as-is; the geofence and clock-in window are not
// re-checked, this is an administrative override.
func (s *Service) ResolveClockInChange(shiftID, userID int64, approve bool) (*domain.Shift, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	request := shift.PendingChangeRequest(userID)
	if request == nil {
		return nil, domain.Conflict("no pending clock-in change request")
	}

	request.Approved = &approve
	if approve {
		if record := shift.ActiveClockRecord(userID); record != nil {
			record.ClockIn = request.RequestedClockIn
		}
	}

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}
