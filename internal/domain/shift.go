package domain

import (
	"slices"
	"time"
)

type ShiftStatus string

const (
	ShiftStatusOpen       ShiftStatus = "open"
	ShiftStatusFull       ShiftStatus = "full"
	ShiftStatusInProgress ShiftStatus = "in-progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
)

// ClockRecord is one user's clock-in/clock-out pair on a shift. ClockOut is
// nil while the session is still open.
type ClockRecord struct {
	UserID   int64      `json:"userID"`
	ClockIn  time.Time  `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut,omitempty"`
	Note     string     `json:"note,omitempty"`
}

func (r *ClockRecord) IsOpen() bool {
	return r.ClockOut == nil
}

// ClockInChangeRequest is a proposed retroactive correction to a clock-in
// time. Approved is nil while the request is pending.
type ClockInChangeRequest struct {
	UserID           int64     `json:"userID"`
	RequestedClockIn time.Time `json:"requestedClockIn"`
	Approved         *bool     `json:"approved"`
}

func (cr *ClockInChangeRequest) IsPending() bool {
	return cr.Approved == nil
}

// Shift is the aggregate the whole clocking core operates on. The roster and
// both ledgers are embedded and are always loaded and persisted together
// with the shift itself.
type Shift struct {
	ID              int64                  `json:"id"`
	Title           string                 `json:"title"`
	Type            string                 `json:"type"`
	Date            time.Time              `json:"date"`
	StartDate       time.Time              `json:"startDate"`
	EndDate         time.Time              `json:"endDate"`
	StartTime       time.Time              `json:"startTime"`
	EndTime         time.Time              `json:"endTime"`
	JobID           int64                  `json:"jobID"`
	RequiredSkills  string                 `json:"requiredSkills"`
	Description     string                 `json:"description,omitempty"`
	MaxEmployees    int32                  `json:"maxEmployees"`
	BreakDuration   int32                  `json:"breakDuration"` // minutes
	Status          ShiftStatus            `json:"status"`
	AssignedUserIDs []int64                `json:"assignedUserIDs"`
	ClockRecords    []ClockRecord          `json:"clockRecords"`
	ChangeRequests  []ClockInChangeRequest `json:"clockInChangeRequests"`
	CreatedAt       time.Time              `json:"createdAt"`
	Version         int32                  `json:"-"`
}

// ShiftFilters narrows shift listings. Zero values mean "no filter".
type ShiftFilters struct {
	Date   *time.Time
	Type   string
	JobID  int64
	Status ShiftStatus
}

func (s *Shift) IsAssigned(userID int64) bool {
	return slices.Contains(s.AssignedUserIDs, userID)
}

// ActiveClockRecord returns the user's open clock record on this shift, or
// nil if there is none. At most one open record per user exists at a time.
func (s *Shift) ActiveClockRecord(userID int64) *ClockRecord {
	for i := range s.ClockRecords {
		if s.ClockRecords[i].UserID == userID && s.ClockRecords[i].IsOpen() {
			return &s.ClockRecords[i]
		}
	}
	return nil
}

// PendingChangeRequest returns the user's pending change request on this
// shift, or nil if there is none.
func (s *Shift) PendingChangeRequest(userID int64) *ClockInChangeRequest {
	for i := range s.ChangeRequests {
		if s.ChangeRequests[i].UserID == userID && s.ChangeRequests[i].IsPending() {
			return &s.ChangeRequests[i]
		}
	}
	return nil
}
