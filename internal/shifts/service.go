// Package shifts implements the shift roster and clock session core: pickup
// and drop against a capacity-bounded roster, geofenced clock-in/clock-out,
// the clock-in time-correction workflow and the abandoned-session sweep.
package shifts

import (
	"slices"
	"sync"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/utils"
)

type Options struct {
	// EarlyClockInWindow is how long before a shift's start time clocking
	// in becomes allowed.
	EarlyClockInWindow time.Duration
	// MaxSessionLength is the session length at which the sweeper
	// force-closes an open clock record.
	MaxSessionLength time.Duration
	// DefaultGeofenceRadius (meters) applies to jobs without a radius.
	DefaultGeofenceRadius float64
	// Now is overridable for tests.
	Now func() time.Time
}

type Service struct {
	store         Store
	earlyWindow   time.Duration
	maxSession    time.Duration
	defaultRadius float64
	now           func() time.Time

	// mutations on the same shift aggregate are serialized through a
	// per-shift lock, otherwise two concurrent read-modify-write cycles
	// could silently drop each other's writes
	mu    sync.Mutex
	locks map[int64]*shiftLock
}

// shiftLock is reference-counted so the lock map does not accumulate an
// entry for every shift id ever touched.
type shiftLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(store Store, opts Options) *Service {
	if opts.EarlyClockInWindow <= 0 {
		opts.EarlyClockInWindow = 30 * time.Minute
	}
	if opts.MaxSessionLength <= 0 {
		opts.MaxSessionLength = 8 * time.Hour
	}
	if opts.DefaultGeofenceRadius <= 0 {
		opts.DefaultGeofenceRadius = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		store:         store,
		earlyWindow:   opts.EarlyClockInWindow,
		maxSession:    opts.MaxSessionLength,
		defaultRadius: opts.DefaultGeofenceRadius,
		now:           opts.Now,
		locks:         make(map[int64]*shiftLock),
	}
}

// lockShift acquires the lock for one shift and returns the release
// function. The map entry is dropped once the last holder releases it.
func (s *Service) lockShift(id int64) func() {
	s.mu.Lock()
	l, exists := s.locks[id]
	if !exists {
		l = &shiftLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

type CreateInput struct {
	Title          string
	Type           string
	Date           time.Time
	StartDate      time.Time
	EndDate        time.Time
	StartTime      time.Time
	EndTime        time.Time
	JobID          int64
	RequiredSkills string
	Description    string
	MaxEmployees   int32
	BreakDuration  int32
}

// Create validates the schedule and the job reference and produces an open
// shift with an empty roster and empty ledgers.
func (s *Service) Create(input CreateInput) (*domain.Shift, error) {
	shift := &domain.Shift{
		Title:           input.Title,
		Type:            input.Type,
		Date:            input.Date,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		JobID:           input.JobID,
		RequiredSkills:  input.RequiredSkills,
		Description:     input.Description,
		MaxEmployees:    input.MaxEmployees,
		BreakDuration:   input.BreakDuration,
		Status:          domain.ShiftStatusOpen,
		AssignedUserIDs: make([]int64, 0),
		ClockRecords:    make([]domain.ClockRecord, 0),
		ChangeRequests:  make([]domain.ClockInChangeRequest, 0),
	}

	if err := utils.ValidateShiftSchedule(shift); err != nil {
		return nil, err
	}

	if _, err := s.store.GetJobByID(input.JobID); err != nil {
		return nil, err
	}

	if err := s.store.CreateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// Pickup assigns the user to the shift's roster. The shift must still be
// open with free capacity, the user must not already be on the roster, and
// the shift must not overlap any of the user's other assigned shifts.
//
// Reaching capacity does not flip the status to full; the status state
// machine never advances automatically.
func (s *Service) Pickup(shiftID, userID int64) (*domain.Shift, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	if shift.Status != domain.ShiftStatusOpen {
		return nil, domain.Conflict("this shift is no longer available")
	}

	if len(shift.AssignedUserIDs) >= int(shift.MaxEmployees) {
		return nil, domain.Conflict("this shift is already full")
	}

	if _, err := s.store.GetUserByID(userID); err != nil {
		return nil, err
	}

	if shift.IsAssigned(userID) {
		return nil, domain.Conflict("you have already picked up this shift")
	}

	existing, err := s.store.GetShiftsByUser(userID)
	if err != nil {
		return nil, err
	}
	if Overlaps(shift, existing) {
		return nil, domain.Conflict("you have another shift that overlaps with this time")
	}

	shift.AssignedUserIDs = append(shift.AssignedUserIDs, userID)

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// Drop removes the user from the roster before the shift has started and
// purges all of the user's clock records and change requests for it.
func (s *Service) Drop(shiftID, userID int64) (*domain.Shift, error) {
	unlock := s.lockShift(shiftID)
	defer unlock()

	shift, err := s.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	if !shift.IsAssigned(userID) {
		return nil, domain.Conflict("you are not assigned to this shift")
	}

	if !s.now().Before(shift.StartTime) {
		return nil, domain.Conflict("cannot drop a shift that has already started")
	}

	shift.AssignedUserIDs = slices.DeleteFunc(shift.AssignedUserIDs, func(id int64) bool {
		return id == userID
	})
	shift.ClockRecords = slices.DeleteFunc(shift.ClockRecords, func(r domain.ClockRecord) bool {
		return r.UserID == userID
	})
	shift.ChangeRequests = slices.DeleteFunc(shift.ChangeRequests, func(r domain.ClockInChangeRequest) bool {
		return r.UserID == userID
	})

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}
