package shifts

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/geo"
)

// memStore is an in-memory Store for the service tests. It hands out deep
// copies so the tests catch any mutation the service forgets to persist
// through UpdateShift.
type memStore struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	jobs   map[int64]*domain.Job
	shifts map[int64]*domain.Shift
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[int64]*domain.User),
		jobs:   make(map[int64]*domain.Job),
		shifts: make(map[int64]*domain.Shift),
	}
}

func cloneShift(s *domain.Shift) *domain.Shift {
	c := *s
	c.AssignedUserIDs = slices.Clone(s.AssignedUserIDs)
	c.ClockRecords = make([]domain.ClockRecord, len(s.ClockRecords))
	for i, r := range s.ClockRecords {
		if r.ClockOut != nil {
			out := *r.ClockOut
			r.ClockOut = &out
		}
		c.ClockRecords[i] = r
	}
	c.ChangeRequests = make([]domain.ClockInChangeRequest, len(s.ChangeRequests))
	for i, r := range s.ChangeRequests {
		if r.Approved != nil {
			v := *r.Approved
			r.Approved = &v
		}
		c.ChangeRequests[i] = r
	}
	return &c
}

func (m *memStore) CreateShift(shift *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	shift.ID = m.nextID
	m.shifts[shift.ID] = cloneShift(shift)
	return nil
}

func (m *memStore) GetShiftByID(id int64) (*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shift, exists := m.shifts[id]
	if !exists {
		return nil, domain.NotFound("shift not found")
	}
	return cloneShift(shift), nil
}

func (m *memStore) UpdateShift(shift *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.shifts[shift.ID]; !exists {
		return domain.NotFound("shift not found")
	}
	m.shifts[shift.ID] = cloneShift(shift)
	return nil
}

func (m *memStore) GetShifts(filters domain.ShiftFilters) ([]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Shift, 0)
	for _, shift := range m.shifts {
		if filters.Date != nil && !sameDay(shift.Date, *filters.Date) {
			continue
		}
		if filters.Type != "" && shift.Type != filters.Type {
			continue
		}
		if filters.JobID != 0 && shift.JobID != filters.JobID {
			continue
		}
		if filters.Status != "" && shift.Status != filters.Status {
			continue
		}
		result = append(result, cloneShift(shift))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) GetShiftsByUser(userID int64) ([]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Shift, 0)
	for _, shift := range m.shifts {
		if shift.IsAssigned(userID) {
			result = append(result, cloneShift(shift))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) GetJobByID(id int64) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[id]
	if !exists {
		return nil, domain.NotFound("job not found")
	}
	cp := *job
	return &cp, nil
}

func (m *memStore) GetUserByID(id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return nil, domain.NotFound("user not found")
	}
	cp := *user
	return &cp, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// siteCenter matches the coordinates of the seeded jobs; the points used by
// the clock-in tests are offsets from it.
var siteCenter = geo.Point{Lat: 40.712776, Lon: -74.005974}

type testEnv struct {
	store *memStore
	svc   *Service
	clock *fakeClock
}

// newTestEnv seeds two jobs (one with a 30m geofence, one relying on the
// default radius) and two employees, with the clock at 08:45 on 2026-03-10.
func newTestEnv() *testEnv {
	store := newMemStore()
	store.jobs[1] = &domain.Job{
		ID:    1,
		Title: "Downtown Warehouse",
		Location: domain.JobLocation{
			Lat:    siteCenter.Lat,
			Lon:    siteCenter.Lon,
			Radius: 30,
		},
	}
	store.jobs[2] = &domain.Job{
		ID:    2,
		Title: "Airport Catering",
		Location: domain.JobLocation{
			Lat: siteCenter.Lat,
			Lon: siteCenter.Lon,
		},
	}
	store.users[1] = &domain.User{ID: 1, Username: "alice.gray", FullName: "Alice Gray", Role: domain.RoleEmployee, IsActive: true}
	store.users[2] = &domain.User{ID: 2, Username: "ben.ortiz", FullName: "Ben Ortiz", Role: domain.RoleEmployee, IsActive: true}

	clock := &fakeClock{now: time.Date(2026, 3, 10, 8, 45, 0, 0, time.UTC)}
	svc := NewService(store, Options{Now: clock.Now})

	return &testEnv{store: store, svc: svc, clock: clock}
}

// seedShift inserts a shift directly into the store, bypassing Create, so the
// tests can set up arbitrary rosters and ledgers.
func (e *testEnv) seedShift(shift *domain.Shift) *domain.Shift {
	if shift.Status == "" {
		shift.Status = domain.ShiftStatusOpen
	}
	if shift.JobID == 0 {
		shift.JobID = 1
	}
	if shift.MaxEmployees == 0 {
		shift.MaxEmployees = 3
	}
	if shift.Date.IsZero() {
		shift.Date = time.Date(shift.StartTime.Year(), shift.StartTime.Month(), shift.StartTime.Day(), 0, 0, 0, 0, shift.StartTime.Location())
	}
	if shift.StartDate.IsZero() {
		shift.StartDate = shift.Date
	}
	if shift.EndDate.IsZero() {
		shift.EndDate = shift.Date
	}
	if err := e.store.CreateShift(shift); err != nil {
		panic(err)
	}
	return shift
}

// morningShift is a 09:00-17:00 shift on the fixture day.
func (e *testEnv) morningShift() *domain.Shift {
	return e.seedShift(&domain.Shift{
		Title:     "Warehouse morning",
		Type:      "morning",
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
	})
}
