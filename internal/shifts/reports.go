package shifts

import (
	"sort"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

type TimeEntry struct {
	ShiftID  int64      `json:"shiftID"`
	Title    string     `json:"title"`
	Type     string     `json:"type"`
	Date     *time.Time `json:"date,omitempty"`
	ClockIn  time.Time  `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut,omitempty"`
	Duration int        `json:"duration"` // minutes
	Note     string     `json:"note,omitempty"`
}

type TimeSummary struct {
	TotalHours   int         `json:"totalHours"`
	TotalMinutes int         `json:"totalMinutes"`
	Entries      []TimeEntry `json:"entries"`
}

type ClockInStatus struct {
	ShiftID     int64     `json:"shiftID"`
	ClockInTime time.Time `json:"clockInTime"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
}

func (s *Service) List(filters domain.ShiftFilters) ([]*domain.Shift, error) {
	return s.store.GetShifts(filters)
}

// Available lists open shifts with free roster capacity, optionally
// restricted to a calendar date and to shifts starting at or after a time.
func (s *Service) Available(date *time.Time, startAfter *time.Time) ([]*domain.Shift, error) {
	all, err := s.store.GetShifts(domain.ShiftFilters{Status: domain.ShiftStatusOpen, Date: date})
	if err != nil {
		return nil, err
	}

	available := make([]*domain.Shift, 0)
	for _, shift := range all {
		if len(shift.AssignedUserIDs) >= int(shift.MaxEmployees) {
			continue
		}
		if startAfter != nil && shift.StartTime.Before(*startAfter) {
			continue
		}
		available = append(available, shift)
	}

	return available, nil
}

func (s *Service) UserShifts(userID int64) ([]*domain.Shift, error) {
	if _, err := s.store.GetUserByID(userID); err != nil {
		return nil, err
	}
	return s.store.GetShiftsByUser(userID)
}

func (s *Service) TodayShifts() ([]*domain.Shift, error) {
	today := s.today()
	return s.store.GetShifts(domain.ShiftFilters{Date: &today})
}

// CurrentClockInStatus returns the user's open clock session among today's
// shifts, or nil if the user is not clocked in anywhere.
func (s *Service) CurrentClockInStatus(userID int64) (*ClockInStatus, error) {
	userShifts, err := s.store.GetShiftsByUser(userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	for _, shift := range userShifts {
		if !sameDay(shift.Date, today) {
			continue
		}
		if record := shift.ActiveClockRecord(userID); record != nil {
			return &ClockInStatus{
				ShiftID:     shift.ID,
				ClockInTime: record.ClockIn,
				Title:       shift.Title,
				Type:        shift.Type,
			}, nil
		}
	}

	return nil, nil
}

// TodayTimeSummary totals the user's clocked time across today's shifts.
// Open records count up to the current time.
func (s *Service) TodayTimeSummary(userID int64) (*TimeSummary, error) {
	userShifts, err := s.store.GetShiftsByUser(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := s.today()
	totalMinutes := 0
	entries := make([]TimeEntry, 0)

	for _, shift := range userShifts {
		if !sameDay(shift.Date, today) {
			continue
		}
		for _, record := range shift.ClockRecords {
			if record.UserID != userID {
				continue
			}
			end := now
			if record.ClockOut != nil {
				end = *record.ClockOut
			}
			minutes := int(end.Sub(record.ClockIn).Minutes())
			totalMinutes += minutes
			entries = append(entries, TimeEntry{
				ShiftID:  shift.ID,
				Title:    shift.Title,
				Type:     shift.Type,
				ClockIn:  record.ClockIn,
				ClockOut: record.ClockOut,
				Duration: minutes,
				Note:     record.Note,
			})
		}
	}

	return &TimeSummary{
		TotalHours:   totalMinutes / 60,
		TotalMinutes: totalMinutes % 60,
		Entries:      entries,
	}, nil
}

// RecentTimeEntries lists the user's most recent completed clock records,
// newest first. Open records are excluded.
func (s *Service) RecentTimeEntries(userID int64, limit int) ([]TimeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	userShifts, err := s.store.GetShiftsByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]TimeEntry, 0)
	for _, shift := range userShifts {
		for _, record := range shift.ClockRecords {
			if record.UserID != userID || record.ClockOut == nil {
				continue
			}
			date := shift.Date
			entries = append(entries, TimeEntry{
				ShiftID:  shift.ID,
				Title:    shift.Title,
				Type:     shift.Type,
				Date:     &date,
				ClockIn:  record.ClockIn,
				ClockOut: record.ClockOut,
				Duration: int(record.ClockOut.Sub(record.ClockIn).Minutes()),
				Note:     record.Note,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ClockIn.After(entries[j].ClockIn)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func (s *Service) today() time.Time {
	year, month, day := s.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, s.now().Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
