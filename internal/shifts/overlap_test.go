package shifts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

func shiftAt(id int64, start, end time.Time) *domain.Shift {
	return &domain.Shift{ID: id, StartTime: start, EndTime: end}
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	candidate := shiftAt(1, at(9), at(13))

	cases := []struct {
		name     string
		existing []*domain.Shift
		want     bool
	}{
		{"no other shifts", nil, false},
		{"disjoint earlier", []*domain.Shift{shiftAt(2, at(5), at(8))}, false},
		{"disjoint later", []*domain.Shift{shiftAt(2, at(14), at(18))}, false},
		{"back to back before", []*domain.Shift{shiftAt(2, at(5), at(9))}, false},
		{"back to back after", []*domain.Shift{shiftAt(2, at(13), at(17))}, false},
		{"partial overlap at start", []*domain.Shift{shiftAt(2, at(8), at(10))}, true},
		{"partial overlap at end", []*domain.Shift{shiftAt(2, at(12), at(15))}, true},
		{"fully contained", []*domain.Shift{shiftAt(2, at(10), at(12))}, true},
		{"fully containing", []*domain.Shift{shiftAt(2, at(8), at(14))}, true},
		{"identical interval", []*domain.Shift{shiftAt(2, at(9), at(13))}, true},
		{"candidate itself is skipped", []*domain.Shift{shiftAt(1, at(9), at(13))}, false},
		{"one of many overlaps", []*domain.Shift{shiftAt(2, at(5), at(8)), shiftAt(3, at(12), at(15))}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(candidate, tc.existing))
		})
	}
}
