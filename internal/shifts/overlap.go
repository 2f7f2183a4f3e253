package shifts

import (
	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// Overlaps reports whether the candidate shift's time-of-day range conflicts
// with any of the given shifts, skipping the candidate itself. Ranges are
// half-open, so back-to-back shifts (one ending exactly when the other
// starts) do not overlap.
func Overlaps(candidate *domain.Shift, existing []*domain.Shift) bool {
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if candidate.StartTime.Before(other.EndTime) && other.StartTime.Before(candidate.EndTime) {
			return true
		}
	}
	return false
}
