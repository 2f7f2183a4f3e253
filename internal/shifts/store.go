package shifts

import (
	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// Store is the persistence contract the service operates against. Shift
// reads return the whole aggregate (roster and both ledgers) and UpdateShift
// replaces the whole aggregate; unresolved references surface as domain
// not-found errors.
type Store interface {
	CreateShift(shift *domain.Shift) error
	GetShiftByID(id int64) (*domain.Shift, error)
	UpdateShift(shift *domain.Shift) error
	GetShifts(filters domain.ShiftFilters) ([]*domain.Shift, error)
	GetShiftsByUser(userID int64) ([]*domain.Shift, error)
	GetJobByID(id int64) (*domain.Job, error)
	GetUserByID(id int64) (*domain.User, error)
}
