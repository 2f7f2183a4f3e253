package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// CreateShift inserts the shift row together with its roster and ledgers in
// one transaction.
func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (title, type, date, start_date, end_date, start_time, end_time, job_id, required_skills, description, max_employees, break_duration, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`

	args := []any{shift.Title, shift.Type, shift.Date, shift.StartDate, shift.EndDate, shift.StartTime, shift.EndTime, shift.JobID, shift.RequiredSkills, shift.Description, shift.MaxEmployees, shift.BreakDuration, shift.Status}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	if err := insertShiftChildren(ctx, tx, shift); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateShift persists the whole aggregate: the shift row is updated under
// an optimistic version check and the roster and both ledgers are rewritten
// from scratch. Partial (field-level) updates are deliberately not offered.
func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts
		SET
			title = $1,
			type = $2,
			date = $3,
			start_date = $4,
			end_date = $5,
			start_time = $6,
			end_time = $7,
			job_id = $8,
			required_skills = $9,
			description = $10,
			max_employees = $11,
			break_duration = $12,
			status = $13,
			version = version + 1
		WHERE id = $14 AND version = $15
		RETURNING version
	`

	args := []any{shift.Title, shift.Type, shift.Date, shift.StartDate, shift.EndDate, shift.StartTime, shift.EndTime, shift.JobID, shift.RequiredSkills, shift.Description, shift.MaxEmployees, shift.BreakDuration, shift.Status, shift.ID, shift.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Conflict("the shift was modified concurrently, please retry")
		}
		return err
	}

	for _, table := range []string{"shift_assignments", "shift_clock_records", "shift_change_requests"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE shift_id = $1`, table)
		if _, err := tx.ExecContext(ctx, query, shift.ID); err != nil {
			return err
		}
	}

	if err := insertShiftChildren(ctx, tx, shift); err != nil {
		return err
	}

	return tx.Commit()
}

func insertShiftChildren(ctx context.Context, tx *sql.Tx, shift *domain.Shift) error {
	for _, userID := range shift.AssignedUserIDs {
		query := `
			INSERT INTO shift_assignments (shift_id, user_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, shift.ID, userID); err != nil {
			return err
		}
	}

	for _, record := range shift.ClockRecords {
		query := `
			INSERT INTO shift_clock_records (shift_id, user_id, clock_in, clock_out, note)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.ExecContext(ctx, query, shift.ID, record.UserID, record.ClockIn, record.ClockOut, record.Note); err != nil {
			return err
		}
	}

	for _, request := range shift.ChangeRequests {
		query := `
			INSERT INTO shift_change_requests (shift_id, user_id, requested_clock_in, approved)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, shift.ID, request.UserID, request.RequestedClockIn, request.Approved); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT title, type, date, start_date, end_date, start_time, end_time, job_id, required_skills, description, max_employees, break_duration, status, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.Title, &shift.Type, &shift.Date, &shift.StartDate, &shift.EndDate, &shift.StartTime, &shift.EndTime, &shift.JobID, &shift.RequiredSkills, &shift.Description, &shift.MaxEmployees, &shift.BreakDuration, &shift.Status, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("shift not found")
		}
		return nil, err
	}

	if err := r.loadShiftChildren(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) loadShiftChildren(ctx context.Context, shift *domain.Shift) error {
	shift.AssignedUserIDs = make([]int64, 0)
	shift.ClockRecords = make([]domain.ClockRecord, 0)
	shift.ChangeRequests = make([]domain.ClockInChangeRequest, 0)

	query := `
		SELECT user_id FROM shift_assignments WHERE shift_id = $1 ORDER BY user_id
	`
	rows, err := r.dbpool.QueryContext(ctx, query, shift.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		shift.AssignedUserIDs = append(shift.AssignedUserIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT user_id, clock_in, clock_out, note FROM shift_clock_records WHERE shift_id = $1 ORDER BY clock_in
	`
	recordRows, err := r.dbpool.QueryContext(ctx, query, shift.ID)
	if err != nil {
		return err
	}
	defer recordRows.Close()

	for recordRows.Next() {
		record := domain.ClockRecord{}
		note := sql.NullString{}
		if err := recordRows.Scan(&record.UserID, &record.ClockIn, &record.ClockOut, &note); err != nil {
			return err
		}
		record.Note = note.String
		shift.ClockRecords = append(shift.ClockRecords, record)
	}
	if err := recordRows.Err(); err != nil {
		return err
	}

	query = `
		SELECT user_id, requested_clock_in, approved FROM shift_change_requests WHERE shift_id = $1 ORDER BY requested_clock_in
	`
	requestRows, err := r.dbpool.QueryContext(ctx, query, shift.ID)
	if err != nil {
		return err
	}
	defer requestRows.Close()

	for requestRows.Next() {
		request := domain.ClockInChangeRequest{}
		approved := sql.NullBool{}
		if err := requestRows.Scan(&request.UserID, &request.RequestedClockIn, &approved); err != nil {
			return err
		}
		if approved.Valid {
			request.Approved = &approved.Bool
		}
		shift.ChangeRequests = append(shift.ChangeRequests, request)
	}
	return requestRows.Err()
}

func (r *Repository) GetShifts(filters domain.ShiftFilters) ([]*domain.Shift, error) {
	conditions := []string{}
	args := []any{}

	if filters.Date != nil {
		args = append(args, *filters.Date)
		conditions = append(conditions, fmt.Sprintf("DATE(date) = DATE($%d)", len(args)))
	}
	if filters.Type != "" {
		args = append(args, filters.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filters.JobID != 0 {
		args = append(args, filters.JobID)
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `
		SELECT id, title, type, date, start_date, end_date, start_time, end_time, job_id, required_skills, description, max_employees, break_duration, status, created_at, version
		FROM shifts
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, start_time"

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.queryShifts(ctx, query, args...)
}

func (r *Repository) GetShiftsByUser(userID int64) ([]*domain.Shift, error) {
	query := `
		SELECT s.id, s.title, s.type, s.date, s.start_date, s.end_date, s.start_time, s.end_time, s.job_id, s.required_skills, s.description, s.max_employees, s.break_duration, s.status, s.created_at, s.version
		FROM shifts s
		JOIN shift_assignments sa ON sa.shift_id = s.id
		WHERE sa.user_id = $1
		ORDER BY s.date DESC, s.start_time
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.queryShifts(ctx, query, userID)
}

func (r *Repository) queryShifts(ctx context.Context, query string, args ...any) ([]*domain.Shift, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Title, &shift.Type, &shift.Date, &shift.StartDate, &shift.EndDate, &shift.StartTime, &shift.EndTime, &shift.JobID, &shift.RequiredSkills, &shift.Description, &shift.MaxEmployees, &shift.BreakDuration, &shift.Status, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if err := r.loadShiftChildren(ctx, shift); err != nil {
			return nil, err
		}
	}

	return shifts, nil
}
