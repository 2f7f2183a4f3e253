package repository

import (
	"database/sql"
	"errors"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) CreateJob(job *domain.Job) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO jobs (title, description, phone, email, lat, lon, radius, address, color_code, code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	args := []any{job.Title, job.Description, job.Phone, job.Email, job.Location.Lat, job.Location.Lon, job.Location.Radius, job.Location.Address, job.ColorCode, job.Code}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt, &job.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	query := `
		SELECT title, description, phone, email, lat, lon, radius, address, color_code, code, created_at, version
		FROM jobs WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	job := &domain.Job{
		ID: id,
	}

	dst := []any{&job.Title, &job.Description, &job.Phone, &job.Email, &job.Location.Lat, &job.Location.Lon, &job.Location.Radius, &job.Location.Address, &job.ColorCode, &job.Code, &job.CreatedAt, &job.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("job not found")
		}
		return nil, err
	}

	return job, nil
}

func (r *Repository) GetAllJobs() ([]*domain.Job, error) {
	query := `
		SELECT id, title, description, phone, email, lat, lon, radius, address, color_code, code, created_at, version
		FROM jobs ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		dst := []any{&job.ID, &job.Title, &job.Description, &job.Phone, &job.Email, &job.Location.Lat, &job.Location.Lon, &job.Location.Radius, &job.Location.Address, &job.ColorCode, &job.Code, &job.CreatedAt, &job.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
