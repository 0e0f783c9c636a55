package postgres

import (
	"context"
	"database/sql"
	"errors"

	"safar/internal/domain"
	"safar/internal/repository"
)

// ApplicationRepository is a PostgreSQL implementation of
// repository.ApplicationRepository.
type ApplicationRepository struct {
	q Querier
}

// NewApplicationRepository creates a new PostgreSQL application repository.
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{q: db}
}

// NewApplicationRepositoryWithTx creates an application repository using a transaction.
func NewApplicationRepositoryWithTx(tx *sql.Tx) *ApplicationRepository {
	return &ApplicationRepository{q: tx}
}

// Create persists a new application.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.DriverApplication) error {
	query := `
		INSERT INTO driver_applications (id, applicant_id, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		app.ID,
		app.ApplicantID,
		app.Status,
		app.Note,
		app.CreatedAt,
		app.UpdatedAt,
	)

	return translateError(err)
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.DriverApplication, error) {
	query := `
		SELECT id, applicant_id, status, note, created_at, updated_at
		FROM driver_applications WHERE id = $1
	`

	var app domain.DriverApplication
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.ApplicantID,
		&app.Status,
		&app.Note,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &app, nil
}

// GetAll retrieves all applications ordered by status, then newest first.
// Pending sorts before approved and denied, so the review queue surfaces
// open applications first.
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*domain.DriverApplication, error) {
	query := `
		SELECT id, applicant_id, status, note, created_at, updated_at
		FROM driver_applications
		ORDER BY CASE status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 ELSE 2 END, created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.DriverApplication
	for rows.Next() {
		var app domain.DriverApplication
		if err := rows.Scan(
			&app.ID,
			&app.ApplicantID,
			&app.Status,
			&app.Note,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}

	return apps, rows.Err()
}

// GetPendingByApplicantID retrieves the applicant's pending application, or
// nil if none exists.
func (r *ApplicationRepository) GetPendingByApplicantID(ctx context.Context, applicantID string) (*domain.DriverApplication, error) {
	query := `
		SELECT id, applicant_id, status, note, created_at, updated_at
		FROM driver_applications
		WHERE applicant_id = $1 AND status = $2
		LIMIT 1
	`

	var app domain.DriverApplication
	err := r.q.QueryRowContext(ctx, query, applicantID, domain.ApplicationStatusPending).Scan(
		&app.ID,
		&app.ApplicantID,
		&app.Status,
		&app.Note,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// Update updates an existing application.
func (r *ApplicationRepository) Update(ctx context.Context, app *domain.DriverApplication) error {
	query := `
		UPDATE driver_applications
		SET status = $1, note = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.q.ExecContext(ctx, query, app.Status, app.Note, app.UpdatedAt, app.ID)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Ensure ApplicationRepository implements repository.ApplicationRepository.
var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
