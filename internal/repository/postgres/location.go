package postgres

import (
	"context"
	"database/sql"
	"errors"

	"safar/internal/domain"
	"safar/internal/repository"
)

// LocationRepository is a PostgreSQL implementation of repository.LocationRepository.
type LocationRepository struct {
	q Querier
}

// NewLocationRepository creates a new PostgreSQL location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{q: db}
}

// NewLocationRepositoryWithTx creates a location repository using a transaction.
func NewLocationRepositoryWithTx(tx *sql.Tx) *LocationRepository {
	return &LocationRepository{q: tx}
}

// Create persists a new location.
func (r *LocationRepository) Create(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.ExecContext(ctx, query,
		location.ID,
		location.Name,
		location.CreatedAt,
		location.UpdatedAt,
	)

	return translateError(err)
}

// GetByID retrieves a location by ID.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM locations WHERE id = $1
	`

	var location domain.Location
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&location.ID,
		&location.Name,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &location, nil
}

// GetAll retrieves all locations ordered by name.
func (r *LocationRepository) GetAll(ctx context.Context) ([]*domain.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM locations ORDER BY name
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.CreatedAt, &location.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, &location)
	}

	return locations, rows.Err()
}

// Update updates an existing location.
func (r *LocationRepository) Update(ctx context.Context, location *domain.Location) error {
	query := `
		UPDATE locations SET name = $1, updated_at = $2 WHERE id = $3
	`

	result, err := r.q.ExecContext(ctx, query, location.Name, location.UpdatedAt, location.ID)
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

// Delete removes a location. The FK from routes is RESTRICT, so deleting a
// location still used by a route returns ErrReferenced.
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
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

// Ensure LocationRepository implements repository.LocationRepository.
var _ repository.LocationRepository = (*LocationRepository)(nil)
