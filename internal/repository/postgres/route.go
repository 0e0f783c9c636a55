package postgres

import (
	"context"
	"database/sql"
	"errors"

	"safar/internal/domain"
	"safar/internal/repository"
)

// RouteRepository is a PostgreSQL implementation of repository.RouteRepository.
//
// Eligible pools live in route_drivers/route_vehicles join tables carrying an
// explicit position column, so "first eligible" is insertion order rather
// than incidental storage iteration order. The route row and its pool rows
// are written in one transaction; a failed pool insert leaves no route
// behind.
type RouteRepository struct {
	q Querier

	// db is set when the repository owns its connection and must open its
	// own transactions; nil when q is already tx-scoped.
	db *sql.DB
}

// NewRouteRepository creates a new PostgreSQL route repository.
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{q: db, db: db}
}

// NewRouteRepositoryWithTx creates a route repository using a transaction.
func NewRouteRepositoryWithTx(tx *sql.Tx) *RouteRepository {
	return &RouteRepository{q: tx}
}

// inTx runs fn against a tx-scoped repository, committing on success. When
// the repository is already tx-scoped the caller's transaction is reused.
func (r *RouteRepository) inTx(ctx context.Context, fn func(*RouteRepository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(NewRouteRepositoryWithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Create persists a new route with its eligible pools.
func (r *RouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return r.inTx(ctx, func(txr *RouteRepository) error {
		return txr.create(ctx, route)
	})
}

func (r *RouteRepository) create(ctx context.Context, route *domain.Route) error {
	query := `
		INSERT INTO routes (id, pickup_id, drop_id, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		route.ID,
		route.PickupID,
		route.DropID,
		route.Price,
		route.CreatedAt,
		route.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	return r.insertPools(ctx, route)
}

// GetByID retrieves a route with its eligible pools.
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	query := `
		SELECT id, pickup_id, drop_id, price, created_at, updated_at
		FROM routes WHERE id = $1
	`

	var route domain.Route
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&route.ID,
		&route.PickupID,
		&route.DropID,
		&route.Price,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadPools(ctx, &route); err != nil {
		return nil, err
	}

	return &route, nil
}

// GetAll retrieves all routes with their eligible pools.
func (r *RouteRepository) GetAll(ctx context.Context) ([]*domain.Route, error) {
	query := `
		SELECT id, pickup_id, drop_id, price, created_at, updated_at
		FROM routes ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*domain.Route
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(
			&route.ID,
			&route.PickupID,
			&route.DropID,
			&route.Price,
			&route.CreatedAt,
			&route.UpdatedAt,
		); err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, route := range routes {
		if err := r.loadPools(ctx, route); err != nil {
			return nil, err
		}
	}

	return routes, nil
}

// Update updates a route and replaces its eligible pools.
func (r *RouteRepository) Update(ctx context.Context, route *domain.Route) error {
	return r.inTx(ctx, func(txr *RouteRepository) error {
		return txr.update(ctx, route)
	})
}

func (r *RouteRepository) update(ctx context.Context, route *domain.Route) error {
	query := `
		UPDATE routes
		SET pickup_id = $1, drop_id = $2, price = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		route.PickupID,
		route.DropID,
		route.Price,
		route.UpdatedAt,
		route.ID,
	)
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

	if _, err := r.q.ExecContext(ctx, `DELETE FROM route_drivers WHERE route_id = $1`, route.ID); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM route_vehicles WHERE route_id = $1`, route.ID); err != nil {
		return err
	}

	return r.insertPools(ctx, route)
}

// Delete removes a route. Pool rows cascade; trips keep their route FK, so a
// route referenced by trips returns ErrReferenced.
func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
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

func (r *RouteRepository) insertPools(ctx context.Context, route *domain.Route) error {
	for i, driverID := range route.DriverIDs {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO route_drivers (route_id, driver_id, position) VALUES ($1, $2, $3)`,
			route.ID, driverID, i,
		)
		if err != nil {
			return translateError(err)
		}
	}

	for i, vehicleID := range route.VehicleIDs {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO route_vehicles (route_id, vehicle_id, position) VALUES ($1, $2, $3)`,
			route.ID, vehicleID, i,
		)
		if err != nil {
			return translateError(err)
		}
	}

	return nil
}

func (r *RouteRepository) loadPools(ctx context.Context, route *domain.Route) error {
	driverIDs, err := r.poolIDs(ctx,
		`SELECT driver_id FROM route_drivers WHERE route_id = $1 ORDER BY position, driver_id`,
		route.ID,
	)
	if err != nil {
		return err
	}
	route.DriverIDs = driverIDs

	vehicleIDs, err := r.poolIDs(ctx,
		`SELECT vehicle_id FROM route_vehicles WHERE route_id = $1 ORDER BY position, vehicle_id`,
		route.ID,
	)
	if err != nil {
		return err
	}
	route.VehicleIDs = vehicleIDs

	return nil
}

func (r *RouteRepository) poolIDs(ctx context.Context, query, routeID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Ensure RouteRepository implements repository.RouteRepository.
var _ repository.RouteRepository = (*RouteRepository)(nil)
