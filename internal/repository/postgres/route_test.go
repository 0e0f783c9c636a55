package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"safar/internal/domain"
	"safar/internal/repository"
)

func testRoute() *domain.Route {
	now := time.Now()
	return &domain.Route{
		ID:         "route-1",
		PickupID:   "loc-1",
		DropID:     "loc-2",
		Price:      500,
		DriverIDs:  []string{"driver-1"},
		VehicleIDs: []string{"vehicle-1"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestRouteRepository_Create_CommitsRouteAndPoolsTogether(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO routes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO route_drivers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO route_vehicles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRouteRepository(db)
	if err := repo.Create(context.Background(), testRoute()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRouteRepository_Create_RollsBackOnPoolInsertFailure(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO routes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO route_drivers").WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	repo := NewRouteRepository(db)
	err = repo.Create(context.Background(), testRoute())
	if !errors.Is(err, repository.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("route row must roll back with the failed pool insert: %v", err)
	}
}

func TestRouteRepository_Update_RollsBackOnPoolInsertFailure(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE routes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM route_drivers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM route_vehicles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO route_drivers").WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	repo := NewRouteRepository(db)
	err = repo.Update(context.Background(), testRoute())
	if !errors.Is(err, repository.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("cleared pools must roll back with the failed insert: %v", err)
	}
}

func TestRouteRepository_Update_NotFoundRollsBack(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE routes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewRouteRepository(db)
	err = repo.Update(context.Background(), testRoute())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
