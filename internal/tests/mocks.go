package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"safar/internal/domain"
	"safar/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByIDError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.PlateNumber == vehicle.PlateNumber {
			return repository.ErrDuplicate
		}
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, v := range m.vehicles {
		if v.ID != vehicle.ID && v.PlateNumber == vehicle.PlateNumber {
			return repository.ErrDuplicate
		}
	}
	stored := *vehicle
	m.vehicles[vehicle.ID] = &stored
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// ──────────────────────────────────────────────
// MOCK LOCATION REPOSITORY
// ──────────────────────────────────────────────

// MockLocationRepository is a mock implementation of LocationRepository.
type MockLocationRepository struct {
	mu        sync.RWMutex
	locations map[string]*domain.Location

	// IDs that Delete refuses because routes still reference them.
	Referenced map[string]bool

	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockLocationRepository creates a new mock location repository.
func NewMockLocationRepository() *MockLocationRepository {
	return &MockLocationRepository{
		locations:  make(map[string]*domain.Location),
		Referenced: make(map[string]bool),
	}
}

// AddLocation adds a location to the mock repository.
func (m *MockLocationRepository) AddLocation(location *domain.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[location.ID] = location
}

func (m *MockLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.locations {
		if l.Name == location.Name {
			return repository.ErrDuplicate
		}
	}
	m.locations[location.ID] = location
	return nil
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	location, ok := m.locations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *location
	return &copy, nil
}

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]*domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Location, 0, len(m.locations))
	for _, l := range m.locations {
		copy := *l
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.locations[location.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, l := range m.locations {
		if l.ID != location.ID && l.Name == location.Name {
			return repository.ErrDuplicate
		}
	}
	stored := *location
	m.locations[location.ID] = &stored
	return nil
}

func (m *MockLocationRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.locations[id]; !ok {
		return repository.ErrNotFound
	}
	if m.Referenced[id] {
		return repository.ErrReferenced
	}
	delete(m.locations, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK ROUTE REPOSITORY
// ──────────────────────────────────────────────

// MockRouteRepository is a mock implementation of RouteRepository.
type MockRouteRepository struct {
	mu     sync.RWMutex
	routes map[string]*domain.Route

	CreateCallCount int32

	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockRouteRepository creates a new mock route repository.
func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{
		routes: make(map[string]*domain.Route),
	}
}

// AddRoute adds a route to the mock repository.
func (m *MockRouteRepository) AddRoute(route *domain.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.ID] = route
}

func copyRoute(route *domain.Route) *domain.Route {
	copy := *route
	copy.DriverIDs = append([]string(nil), route.DriverIDs...)
	copy.VehicleIDs = append([]string(nil), route.VehicleIDs...)
	return &copy
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.routes {
		if r.PickupID == route.PickupID && r.DropID == route.DropID {
			return repository.ErrDuplicate
		}
	}
	m.routes[route.ID] = copyRoute(route)
	return nil
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	route, ok := m.routes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRoute(route), nil
}

func (m *MockRouteRepository) GetAll(ctx context.Context) ([]*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Route, 0, len(m.routes))
	for _, r := range m.routes {
		result = append(result, copyRoute(r))
	}
	return result, nil
}

func (m *MockRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[route.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, r := range m.routes {
		if r.ID != route.ID && r.PickupID == route.PickupID && r.DropID == route.DropID {
			return repository.ErrDuplicate
		}
	}
	m.routes[route.ID] = copyRoute(route)
	return nil
}

func (m *MockRouteRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.routes, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	CreateCallCount int32
	UpdateCallCount int32

	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *trip
	m.trips[trip.ID] = &stored
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	sortTripsNewestFirst(result)
	return result, nil
}

func (m *MockTripRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0)
	for _, t := range m.trips {
		if t.PassengerID == passengerID {
			copy := *t
			result = append(result, &copy)
		}
	}
	sortTripsNewestFirst(result)
	return result, nil
}

func (m *MockTripRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0)
	for _, t := range m.trips {
		if t.DriverID == driverID {
			copy := *t
			result = append(result, &copy)
		}
	}
	sortTripsNewestFirst(result)
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *trip
	m.trips[trip.ID] = &stored
	return nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

func sortTripsNewestFirst(trips []*domain.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].RequestTime.After(trips[j].RequestTime)
	})
}

// ──────────────────────────────────────────────
// MOCK APPLICATION REPOSITORY
// ──────────────────────────────────────────────

// MockApplicationRepository is a mock implementation of ApplicationRepository.
type MockApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]*domain.DriverApplication

	CreateCallCount int32

	CreateError error
	UpdateError error
}

// NewMockApplicationRepository creates a new mock application repository.
func NewMockApplicationRepository() *MockApplicationRepository {
	return &MockApplicationRepository{
		apps: make(map[string]*domain.DriverApplication),
	}
}

// AddApplication adds an application to the mock repository.
func (m *MockApplicationRepository) AddApplication(app *domain.DriverApplication) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps[app.ID] = app
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *domain.DriverApplication) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *app
	m.apps[app.ID] = &stored
	return nil
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id string) (*domain.DriverApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *app
	return &copy, nil
}

func (m *MockApplicationRepository) GetAll(ctx context.Context) ([]*domain.DriverApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.DriverApplication, 0, len(m.apps))
	for _, a := range m.apps {
		copy := *a
		result = append(result, &copy)
	}
	// Review queue order: pending first, then newest.
	rank := map[domain.ApplicationStatus]int{
		domain.ApplicationStatusPending:  0,
		domain.ApplicationStatusApproved: 1,
		domain.ApplicationStatusDenied:   2,
	}
	sort.Slice(result, func(i, j int) bool {
		if rank[result[i].Status] != rank[result[j].Status] {
			return rank[result[i].Status] < rank[result[j].Status]
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockApplicationRepository) GetPendingByApplicantID(ctx context.Context, applicantID string) (*domain.DriverApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.apps {
		if a.ApplicantID == applicantID && a.Status == domain.ApplicationStatusPending {
			copy := *a
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockApplicationRepository) Update(ctx context.Context, app *domain.DriverApplication) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[app.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *app
	m.apps[app.ID] = &stored
	return nil
}

// GetApplication returns an application for test assertions.
func (m *MockApplicationRepository) GetApplication(id string) *domain.DriverApplication {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.apps[id]
}
