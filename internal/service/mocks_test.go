package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCustomerStore mocks the store.CustomerStore interface
type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	args := m.Called(tx)
	return args.Get(0).(store.CustomerStore)
}

// MockProviderStore mocks the store.ProviderStore interface
type MockProviderStore struct {
	mock.Mock
}

func (m *MockProviderStore) Create(ctx context.Context, provider *domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Provider, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderStore) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderStore) Update(ctx context.Context, provider *domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderStore) UpdateAverageRating(
	ctx context.Context,
	id uuid.UUID,
	average float64,
) error {
	args := m.Called(ctx, id, average)
	return args.Error(0)
}

func (m *MockProviderStore) FindByServiceAndCity(
	ctx context.Context,
	serviceID int,
	city string,
) ([]*domain.Provider, error) {
	args := m.Called(ctx, serviceID, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Provider), args.Error(1)
}

func (m *MockProviderStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProviderStore) WithTx(tx *sql.Tx) store.ProviderStore {
	args := m.Called(tx)
	return args.Get(0).(store.ProviderStore)
}

// MockBookingStore mocks the store.BookingStore interface
type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingStore) ListByCustomer(
	ctx context.Context,
	customerID uuid.UUID,
) ([]*store.CustomerBooking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.CustomerBooking), args.Error(1)
}

func (m *MockBookingStore) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.Booking, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) WithTx(tx *sql.Tx) store.BookingStore {
	args := m.Called(tx)
	return args.Get(0).(store.BookingStore)
}

// MockRatingStore mocks the store.RatingStore interface
type MockRatingStore struct {
	mock.Mock
}

func (m *MockRatingStore) Upsert(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingStore) GetByBookingID(
	ctx context.Context,
	bookingID uuid.UUID,
) (*domain.Rating, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockRatingStore) AverageForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) (float64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRatingStore) CountForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) (int, error) {
	args := m.Called(ctx, providerID)
	return args.Int(0), args.Error(1)
}

func (m *MockRatingStore) WithTx(tx *sql.Tx) store.RatingStore {
	args := m.Called(tx)
	return args.Get(0).(store.RatingStore)
}
