package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ratingServiceFixture struct {
	svc           RatingService
	dbMock        sqlmock.Sqlmock
	bookingStore  *MockBookingStore
	ratingStore   *MockRatingStore
	providerStore *MockProviderStore
}

func newRatingServiceFixture(t *testing.T) *ratingServiceFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bookingStore := new(MockBookingStore)
	ratingStore := new(MockRatingStore)
	providerStore := new(MockProviderStore)

	svc, err := NewRatingService(db, bookingStore, ratingStore, providerStore, testLogger())
	require.NoError(t, err)

	return &ratingServiceFixture{
		svc:           svc,
		dbMock:        dbMock,
		bookingStore:  bookingStore,
		ratingStore:   ratingStore,
		providerStore: providerStore,
	}
}

func TestRatingService_RateBooking(t *testing.T) {
	f := newRatingServiceFixture(t)

	customerID := uuid.New()
	provider := testProvider(t)
	booking := testBooking(t, customerID, provider.ID)
	booking.Status = domain.BookingCompleted

	f.bookingStore.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	f.dbMock.ExpectBegin()
	f.providerStore.On("WithTx", mock.Anything).Return(f.providerStore)
	f.ratingStore.On("WithTx", mock.Anything).Return(f.ratingStore)
	f.providerStore.On("GetByIDForUpdate", mock.Anything, provider.ID).Return(provider, nil)
	f.ratingStore.On("GetByBookingID", mock.Anything, booking.ID).
		Return(nil, store.ErrRatingNotFound)
	f.ratingStore.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Rating")).Return(nil)
	f.ratingStore.On("AverageForProvider", mock.Anything, provider.ID).Return(4.0, nil)
	f.providerStore.On("UpdateAverageRating", mock.Anything, provider.ID, 4.0).Return(nil)
	f.dbMock.ExpectCommit()

	rating, err := f.svc.RateBooking(context.Background(), customerID, booking.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, rating.BookingID)
	assert.Equal(t, provider.ID, rating.ProviderID)
	assert.Equal(t, 4, rating.Value)

	f.ratingStore.AssertExpectations(t)
	f.providerStore.AssertExpectations(t)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestRatingService_RateBooking_OverwriteKeepsStoredRating(t *testing.T) {
	f := newRatingServiceFixture(t)

	customerID := uuid.New()
	provider := testProvider(t)
	booking := testBooking(t, customerID, provider.ID)
	booking.Status = domain.BookingCompleted

	existing, err := domain.NewRating(booking.ID, provider.ID, 2)
	require.NoError(t, err)

	f.bookingStore.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	f.dbMock.ExpectBegin()
	f.providerStore.On("WithTx", mock.Anything).Return(f.providerStore)
	f.ratingStore.On("WithTx", mock.Anything).Return(f.ratingStore)
	f.providerStore.On("GetByIDForUpdate", mock.Anything, provider.ID).Return(provider, nil)
	f.ratingStore.On("GetByBookingID", mock.Anything, booking.ID).Return(existing, nil)
	f.ratingStore.On("Upsert", mock.Anything, mock.MatchedBy(func(r *domain.Rating) bool {
		return r.ID == existing.ID && r.Value == 5
	})).Return(nil)
	f.ratingStore.On("AverageForProvider", mock.Anything, provider.ID).Return(5.0, nil)
	f.providerStore.On("UpdateAverageRating", mock.Anything, provider.ID, 5.0).Return(nil)
	f.dbMock.ExpectCommit()

	rating, err := f.svc.RateBooking(context.Background(), customerID, booking.ID, 5)
	require.NoError(t, err)

	// Re-rating a booking must surface the row that already exists, not a
	// freshly generated identity.
	assert.Equal(t, existing.ID, rating.ID)
	assert.Equal(t, existing.CreatedAt, rating.CreatedAt)
	assert.Equal(t, 5, rating.Value)

	f.ratingStore.AssertExpectations(t)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestRatingService_RateBooking_InvalidValue(t *testing.T) {
	f := newRatingServiceFixture(t)

	for _, value := range []int{0, 6, -3} {
		_, err := f.svc.RateBooking(context.Background(), uuid.New(), uuid.New(), value)
		assert.ErrorIs(t, err, domain.ErrInvalidRatingValue)
	}

	f.bookingStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRatingService_RateBooking_BookingNotFound(t *testing.T) {
	f := newRatingServiceFixture(t)

	bookingID := uuid.New()
	f.bookingStore.On("GetByID", mock.Anything, bookingID).
		Return(nil, store.ErrBookingNotFound)

	_, err := f.svc.RateBooking(context.Background(), uuid.New(), bookingID, 3)
	assert.ErrorIs(t, err, store.ErrBookingNotFound)
}

func TestRatingService_RateBooking_ForeignBooking(t *testing.T) {
	f := newRatingServiceFixture(t)

	booking := testBooking(t, uuid.New(), uuid.New())
	booking.Status = domain.BookingCompleted
	f.bookingStore.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.RateBooking(context.Background(), uuid.New(), booking.ID, 3)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestRatingService_RateBooking_NotCompleted(t *testing.T) {
	notCompleted := []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingConfirmed,
		domain.BookingRejected,
		domain.BookingInProgress,
		domain.BookingCancelled,
	}

	for _, status := range notCompleted {
		t.Run(string(status), func(t *testing.T) {
			f := newRatingServiceFixture(t)

			customerID := uuid.New()
			booking := testBooking(t, customerID, uuid.New())
			booking.Status = status
			f.bookingStore.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

			_, err := f.svc.RateBooking(context.Background(), customerID, booking.ID, 3)
			assert.ErrorIs(t, err, ErrBookingNotCompleted)

			// Nothing may be written when the booking is not completed.
			f.ratingStore.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			assert.NoError(t, f.dbMock.ExpectationsWereMet())
		})
	}
}

func TestRatingService_RateBooking_UpsertFailureRollsBack(t *testing.T) {
	f := newRatingServiceFixture(t)

	customerID := uuid.New()
	provider := testProvider(t)
	booking := testBooking(t, customerID, provider.ID)
	booking.Status = domain.BookingCompleted

	f.bookingStore.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	upsertErr := errors.New("upsert failed")
	f.dbMock.ExpectBegin()
	f.providerStore.On("WithTx", mock.Anything).Return(f.providerStore)
	f.ratingStore.On("WithTx", mock.Anything).Return(f.ratingStore)
	f.providerStore.On("GetByIDForUpdate", mock.Anything, provider.ID).Return(provider, nil)
	f.ratingStore.On("GetByBookingID", mock.Anything, booking.ID).
		Return(nil, store.ErrRatingNotFound)
	f.ratingStore.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Rating")).
		Return(upsertErr)
	f.dbMock.ExpectRollback()

	_, err := f.svc.RateBooking(context.Background(), customerID, booking.ID, 5)
	assert.Error(t, err)

	// The provider's average must not change when the upsert fails.
	f.providerStore.AssertNotCalled(
		t,
		"UpdateAverageRating",
		mock.Anything,
		mock.Anything,
		mock.Anything,
	)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}
