package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockBookingService is a mock implementation of service.BookingService for testing
type MockBookingService struct {
	CreateFn          func(ctx context.Context, customerID, providerID uuid.UUID, scheduledAt time.Time) (*domain.Booking, error)
	ConfirmFn         func(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)
	RejectFn          func(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)
	StartFn           func(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)
	CompleteFn        func(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)
	MarkPaidFn        func(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)
	CancelFn          func(ctx context.Context, customerID, bookingID uuid.UUID) error
	ListForCustomerFn func(ctx context.Context, customerID uuid.UUID) ([]*store.CustomerBooking, error)
	ListForProviderFn func(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error)
}

func (m *MockBookingService) Create(
	ctx context.Context,
	customerID, providerID uuid.UUID,
	scheduledAt time.Time,
) (*domain.Booking, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, customerID, providerID, scheduledAt)
	}
	return nil, nil
}

func (m *MockBookingService) Confirm(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	if m.ConfirmFn != nil {
		return m.ConfirmFn(ctx, providerID, bookingID)
	}
	return nil, nil
}

func (m *MockBookingService) Reject(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	if m.RejectFn != nil {
		return m.RejectFn(ctx, providerID, bookingID)
	}
	return nil, nil
}

func (m *MockBookingService) Start(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	if m.StartFn != nil {
		return m.StartFn(ctx, providerID, bookingID)
	}
	return nil, nil
}

func (m *MockBookingService) Complete(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, providerID, bookingID)
	}
	return nil, nil
}

func (m *MockBookingService) MarkPaid(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, providerID, bookingID)
	}
	return nil, nil
}

func (m *MockBookingService) Cancel(ctx context.Context, customerID, bookingID uuid.UUID) error {
	if m.CancelFn != nil {
		return m.CancelFn(ctx, customerID, bookingID)
	}
	return nil
}

func (m *MockBookingService) ListForCustomer(
	ctx context.Context,
	customerID uuid.UUID,
) ([]*store.CustomerBooking, error) {
	if m.ListForCustomerFn != nil {
		return m.ListForCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (m *MockBookingService) ListForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.Booking, error) {
	if m.ListForProviderFn != nil {
		return m.ListForProviderFn(ctx, providerID)
	}
	return nil, nil
}

// authedContext seeds the request context the way AuthMiddleware would.
func authedContext(ctx context.Context, accountID uuid.UUID, role auth.Role) context.Context {
	ctx = context.WithValue(ctx, shared.AccountIDContextKey, accountID)
	return context.WithValue(ctx, shared.RoleContextKey, role)
}

// withBookingID attaches a chi route context carrying the {id} parameter.
func withBookingID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func fixedBooking(customerID, providerID uuid.UUID) *domain.Booking {
	fixedTime := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		CustomerID:    customerID,
		ProviderID:    providerID,
		ScheduledAt:   fixedTime.Add(48 * time.Hour),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentNotPaid,
		CreatedAt:     fixedTime,
		UpdatedAt:     fixedTime,
	}
}

func TestBookingHandler_Create(t *testing.T) {
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	scheduledAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	tests := []struct {
		name           string
		setupContext   func(context.Context) context.Context
		requestBody    interface{}
		setupMock      func(*MockBookingService)
		expectedStatus int
		expectedErrMsg string
	}{
		{
			name: "successful_creation",
			setupContext: func(ctx context.Context) context.Context {
				return authedContext(ctx, customerID, auth.RoleCustomer)
			},
			requestBody: CreateBookingRequest{
				ProviderID:  providerID,
				ScheduledAt: scheduledAt,
			},
			setupMock: func(ms *MockBookingService) {
				ms.CreateFn = func(ctx context.Context, cID, pID uuid.UUID, at time.Time) (*domain.Booking, error) {
					require.Equal(t, customerID, cID)
					require.Equal(t, providerID, pID)
					b := fixedBooking(cID, pID)
					b.ScheduledAt = at
					return b, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_account_id",
			setupContext:   func(ctx context.Context) context.Context { return ctx },
			requestBody:    CreateBookingRequest{ProviderID: providerID, ScheduledAt: scheduledAt},
			setupMock:      func(ms *MockBookingService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedErrMsg: "Authentication required",
		},
		{
			name: "invalid_request_format",
			setupContext: func(ctx context.Context) context.Context {
				return authedContext(ctx, customerID, auth.RoleCustomer)
			},
			requestBody:    `{"provider_id": not json`,
			setupMock:      func(ms *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid request format",
		},
		{
			name: "missing_scheduled_at",
			setupContext: func(ctx context.Context) context.Context {
				return authedContext(ctx, customerID, auth.RoleCustomer)
			},
			requestBody:    CreateBookingRequest{ProviderID: providerID},
			setupMock:      func(ms *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_provider",
			setupContext: func(ctx context.Context) context.Context {
				return authedContext(ctx, customerID, auth.RoleCustomer)
			},
			requestBody: CreateBookingRequest{ProviderID: providerID, ScheduledAt: scheduledAt},
			setupMock: func(ms *MockBookingService) {
				ms.CreateFn = func(ctx context.Context, cID, pID uuid.UUID, at time.Time) (*domain.Booking, error) {
					return nil, store.ErrProviderNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedErrMsg: "Provider not found",
		},
		{
			name: "date_in_past",
			setupContext: func(ctx context.Context) context.Context {
				return authedContext(ctx, customerID, auth.RoleCustomer)
			},
			requestBody: CreateBookingRequest{ProviderID: providerID, ScheduledAt: scheduledAt},
			setupMock: func(ms *MockBookingService) {
				ms.CreateFn = func(ctx context.Context, cID, pID uuid.UUID, at time.Time) (*domain.Booking, error) {
					return nil, domain.ErrBookingDateInPast
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Booking date cannot be in the past",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingService{}
			tt.setupMock(mockService)
			handler := NewBookingHandler(mockService)

			var reqBody []byte
			if str, ok := tt.requestBody.(string); ok {
				reqBody = []byte(str)
			} else {
				var err error
				reqBody, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(reqBody))
			req = req.WithContext(tt.setupContext(req.Context()))
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp BookingResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, customerID, resp.CustomerID)
				assert.Equal(t, providerID, resp.ProviderID)
				assert.Equal(t, string(domain.BookingPending), resp.Status)
				assert.Equal(t, string(domain.PaymentNotPaid), resp.PaymentStatus)
			} else if tt.expectedErrMsg != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
				assert.Contains(t, errResp.Error, tt.expectedErrMsg)
			}
		})
	}
}

func TestBookingHandler_Transitions(t *testing.T) {
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	booking := fixedBooking(customerID, providerID)

	tests := []struct {
		name       string
		path       string
		invoke     func(*BookingHandler, http.ResponseWriter, *http.Request)
		setupMock  func(*MockBookingService, *bool)
		wantStatus string
	}{
		{
			name:   "confirm",
			path:   "/api/bookings/" + booking.ID.String() + "/confirm",
			invoke: (*BookingHandler).Confirm,
			setupMock: func(ms *MockBookingService, called *bool) {
				ms.ConfirmFn = func(ctx context.Context, pID, bID uuid.UUID) (*domain.Booking, error) {
					*called = true
					b := *booking
					b.Status = domain.BookingConfirmed
					return &b, nil
				}
			},
			wantStatus: string(domain.BookingConfirmed),
		},
		{
			name:   "reject",
			path:   "/api/bookings/" + booking.ID.String() + "/reject",
			invoke: (*BookingHandler).Reject,
			setupMock: func(ms *MockBookingService, called *bool) {
				ms.RejectFn = func(ctx context.Context, pID, bID uuid.UUID) (*domain.Booking, error) {
					*called = true
					b := *booking
					b.Status = domain.BookingRejected
					return &b, nil
				}
			},
			wantStatus: string(domain.BookingRejected),
		},
		{
			name:   "start",
			path:   "/api/bookings/" + booking.ID.String() + "/start",
			invoke: (*BookingHandler).Start,
			setupMock: func(ms *MockBookingService, called *bool) {
				ms.StartFn = func(ctx context.Context, pID, bID uuid.UUID) (*domain.Booking, error) {
					*called = true
					b := *booking
					b.Status = domain.BookingInProgress
					return &b, nil
				}
			},
			wantStatus: string(domain.BookingInProgress),
		},
		{
			name:   "complete",
			path:   "/api/bookings/" + booking.ID.String() + "/complete",
			invoke: (*BookingHandler).Complete,
			setupMock: func(ms *MockBookingService, called *bool) {
				ms.CompleteFn = func(ctx context.Context, pID, bID uuid.UUID) (*domain.Booking, error) {
					*called = true
					b := *booking
					b.Status = domain.BookingCompleted
					return &b, nil
				}
			},
			wantStatus: string(domain.BookingCompleted),
		},
		{
			name:   "mark_paid",
			path:   "/api/bookings/" + booking.ID.String() + "/paid",
			invoke: (*BookingHandler).MarkPaid,
			setupMock: func(ms *MockBookingService, called *bool) {
				ms.MarkPaidFn = func(ctx context.Context, pID, bID uuid.UUID) (*domain.Booking, error) {
					*called = true
					b := *booking
					b.PaymentStatus = domain.PaymentPaid
					return &b, nil
				}
			},
			wantStatus: string(domain.BookingPending),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingService{}
			called := false
			tt.setupMock(mockService, &called)
			handler := NewBookingHandler(mockService)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req = req.WithContext(authedContext(req.Context(), providerID, auth.RoleProvider))
			req = withBookingID(req, booking.ID.String())
			rr := httptest.NewRecorder()

			tt.invoke(handler, rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.True(t, called, "service method should have been invoked")

			var resp BookingResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestBookingHandler_Transition_ForeignBooking(t *testing.T) {
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	bookingID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	mockService := &MockBookingService{
		ConfirmFn: func(ctx context.Context, pID, bID uuid.UUID) (*domain.Booking, error) {
			return nil, service.ErrNotOwned
		},
	}
	handler := NewBookingHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+bookingID.String()+"/confirm", nil)
	req = req.WithContext(authedContext(req.Context(), providerID, auth.RoleProvider))
	req = withBookingID(req, bookingID.String())
	rr := httptest.NewRecorder()

	handler.Confirm(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestBookingHandler_Transition_InvalidID(t *testing.T) {
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	handler := NewBookingHandler(&MockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/not-a-uuid/confirm", nil)
	req = req.WithContext(authedContext(req.Context(), providerID, auth.RoleProvider))
	req = withBookingID(req, "not-a-uuid")
	rr := httptest.NewRecorder()

	handler.Confirm(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingHandler_Cancel(t *testing.T) {
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bookingID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	cancelled := false
	mockService := &MockBookingService{
		CancelFn: func(ctx context.Context, cID, bID uuid.UUID) error {
			cancelled = true
			assert.Equal(t, customerID, cID)
			assert.Equal(t, bookingID, bID)
			return nil
		},
	}
	handler := NewBookingHandler(mockService)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+bookingID.String(), nil)
	req = req.WithContext(authedContext(req.Context(), customerID, auth.RoleCustomer))
	req = withBookingID(req, bookingID.String())
	rr := httptest.NewRecorder()

	handler.Cancel(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, cancelled)
	assert.Empty(t, rr.Body.Bytes())
}

func TestBookingHandler_Cancel_NotFound(t *testing.T) {
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bookingID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	mockService := &MockBookingService{
		CancelFn: func(ctx context.Context, cID, bID uuid.UUID) error {
			return store.ErrBookingNotFound
		},
	}
	handler := NewBookingHandler(mockService)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+bookingID.String(), nil)
	req = req.WithContext(authedContext(req.Context(), customerID, auth.RoleCustomer))
	req = withBookingID(req, bookingID.String())
	rr := httptest.NewRecorder()

	handler.Cancel(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBookingHandler_List_CustomerIncludesRatings(t *testing.T) {
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	rated := fixedBooking(customerID, providerID)
	rated.Status = domain.BookingCompleted
	unrated := fixedBooking(customerID, providerID)
	unrated.ID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	value := 5

	mockService := &MockBookingService{
		ListForCustomerFn: func(ctx context.Context, cID uuid.UUID) ([]*store.CustomerBooking, error) {
			return []*store.CustomerBooking{
				{Booking: *rated, RatingValue: &value},
				{Booking: *unrated},
			}, nil
		},
	}
	handler := NewBookingHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req = req.WithContext(authedContext(req.Context(), customerID, auth.RoleCustomer))
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.NotNil(t, resp[0].RatingValue)
	assert.Equal(t, 5, *resp[0].RatingValue)
	assert.Nil(t, resp[1].RatingValue)
}

func TestBookingHandler_List_Provider(t *testing.T) {
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	booking := fixedBooking(customerID, providerID)

	mockService := &MockBookingService{
		ListForProviderFn: func(ctx context.Context, pID uuid.UUID) ([]*domain.Booking, error) {
			assert.Equal(t, providerID, pID)
			return []*domain.Booking{booking}, nil
		},
	}
	handler := NewBookingHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req = req.WithContext(authedContext(req.Context(), providerID, auth.RoleProvider))
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, booking.ID, resp[0].ID)
}
