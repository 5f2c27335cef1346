package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRatingService is a mock implementation of service.RatingService for testing
type MockRatingService struct {
	RateBookingFn func(ctx context.Context, customerID, bookingID uuid.UUID, value int) (*domain.Rating, error)
}

func (m *MockRatingService) RateBooking(
	ctx context.Context,
	customerID, bookingID uuid.UUID,
	value int,
) (*domain.Rating, error) {
	if m.RateBookingFn != nil {
		return m.RateBookingFn(ctx, customerID, bookingID, value)
	}
	return nil, nil
}

func TestRatingHandler_Rate(t *testing.T) {
	customerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	providerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	bookingID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	ratingID := uuid.MustParse("55555555-5555-5555-5555-555555555555")

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockRatingService)
		expectedStatus int
		expectedErrMsg string
	}{
		{
			name:        "successful_rating",
			requestBody: RateBookingRequest{Value: 4},
			setupMock: func(ms *MockRatingService) {
				ms.RateBookingFn = func(ctx context.Context, cID, bID uuid.UUID, value int) (*domain.Rating, error) {
					require.Equal(t, customerID, cID)
					require.Equal(t, bookingID, bID)
					require.Equal(t, 4, value)
					return &domain.Rating{
						ID:         ratingID,
						BookingID:  bID,
						ProviderID: providerID,
						Value:      value,
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "value_out_of_range",
			requestBody:    RateBookingRequest{Value: 6},
			setupMock:      func(ms *MockRatingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_request_format",
			requestBody:    `{"value": "five"}`,
			setupMock:      func(ms *MockRatingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid request format",
		},
		{
			name:        "booking_not_completed",
			requestBody: RateBookingRequest{Value: 4},
			setupMock: func(ms *MockRatingService) {
				ms.RateBookingFn = func(ctx context.Context, cID, bID uuid.UUID, value int) (*domain.Rating, error) {
					return nil, service.ErrBookingNotCompleted
				}
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrMsg: "Only completed bookings can be rated",
		},
		{
			name:        "foreign_booking",
			requestBody: RateBookingRequest{Value: 4},
			setupMock: func(ms *MockRatingService) {
				ms.RateBookingFn = func(ctx context.Context, cID, bID uuid.UUID, value int) (*domain.Rating, error) {
					return nil, service.ErrNotOwned
				}
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockRatingService{}
			tt.setupMock(mockService)
			handler := NewRatingHandler(mockService)

			var reqBody []byte
			if str, ok := tt.requestBody.(string); ok {
				reqBody = []byte(str)
			} else {
				var err error
				reqBody, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(
				http.MethodPost,
				"/api/bookings/"+bookingID.String()+"/rating",
				bytes.NewReader(reqBody),
			)
			req = req.WithContext(authedContext(req.Context(), customerID, auth.RoleCustomer))
			req = withBookingID(req, bookingID.String())
			rr := httptest.NewRecorder()

			handler.Rate(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp RatingResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, ratingID, resp.ID)
				assert.Equal(t, bookingID, resp.BookingID)
				assert.Equal(t, providerID, resp.ProviderID)
				assert.Equal(t, 4, resp.Value)
			} else if tt.expectedErrMsg != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
				assert.Contains(t, errResp.Error, tt.expectedErrMsg)
			}
		})
	}
}
