package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/middleware"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
)

// BookingHandler handles booking-related API requests for both roles:
// creation, listing and cancellation by customers, lifecycle transitions by
// providers.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler with the given dependencies.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Create handles POST /api/bookings. Customer only.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	booking, err := h.bookingService.Create(r.Context(), customerID, req.ProviderID, req.ScheduledAt)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewBookingResponse(booking))
}

// List handles GET /api/bookings. The shape of the response depends on the
// caller's role: customers get their bookings with rating values, providers
// get their actionable bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	role, ok := middleware.GetRole(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch role {
	case auth.RoleCustomer:
		bookings, err := h.bookingService.ListForCustomer(r.Context(), accountID)
		if err != nil {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
			return
		}
		resp := make([]BookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, NewCustomerBookingResponse(b))
		}
		shared.RespondWithJSON(w, r, http.StatusOK, resp)

	case auth.RoleProvider:
		bookings, err := h.bookingService.ListForProvider(r.Context(), accountID)
		if err != nil {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
			return
		}
		resp := make([]BookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, NewBookingResponse(b))
		}
		shared.RespondWithJSON(w, r, http.StatusOK, resp)

	default:
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
	}
}

// Cancel handles DELETE /api/bookings/{id}. Customer only. Cancelling a
// booking that is no longer cancellable succeeds without changing anything.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookingID, err := bookingIDFromURL(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	if err := h.bookingService.Cancel(r.Context(), customerID, bookingID); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// Confirm handles POST /api/bookings/{id}/confirm. Provider only.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingService.Confirm)
}

// Reject handles POST /api/bookings/{id}/reject. Provider only.
func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingService.Reject)
}

// Start handles POST /api/bookings/{id}/start. Provider only.
func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingService.Start)
}

// Complete handles POST /api/bookings/{id}/complete. Provider only.
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingService.Complete)
}

// MarkPaid handles POST /api/bookings/{id}/paid. Provider only.
func (h *BookingHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingService.MarkPaid)
}

// transition applies one provider-side lifecycle action and responds with
// the updated booking.
func (h *BookingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error),
) {
	providerID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookingID, err := bookingIDFromURL(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := apply(r.Context(), providerID, bookingID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewBookingResponse(booking))
}

// bookingIDFromURL parses the {id} URL parameter.
func bookingIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
