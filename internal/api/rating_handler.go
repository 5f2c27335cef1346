package api

import (
	"net/http"

	"github.com/sohilaahmed2/AlaEltalab/internal/api/middleware"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
)

// RatingHandler handles rating submissions for completed bookings.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new RatingHandler with the given dependencies.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// Rate handles POST /api/bookings/{id}/rating. Customer only. Submitting a
// rating for an already-rated booking overwrites the previous value.
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
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

	var req RateBookingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	rating, err := h.ratingService.RateBooking(r.Context(), customerID, bookingID, req.Value)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RatingResponse{
		ID:         rating.ID,
		BookingID:  rating.BookingID,
		ProviderID: rating.ProviderID,
		Value:      rating.Value,
	})
}
