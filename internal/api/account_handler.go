package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/middleware"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// AccountHandler serves the authenticated account's own profile: retrieval,
// updates and account deletion for both roles.
type AccountHandler struct {
	customerStore store.CustomerStore
	providerStore store.ProviderStore
	ratingStore   store.RatingStore
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(
	customerStore store.CustomerStore,
	providerStore store.ProviderStore,
	ratingStore store.RatingStore,
) *AccountHandler {
	return &AccountHandler{
		customerStore: customerStore,
		providerStore: providerStore,
		ratingStore:   ratingStore,
	}
}

// Get handles GET /api/me.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, role, ok := principal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch role {
	case auth.RoleCustomer:
		customer, err := h.customerStore.GetByID(r.Context(), accountID)
		if err != nil {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
			ID:    customer.ID,
			Role:  auth.RoleCustomer,
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
			City:  customer.City,
		})

	case auth.RoleProvider:
		provider, err := h.providerStore.GetByID(r.Context(), accountID)
		if err != nil {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
			return
		}
		resp, err := h.providerProfile(r.Context(), provider)
		if err != nil {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, resp)

	default:
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
	}
}

// Update handles PUT /api/me. The request payload differs by role; the
// service category of a provider is fixed at registration.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, role, ok := principal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch role {
	case auth.RoleCustomer:
		h.updateCustomer(w, r, accountID)
	case auth.RoleProvider:
		h.updateProvider(w, r, accountID)
	default:
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
	}
}

func (h *AccountHandler) updateCustomer(
	w http.ResponseWriter,
	r *http.Request,
	accountID uuid.UUID,
) {
	var req UpdateCustomerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	customer, err := h.customerStore.GetByID(r.Context(), accountID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.City = req.City

	if err := h.customerStore.Update(r.Context(), customer); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		ID:    customer.ID,
		Role:  auth.RoleCustomer,
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
		City:  customer.City,
	})
}

func (h *AccountHandler) updateProvider(
	w http.ResponseWriter,
	r *http.Request,
	accountID uuid.UUID,
) {
	var req UpdateProviderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	provider, err := h.providerStore.GetByID(r.Context(), accountID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	provider.Name = req.Name
	provider.Email = req.Email
	provider.Phone = req.Phone
	provider.City = req.City
	provider.Price = req.Price

	if err := h.providerStore.Update(r.Context(), provider); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	resp, err := h.providerProfile(r.Context(), provider)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// providerProfile assembles a provider's profile response, including how many
// ratings back the stored average.
func (h *AccountHandler) providerProfile(
	ctx context.Context,
	provider *domain.Provider,
) (ProfileResponse, error) {
	count, err := h.ratingStore.CountForProvider(ctx, provider.ID)
	if err != nil {
		return ProfileResponse{}, err
	}

	return ProfileResponse{
		ID:            provider.ID,
		Role:          auth.RoleProvider,
		Name:          provider.Name,
		Email:         provider.Email,
		Phone:         provider.Phone,
		City:          provider.City,
		ServiceID:     &provider.ServiceID,
		Price:         &provider.Price,
		AverageRating: &provider.AverageRating,
		RatingsCount:  &count,
	}, nil
}

// Delete handles DELETE /api/me. Deleting a customer removes their bookings
// and ratings by cascade. Deleting a provider is refused while any of their
// bookings still carries a rating.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, role, ok := principal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var err error
	switch role {
	case auth.RoleCustomer:
		err = h.customerStore.Delete(r.Context(), accountID)
	case auth.RoleProvider:
		err = h.providerStore.Delete(r.Context(), accountID)
	default:
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// principal extracts the authenticated account ID and role.
func principal(r *http.Request) (uuid.UUID, auth.Role, bool) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetRole(r)
	if !ok {
		return uuid.Nil, "", false
	}
	return accountID, role, true
}
