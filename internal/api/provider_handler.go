package api

import (
	"net/http"
	"strconv"

	"github.com/sohilaahmed2/AlaEltalab/internal/api/middleware"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
)

// ProviderHandler serves the provider directory: the service catalog and
// provider discovery for customers.
type ProviderHandler struct {
	directoryService service.DirectoryService
}

// NewProviderHandler creates a new ProviderHandler with the given dependencies.
func NewProviderHandler(directoryService service.DirectoryService) *ProviderHandler {
	return &ProviderHandler{
		directoryService: directoryService,
	}
}

// Find handles GET /api/providers?service_id=N. Customer only; matching is
// scoped to the customer's own city.
func (h *ProviderHandler) Find(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	serviceID, err := strconv.Atoi(r.URL.Query().Get("service_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing service_id")
		return
	}

	providers, err := h.directoryService.FindProviders(r.Context(), customerID, serviceID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	resp := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		resp = append(resp, NewProviderResponse(p))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Services handles GET /api/services: the fixed service catalog.
func (h *ProviderHandler) Services(w http.ResponseWriter, r *http.Request) {
	catalog := h.directoryService.Services(r.Context())

	resp := make([]ServiceResponse, 0, len(catalog))
	for _, s := range catalog {
		resp = append(resp, ServiceResponse{ID: s.ID, Name: s.Name})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
