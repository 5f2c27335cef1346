package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// AuthHandler handles registration and login for both account types.
type AuthHandler struct {
	customerStore    store.CustomerStore
	providerStore    store.ProviderStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	customerStore store.CustomerStore,
	providerStore store.ProviderStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		customerStore:    customerStore,
		providerStore:    providerStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
	}
}

// RegisterCustomer handles POST /api/auth/register/customer.
func (h *AuthHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	hashedPassword, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create account")
		return
	}

	customer, err := domain.NewCustomer(req.Name, req.Email, hashedPassword, req.Phone, req.City)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid customer data: "+err.Error())
		return
	}

	if err := h.customerStore.Create(r.Context(), customer); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		slog.Error("failed to create customer", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), customer.ID, auth.RoleCustomer)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "account_id", customer.ID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		AccountID: customer.ID,
		Role:      auth.RoleCustomer,
		Token:     token,
	})
}

// RegisterProvider handles POST /api/auth/register/provider.
func (h *AuthHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req RegisterProviderRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if !domain.ValidServiceID(req.ServiceID) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown service category")
		return
	}

	hashedPassword, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create account")
		return
	}

	provider, err := domain.NewProvider(
		req.Name,
		req.Email,
		hashedPassword,
		req.Phone,
		req.City,
		req.ServiceID,
		req.Price,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid provider data: "+err.Error())
		return
	}

	if err := h.providerStore.Create(r.Context(), provider); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		slog.Error("failed to create provider", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), provider.ID, auth.RoleProvider)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "account_id", provider.ID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		AccountID: provider.ID,
		Role:      auth.RoleProvider,
		Token:     token,
	})
}

// Login handles POST /api/auth/login. The endpoint serves both account
// types: the email is looked up among customers first, then providers.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	accountID, role, hashedPassword, err := h.lookupAccount(r, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
			return
		}
		slog.Error("failed to look up account by email", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	if err := h.passwordVerifier.Compare(hashedPassword, req.Password); err != nil {
		err = service.ErrInvalidCredentials
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), accountID, role)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "account_id", accountID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		AccountID: accountID,
		Role:      role,
		Token:     token,
	})
}

// lookupAccount resolves an email to an account across the two account
// tables. Customers win when the same email exists in both. An email unknown
// to both tables comes back as service.ErrInvalidCredentials so the response
// never reveals which table was missed.
func (h *AuthHandler) lookupAccount(
	r *http.Request,
	email string,
) (uuid.UUID, auth.Role, string, error) {
	customer, err := h.customerStore.GetByEmail(r.Context(), email)
	if err == nil {
		return customer.ID, auth.RoleCustomer, customer.HashedPassword, nil
	}
	if !errors.Is(err, store.ErrCustomerNotFound) {
		return uuid.Nil, "", "", err
	}

	provider, err := h.providerStore.GetByEmail(r.Context(), email)
	if err == nil {
		return provider.ID, auth.RoleProvider, provider.HashedPassword, nil
	}
	if errors.Is(err, store.ErrProviderNotFound) {
		return uuid.Nil, "", "", service.ErrInvalidCredentials
	}
	return uuid.Nil, "", "", err
}
