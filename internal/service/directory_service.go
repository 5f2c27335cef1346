package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/logger"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// DirectoryService finds providers for a customer. Matching is scoped to the
// customer's own city; there is no cross-city discovery.
type DirectoryService interface {
	// FindProviders returns providers offering the given service category in
	// the acting customer's city, best-rated first. An empty slice, not an
	// error, is returned when nobody matches.
	// Returns domain.ErrInvalidServiceID for an unknown category and
	// store.ErrCustomerNotFound if the customer does not exist.
	FindProviders(ctx context.Context, customerID uuid.UUID, serviceID int) ([]*domain.Provider, error)

	// Services returns the fixed service catalog.
	Services(ctx context.Context) []domain.Service
}

// directoryService implements DirectoryService.
type directoryService struct {
	customerStore store.CustomerStore
	providerStore store.ProviderStore
	logger        *slog.Logger
}

// Verify interface implementation at compile time.
var _ DirectoryService = (*directoryService)(nil)

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(
	customerStore store.CustomerStore,
	providerStore store.ProviderStore,
	log *slog.Logger,
) (DirectoryService, error) {
	if customerStore == nil {
		return nil, fmt.Errorf("customer store cannot be nil")
	}
	if providerStore == nil {
		return nil, fmt.Errorf("provider store cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &directoryService{
		customerStore: customerStore,
		providerStore: providerStore,
		logger:        log.With(slog.String("component", "directory_service")),
	}, nil
}

// FindProviders implements DirectoryService.FindProviders
func (s *directoryService) FindProviders(
	ctx context.Context,
	customerID uuid.UUID,
	serviceID int,
) ([]*domain.Provider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidServiceID(serviceID) {
		log.Debug("unknown service category requested",
			slog.Int("service_id", serviceID))
		return nil, domain.ErrInvalidServiceID
	}

	customer, err := s.customerStore.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	providers, err := s.providerStore.FindByServiceAndCity(ctx, serviceID, customer.City)
	if err != nil {
		return nil, fmt.Errorf("failed to find providers: %w", err)
	}

	log.Debug("providers matched for customer",
		slog.String("customer_id", customerID.String()),
		slog.Int("service_id", serviceID),
		slog.String("city", customer.City),
		slog.Int("count", len(providers)))
	return providers, nil
}

// Services implements DirectoryService.Services
func (s *directoryService) Services(_ context.Context) []domain.Service {
	catalog := make([]domain.Service, len(domain.ServiceCatalog))
	copy(catalog, domain.ServiceCatalog)
	return catalog
}
