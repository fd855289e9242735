package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service aggregates every use case behind a single handle for wiring.
type Service struct {
	Auth      AuthService
	Quote     QuoteService
	Pricing   PricingService
	Sync      SyncService
	Lifecycle LifecycleService
	Reconcile ReconcileService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	pricing := NewPricingService(repo.Price, log)

	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Quote:     NewQuoteService(repo, log),
		Pricing:   pricing,
		Sync:      NewSyncService(repo, pricing, log),
		Lifecycle: NewLifecycleService(repo.Quote, log),
		Reconcile: NewReconcileService(repo, log),
	}
}
