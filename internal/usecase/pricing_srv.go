package usecase

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"

	"go.uber.org/zap"
)

// PricingService resolves authoritative unit prices from the per-kind price
// catalog tables. Stateless; a missing code is reported, never defaulted to
// zero.
type PricingService interface {
	Resolve(ctx context.Context, kind entity.ServiceKind, code string) (float64, error)
}

type pricingService struct {
	prices repository.PriceRepository
	log    *zap.Logger
}

func NewPricingService(prices repository.PriceRepository, log *zap.Logger) PricingService {
	return &pricingService{
		prices: prices,
		log:    log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Resolve(ctx context.Context, kind entity.ServiceKind, code string) (float64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownServiceKind, string(kind))
	}
	if code == "" {
		return 0, fmt.Errorf("%w: empty price code for kind %s", ErrPriceNotFound, string(kind))
	}

	price, found, err := s.prices.Lookup(ctx, kind, code)
	if err != nil {
		s.log.Error("Price lookup failed",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("code", code),
		)
		return 0, fmt.Errorf("resolve %s price %s: %w", string(kind), code, err)
	}

	if !found {
		s.log.Warn("Price code has no entry",
			zap.String("kind", string(kind)),
			zap.String("code", code),
		)
		return 0, fmt.Errorf("%w: %s/%s", ErrPriceNotFound, string(kind), code)
	}

	return price, nil
}
