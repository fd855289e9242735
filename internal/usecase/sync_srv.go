package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncService keeps service-record cached prices, line items, and the quote's
// aggregate total in agreement with the price catalog. Every write path
// recomputes the quote total from the full current item set instead of
// incrementing, so retrying after a partial failure converges to the same
// state. All operations mutate the quote, so callerID must be the owner.
type SyncService interface {
	SyncOne(ctx context.Context, callerID, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID, priceCode string, quantity int) (*response.SyncResponse, error)
	SyncAll(ctx context.Context, callerID, quoteID uuid.UUID) (*response.SyncAllResponse, error)
	RemoveItem(ctx context.Context, callerID, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID) (float64, error)
}

type syncService struct {
	repo    *repository.Repository
	pricing PricingService
	log     *zap.Logger
}

func NewSyncService(repo *repository.Repository, pricing PricingService, log *zap.Logger) SyncService {
	return &syncService{
		repo:    repo,
		pricing: pricing,
		log:     log.With(zap.String("service", "sync")),
	}
}

func (s *syncService) SyncOne(ctx context.Context, callerID, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID, priceCode string, quantity int) (*response.SyncResponse, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	quote, err := s.loadOwnedQuote(ctx, callerID, quoteID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.ServiceRecord.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("load service record %s: %w", serviceID.String(), err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID.String())
	}
	if record.Kind != kind {
		return nil, fmt.Errorf("service record %s is %s, not %s", serviceID.String(), string(record.Kind), string(kind))
	}

	// Resolve first; on failure nothing is mutated. A quote must never show
	// an item priced from a missing code.
	unitPrice, err := s.pricing.Resolve(ctx, kind, priceCode)
	if err != nil {
		return nil, err
	}

	result, err := s.applyItem(ctx, quote.ID, record, priceCode, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	quoteTotal, err := s.recomputeTotal(ctx, quote.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Quote item synchronized",
		zap.String("quote_id", quoteID.String()),
		zap.String("service_kind", string(kind)),
		zap.String("service_id", serviceID.String()),
		zap.Float64("unit_price", unitPrice),
		zap.Float64("quote_total", quoteTotal),
	)

	return &response.SyncResponse{
		ServiceKind: kind,
		ServiceID:   serviceID.String(),
		UnitPrice:   result.UnitPrice,
		LineTotal:   result.TotalPrice,
		QuoteTotal:  quoteTotal,
	}, nil
}

// SyncAll re-resolves every line item of a quote from its service record's
// stored price code. Failures are isolated per item; the quote total is
// recomputed from whatever the items hold afterwards, so a partially failed
// run leaves a consistent (if partially stale) total.
func (s *syncService) SyncAll(ctx context.Context, callerID, quoteID uuid.UUID) (*response.SyncAllResponse, error) {
	quote, err := s.loadOwnedQuote(ctx, callerID, quoteID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.QuoteItem.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load items of quote %s: %w", quoteID.String(), err)
	}

	results := make([]response.SyncItemResult, 0, len(items))
	allSynced := true

	for _, item := range items {
		result := response.SyncItemResult{
			ServiceKind: item.ServiceKind,
			ServiceID:   item.ServiceID.String(),
		}

		updated, err := s.resyncItem(ctx, quote.ID, item)
		if err != nil {
			allSynced = false
			result.Error = err.Error()
			s.log.Warn("Item resync failed",
				zap.Error(err),
				zap.String("quote_id", quoteID.String()),
				zap.String("service_id", item.ServiceID.String()),
			)
		} else {
			result.UnitPrice = updated.UnitPrice
			result.LineTotal = updated.TotalPrice
		}

		results = append(results, result)
	}

	quoteTotal, err := s.recomputeTotal(ctx, quote.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Quote resynchronized",
		zap.String("quote_id", quoteID.String()),
		zap.Int("item_count", len(items)),
		zap.Bool("all_synced", allSynced),
		zap.Float64("quote_total", quoteTotal),
	)

	return &response.SyncAllResponse{
		Items:      results,
		QuoteTotal: quoteTotal,
		AllSynced:  allSynced,
	}, nil
}

func (s *syncService) RemoveItem(ctx context.Context, callerID, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID) (float64, error) {
	if _, err := s.loadOwnedQuote(ctx, callerID, quoteID); err != nil {
		return 0, err
	}

	if err := s.repo.QuoteItem.Delete(ctx, quoteID, kind, serviceID); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	quoteTotal, err := s.recomputeTotal(ctx, quoteID)
	if err != nil {
		return 0, err
	}

	s.log.Info("Quote item removed",
		zap.String("quote_id", quoteID.String()),
		zap.String("service_kind", string(kind)),
		zap.String("service_id", serviceID.String()),
		zap.Float64("quote_total", quoteTotal),
	)

	return quoteTotal, nil
}

// loadOwnedQuote fetches the quote and enforces that the caller owns it.
// Synchronization rewrites prices and totals, so it gets the same ownership
// gate as the quote read path.
func (s *syncService) loadOwnedQuote(ctx context.Context, callerID, quoteID uuid.UUID) (*entity.Quote, error) {
	quote, err := s.repo.Quote.FindByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID.String(), err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID.String())
	}
	if quote.OwnerID != callerID {
		return nil, fmt.Errorf("%w: quote %s", ErrNotQuoteOwner, quoteID.String())
	}
	return quote, nil
}

// resyncItem re-resolves one existing item from its service record's current
// price code, keeping the stored quantity.
func (s *syncService) resyncItem(ctx context.Context, quoteID uuid.UUID, item *entity.QuoteItem) (*entity.QuoteItem, error) {
	record, err := s.repo.ServiceRecord.FindByID(ctx, item.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service record %s: %w", item.ServiceID.String(), err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, item.ServiceID.String())
	}

	unitPrice, err := s.pricing.Resolve(ctx, item.ServiceKind, record.PriceCode)
	if err != nil {
		return nil, err
	}

	return s.applyItem(ctx, quoteID, record, record.PriceCode, unitPrice, item.Quantity)
}

// applyItem writes the resolved price onto the service record and upserts the
// line item keyed by (quote, kind, service).
func (s *syncService) applyItem(ctx context.Context, quoteID uuid.UUID, record *entity.ServiceRecord, priceCode string, unitPrice float64, quantity int) (*entity.QuoteItem, error) {
	if err := s.repo.ServiceRecord.UpdatePricing(ctx, record.ID, priceCode, unitPrice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	now := time.Now()
	item := &entity.QuoteItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		QuoteID:     quoteID,
		ServiceKind: record.Kind,
		ServiceID:   record.ID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice * float64(quantity),
	}

	if err := s.repo.QuoteItem.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return item, nil
}

// recomputeTotal sums all current line items and writes the quote total back.
// Always recompute-from-all, never increment; this is what makes retries
// safe.
func (s *syncService) recomputeTotal(ctx context.Context, quoteID uuid.UUID) (float64, error) {
	items, err := s.repo.QuoteItem.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return 0, fmt.Errorf("load items of quote %s: %w", quoteID.String(), err)
	}

	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}

	if err := s.repo.Quote.UpdateTotalPrice(ctx, quoteID, total); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return total, nil
}
