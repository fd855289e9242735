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

// LifecycleService owns the quote approval state machine:
// draft|pending -> approved, approved -> draft (cancel-approval). Each
// transition is a single conditional row update; a concurrent caller that
// loses the race gets an invalid-transition error instead of silently
// overwriting.
type LifecycleService interface {
	Approve(ctx context.Context, quoteID, approverID uuid.UUID) (*response.QuoteResponse, error)
	CancelApproval(ctx context.Context, quoteID, approverID uuid.UUID, reason *string) (*response.QuoteResponse, error)
}

type lifecycleService struct {
	quotes repository.QuoteRepository
	log    *zap.Logger
}

func NewLifecycleService(quotes repository.QuoteRepository, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		quotes: quotes,
		log:    log.With(zap.String("service", "lifecycle")),
	}
}

func (s *lifecycleService) Approve(ctx context.Context, quoteID, approverID uuid.UUID) (*response.QuoteResponse, error) {
	quote, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID.String(), err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID.String())
	}

	if quote.Status != entity.QuoteStatusDraft && quote.Status != entity.QuoteStatusPending {
		return nil, fmt.Errorf("%w: cannot approve quote in status %s", ErrInvalidTransition, string(quote.Status))
	}

	applied, err := s.quotes.Approve(ctx, quoteID, approverID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if !applied {
		// Status changed between the read and the conditional update.
		return nil, fmt.Errorf("%w: quote %s is no longer approvable", ErrInvalidTransition, quoteID.String())
	}

	s.log.Info("Quote approved",
		zap.String("quote_id", quoteID.String()),
		zap.String("approver_id", approverID.String()),
	)

	return s.reload(ctx, quoteID)
}

// CancelApproval reverts an approved quote to draft. approved_at and
// approved_by keep their last values: the quote stays auditable for who last
// approved it even after the reversal.
func (s *lifecycleService) CancelApproval(ctx context.Context, quoteID, approverID uuid.UUID, reason *string) (*response.QuoteResponse, error) {
	quote, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID.String(), err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID.String())
	}

	if quote.Status != entity.QuoteStatusApproved {
		return nil, fmt.Errorf("%w: cannot cancel approval of quote in status %s", ErrInvalidTransition, string(quote.Status))
	}

	applied, err := s.quotes.CancelApproval(ctx, quoteID, reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: quote %s is no longer approved", ErrInvalidTransition, quoteID.String())
	}

	s.log.Info("Quote approval cancelled",
		zap.String("quote_id", quoteID.String()),
		zap.String("caller_id", approverID.String()),
	)

	return s.reload(ctx, quoteID)
}

func (s *lifecycleService) reload(ctx context.Context, quoteID uuid.UUID) (*response.QuoteResponse, error) {
	quote, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("reload quote %s: %w", quoteID.String(), err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID.String())
	}

	return response.QuoteToResponse(quote, nil), nil
}
