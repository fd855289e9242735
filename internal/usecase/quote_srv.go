package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuoteService interface {
	CreateQuote(ctx context.Context, ownerID string, req *request.CreateQuoteRequest) (*response.QuoteResponse, error)
	GetQuote(ctx context.Context, callerID, quoteID string) (*response.QuoteResponse, error)
	ListQuotes(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.QuoteResponse], error)
	SubmitQuote(ctx context.Context, callerID, quoteID string) (*response.QuoteResponse, error)

	// Staff operations
	ConvertToReservation(ctx context.Context, quoteID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	RecordPayment(ctx context.Context, req *request.RecordPaymentRequest) (*response.PaymentResponse, error)
	MarkQuotePaid(ctx context.Context, quoteID string) error
}

type quoteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewQuoteService(repo *repository.Repository, log *zap.Logger) QuoteService {
	return &quoteService{
		repo: repo,
		log:  log.With(zap.String("service", "quote")),
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, ownerID string, req *request.CreateQuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", ownerID, err)
	}

	now := time.Now()
	quote := &entity.Quote{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:       ownerUUID,
		Title:         req.Title,
		Reference:     utils.GenerateQuoteRef(),
		Status:        entity.QuoteStatusDraft,
		PaymentStatus: entity.QuotePaymentPending,
		TotalPrice:    0,
	}

	if err := s.repo.Quote.Create(ctx, quote); err != nil {
		s.log.Error("Failed to create quote",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	s.log.Info("Quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("reference", quote.Reference),
		zap.String("owner_id", ownerID),
	)

	return response.QuoteToResponse(quote, nil), nil
}

func (s *quoteService) GetQuote(ctx context.Context, callerID, quoteID string) (*response.QuoteResponse, error) {
	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return nil, fmt.Errorf("invalid caller ID format %s: %w", callerID, err)
	}

	id, err := uuid.Parse(quoteID)
	if err != nil {
		return nil, fmt.Errorf("invalid quote ID format %s: %w", quoteID, err)
	}

	quote, err := s.repo.Quote.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID)
	}

	if quote.OwnerID != callerUUID {
		return nil, fmt.Errorf("%w: quote %s", ErrNotQuoteOwner, quoteID)
	}

	items, err := s.repo.QuoteItem.FindByQuoteID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load items of quote %s: %w", quoteID, err)
	}

	return response.QuoteToResponse(quote, items), nil
}

func (s *quoteService) ListQuotes(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.QuoteResponse], error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", ownerID, err)
	}

	quotes, err := s.repo.Quote.FindByOwnerID(ctx, ownerUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list quotes",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	total, err := s.repo.Quote.CountByOwnerID(ctx, ownerUUID)
	if err != nil {
		return nil, fmt.Errorf("count quotes: %w", err)
	}

	quoteResponses := make([]response.QuoteResponse, len(quotes))
	for i, quote := range quotes {
		quoteResponses[i] = *response.QuoteToResponse(quote, nil)
	}

	return response.NewPaginatedResponse(quoteResponses, req.Page, req.PerPage, total), nil
}

// SubmitQuote moves an owner's draft to pending so staff can review it.
func (s *quoteService) SubmitQuote(ctx context.Context, callerID, quoteID string) (*response.QuoteResponse, error) {
	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return nil, fmt.Errorf("invalid caller ID format %s: %w", callerID, err)
	}

	id, err := uuid.Parse(quoteID)
	if err != nil {
		return nil, fmt.Errorf("invalid quote ID format %s: %w", quoteID, err)
	}

	quote, err := s.repo.Quote.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID)
	}
	if quote.OwnerID != callerUUID {
		return nil, fmt.Errorf("%w: quote %s", ErrNotQuoteOwner, quoteID)
	}

	if quote.Status != entity.QuoteStatusDraft {
		return nil, fmt.Errorf("%w: cannot submit quote in status %s", ErrInvalidTransition, string(quote.Status))
	}

	applied, err := s.repo.Quote.UpdateStatus(ctx, id,
		[]entity.QuoteStatus{entity.QuoteStatusDraft}, entity.QuoteStatusPending)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: quote %s is no longer a draft", ErrInvalidTransition, quoteID)
	}

	s.log.Info("Quote submitted",
		zap.String("quote_id", quoteID),
		zap.String("owner_id", callerID),
	)

	quote, err = s.repo.Quote.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload quote %s: %w", quoteID, err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID)
	}

	return response.QuoteToResponse(quote, nil), nil
}

// ConvertToReservation turns an approved quote into a pending reservation.
func (s *quoteService) ConvertToReservation(ctx context.Context, quoteID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Convert reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(quoteID)
	if err != nil {
		return nil, fmt.Errorf("invalid quote ID format %s: %w", quoteID, err)
	}

	quote, err := s.repo.Quote.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID)
	}

	if quote.Status != entity.QuoteStatusApproved {
		return nil, fmt.Errorf("%w: only approved quotes can be converted, quote is %s", ErrInvalidTransition, string(quote.Status))
	}

	now := time.Now()
	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		QuoteID: id,
		Kind:    entity.ServiceKind(req.Kind),
		Status:  entity.ReservationStatusPending,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	s.log.Info("Quote converted to reservation",
		zap.String("quote_id", quoteID),
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("kind", req.Kind),
	)

	return response.ReservationToResponse(reservation), nil
}

func (s *quoteService) RecordPayment(ctx context.Context, req *request.RecordPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Record payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", req.ReservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("load reservation %s: %w", req.ReservationID, err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, req.ReservationID)
	}

	now := time.Now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReservationID: reservationID,
		Amount:        req.Amount,
		Status:        entity.PaymentStatus(req.Status),
		TransactionID: req.TransactionID,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	// A completed payment confirms the reservation. The quote's own
	// payment_status is left alone; reconciliation derives it.
	if payment.Status == entity.PaymentStatusCompleted && reservation.Status == entity.ReservationStatusPending {
		if err := s.repo.Reservation.UpdateStatus(ctx, reservationID, entity.ReservationStatusConfirmed); err != nil {
			s.log.Warn("Failed to confirm reservation after payment",
				zap.Error(err),
				zap.String("reservation_id", req.ReservationID),
			)
			// Payment is recorded; reconciliation still classifies the quote
			// as paid on the next run.
		}
	}

	s.log.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("reservation_id", req.ReservationID),
		zap.Float64("amount", req.Amount),
		zap.String("status", req.Status),
	)

	return response.PaymentToResponse(payment), nil
}

// MarkQuotePaid records a payment taken directly against the quote (outside
// any reservation), the second leg of the reconciler's OR-condition.
func (s *quoteService) MarkQuotePaid(ctx context.Context, quoteID string) error {
	id, err := uuid.Parse(quoteID)
	if err != nil {
		return fmt.Errorf("invalid quote ID format %s: %w", quoteID, err)
	}

	quote, err := s.repo.Quote.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	if quote == nil {
		return fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID)
	}

	if err := s.repo.Quote.UpdatePaymentStatus(ctx, id, entity.QuotePaymentPaid); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	s.log.Info("Quote marked paid", zap.String("quote_id", quoteID))
	return nil
}
