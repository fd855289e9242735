package usecase

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReconcileFilter string

const (
	FilterPaid    ReconcileFilter = "paid"
	FilterPending ReconcileFilter = "pending"
	FilterAll     ReconcileFilter = "all"
)

func ParseReconcileFilter(value string) (ReconcileFilter, error) {
	switch ReconcileFilter(value) {
	case FilterPaid, FilterPending, FilterAll:
		return ReconcileFilter(value), nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("invalid filter %q, want paid, pending or all", value)
	}
}

// ReconcileService derives each quote's paid status by joining quotes,
// reservations and payments. There is no stored source of truth: a quote is
// paid when its own payment_status says so OR any of its reservations has a
// completed payment. Pure read path; every call recomputes from the three
// tables, and a failure in any fetch step aborts the whole call so a partial
// join never misclassifies a quote.
type ReconcileService interface {
	Reconcile(ctx context.Context, filter ReconcileFilter) ([]response.QuoteSummaryResponse, error)
}

type reconcileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReconcileService(repo *repository.Repository, log *zap.Logger) ReconcileService {
	return &reconcileService{
		repo: repo,
		log:  log.With(zap.String("service", "reconcile")),
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, filter ReconcileFilter) ([]response.QuoteSummaryResponse, error) {
	// Step 1: candidate quotes.
	quotes, err := s.repo.Quote.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate quotes: %w", err)
	}
	if len(quotes) == 0 {
		return []response.QuoteSummaryResponse{}, nil
	}

	quoteIDs := make([]uuid.UUID, len(quotes))
	for i, quote := range quotes {
		quoteIDs[i] = quote.ID
	}

	// Step 2: reservations for the whole candidate set in one query. Quotes
	// without any reservation drop out of the view entirely.
	reservations, err := s.repo.Reservation.FindByQuoteIDs(ctx, quoteIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations: %w", err)
	}

	reservationsByQuote := make(map[uuid.UUID][]*entity.Reservation)
	reservationIDs := make([]uuid.UUID, 0, len(reservations))
	reservationQuote := make(map[uuid.UUID]uuid.UUID, len(reservations))
	for _, reservation := range reservations {
		reservationsByQuote[reservation.QuoteID] = append(reservationsByQuote[reservation.QuoteID], reservation)
		reservationIDs = append(reservationIDs, reservation.ID)
		reservationQuote[reservation.ID] = reservation.QuoteID
	}

	// Step 3: completed payments, traced payment -> reservation -> quote.
	payments, err := s.repo.Payment.FindCompletedByReservationIDs(ctx, reservationIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch completed payments: %w", err)
	}

	paidQuotes := make(map[uuid.UUID]bool)
	for _, payment := range payments {
		if quoteID, ok := reservationQuote[payment.ReservationID]; ok {
			paidQuotes[quoteID] = true
		}
	}

	// Step 4: classify and filter.
	type classified struct {
		quote *entity.Quote
		paid  bool
	}

	var surviving []classified
	ownerIDs := make([]uuid.UUID, 0, len(quotes))
	seenOwners := make(map[uuid.UUID]bool)

	for _, quote := range quotes {
		if len(reservationsByQuote[quote.ID]) == 0 {
			continue
		}

		paid := quote.PaymentStatus == entity.QuotePaymentPaid || paidQuotes[quote.ID]
		if filter == FilterPaid && !paid {
			continue
		}
		if filter == FilterPending && paid {
			continue
		}

		surviving = append(surviving, classified{quote: quote, paid: paid})
		if !seenOwners[quote.OwnerID] {
			seenOwners[quote.OwnerID] = true
			ownerIDs = append(ownerIDs, quote.OwnerID)
		}
	}

	// Step 5: owner info in one batch lookup.
	owners, err := s.repo.User.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch quote owners: %w", err)
	}

	ownersByID := make(map[uuid.UUID]*entity.User, len(owners))
	for _, owner := range owners {
		ownersByID[owner.ID] = owner
	}

	summaries := make([]response.QuoteSummaryResponse, 0, len(surviving))
	for _, entry := range surviving {
		quote := entry.quote

		summary := response.QuoteSummaryResponse{
			QuoteID:          quote.ID.String(),
			Title:            quote.Title,
			Reference:        quote.Reference,
			TotalPrice:       quote.TotalPrice,
			ReservationCount: len(reservationsByQuote[quote.ID]),
			HasActive:        hasActiveReservation(reservationsByQuote[quote.ID]),
		}

		if entry.paid {
			summary.PaymentStatus = string(entity.QuotePaymentPaid)
		} else {
			summary.PaymentStatus = string(entity.QuotePaymentPending)
		}

		if owner, ok := ownersByID[quote.OwnerID]; ok {
			summary.Owner = response.OwnerInfo{
				Name:  owner.Name,
				Email: owner.Email,
				Phone: owner.Phone,
			}
		}

		summaries = append(summaries, summary)
	}

	s.log.Info("Reconciliation completed",
		zap.String("filter", string(filter)),
		zap.Int("candidates", len(quotes)),
		zap.Int("summaries", len(summaries)),
	)

	return summaries, nil
}

func hasActiveReservation(reservations []*entity.Reservation) bool {
	for _, reservation := range reservations {
		if reservation.Status != entity.ReservationStatusCancelled {
			return true
		}
	}
	return false
}
