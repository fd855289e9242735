package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"

	"github.com/google/uuid"
)

func TestCreateQuoteStartsAsDraft(t *testing.T) {
	tr := newTestRepo()
	quotes := NewQuoteService(tr.repo, testLogger())
	owner := uuid.New()

	resp, err := quotes.CreateQuote(context.Background(), owner.String(), &request.CreateQuoteRequest{
		Title: "Honeymoon package",
	})
	if err != nil {
		t.Fatalf("CreateQuote returned error: %v", err)
	}

	if resp.Status != entity.QuoteStatusDraft {
		t.Fatalf("expected draft, got %s", resp.Status)
	}
	if resp.OwnerID != owner.String() {
		t.Fatalf("owner not recorded, got %s", resp.OwnerID)
	}
	if !strings.HasPrefix(resp.Reference, "QT-") {
		t.Fatalf("unexpected reference format: %s", resp.Reference)
	}
	if resp.TotalPrice != 0 {
		t.Fatalf("new quote must start at zero total, got %v", resp.TotalPrice)
	}
}

func TestCreateQuoteValidatesTitle(t *testing.T) {
	tr := newTestRepo()
	quotes := NewQuoteService(tr.repo, testLogger())

	_, err := quotes.CreateQuote(context.Background(), uuid.New().String(), &request.CreateQuoteRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetQuoteEnforcesOwnership(t *testing.T) {
	tr := newTestRepo()
	owner := uuid.New()
	quote := tr.addQuote(owner, entity.QuoteStatusDraft)

	quotes := NewQuoteService(tr.repo, testLogger())

	if _, err := quotes.GetQuote(context.Background(), owner.String(), quote.ID.String()); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	_, err := quotes.GetQuote(context.Background(), uuid.New().String(), quote.ID.String())
	if !errors.Is(err, ErrNotQuoteOwner) {
		t.Fatalf("expected ErrNotQuoteOwner, got %v", err)
	}
}

func TestGetQuoteUnknownID(t *testing.T) {
	tr := newTestRepo()
	quotes := NewQuoteService(tr.repo, testLogger())

	_, err := quotes.GetQuote(context.Background(), uuid.New().String(), uuid.New().String())
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestSubmitQuoteMovesDraftToPending(t *testing.T) {
	tr := newTestRepo()
	owner := uuid.New()
	quote := tr.addQuote(owner, entity.QuoteStatusDraft)

	quotes := NewQuoteService(tr.repo, testLogger())

	resp, err := quotes.SubmitQuote(context.Background(), owner.String(), quote.ID.String())
	if err != nil {
		t.Fatalf("SubmitQuote returned error: %v", err)
	}
	if resp.Status != entity.QuoteStatusPending {
		t.Fatalf("expected pending, got %s", resp.Status)
	}
}

func TestSubmitQuoteRejectsNonDraft(t *testing.T) {
	tr := newTestRepo()
	owner := uuid.New()
	quote := tr.addQuote(owner, entity.QuoteStatusApproved)

	quotes := NewQuoteService(tr.repo, testLogger())

	_, err := quotes.SubmitQuote(context.Background(), owner.String(), quote.ID.String())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSubmitQuoteDeletedDuringSubmit(t *testing.T) {
	tr := newTestRepo()
	owner := uuid.New()
	quote := tr.addQuote(owner, entity.QuoteStatusDraft)

	// The quote disappears right after the status write, so the reload finds
	// nothing. The caller gets a not-found error, not a broken wrap of nil.
	tr.quotes.afterTransition = func() {
		delete(tr.quotes.quotes, quote.ID)
	}

	quotes := NewQuoteService(tr.repo, testLogger())

	_, err := quotes.SubmitQuote(context.Background(), owner.String(), quote.ID.String())
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
	if strings.Contains(err.Error(), "%!w") {
		t.Fatalf("error wraps a nil cause: %v", err)
	}
}

func TestConvertToReservationRequiresApproval(t *testing.T) {
	tr := newTestRepo()
	quotes := NewQuoteService(tr.repo, testLogger())

	for _, status := range []entity.QuoteStatus{entity.QuoteStatusDraft, entity.QuoteStatusPending, entity.QuoteStatusRejected} {
		quote := tr.addQuote(uuid.New(), status)
		_, err := quotes.ConvertToReservation(context.Background(), quote.ID.String(), &request.CreateReservationRequest{Kind: "hotel"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("status %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestConvertApprovedQuoteCreatesPendingReservation(t *testing.T) {
	tr := newTestRepo()
	quote := tr.addQuote(uuid.New(), entity.QuoteStatusApproved)

	quotes := NewQuoteService(tr.repo, testLogger())

	resp, err := quotes.ConvertToReservation(context.Background(), quote.ID.String(), &request.CreateReservationRequest{Kind: "tour"})
	if err != nil {
		t.Fatalf("ConvertToReservation returned error: %v", err)
	}

	if resp.Status != entity.ReservationStatusPending {
		t.Fatalf("expected pending reservation, got %s", resp.Status)
	}
	if resp.QuoteID != quote.ID.String() {
		t.Fatalf("reservation not linked to quote: %s", resp.QuoteID)
	}
	if resp.Kind != entity.ServiceKindTour {
		t.Fatalf("expected tour kind, got %s", resp.Kind)
	}
}

func TestRecordPaymentUnknownReservation(t *testing.T) {
	tr := newTestRepo()
	quotes := NewQuoteService(tr.repo, testLogger())

	_, err := quotes.RecordPayment(context.Background(), &request.RecordPaymentRequest{
		ReservationID: uuid.New().String(),
		Amount:        100,
		Status:        "completed",
	})
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestRecordCompletedPaymentConfirmsReservation(t *testing.T) {
	tr := newTestRepo()
	quote := tr.addQuote(uuid.New(), entity.QuoteStatusApproved)
	reservation := tr.addReservation(quote.ID, entity.ReservationStatusPending)

	quotes := NewQuoteService(tr.repo, testLogger())

	resp, err := quotes.RecordPayment(context.Background(), &request.RecordPaymentRequest{
		ReservationID: reservation.ID.String(),
		Amount:        250,
		Status:        "completed",
	})
	if err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	if resp.Status != entity.PaymentStatusCompleted {
		t.Fatalf("expected completed payment, got %s", resp.Status)
	}
	if reservation.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("completed payment should confirm reservation, got %s", reservation.Status)
	}
}

func TestRecordPendingPaymentLeavesReservationAlone(t *testing.T) {
	tr := newTestRepo()
	quote := tr.addQuote(uuid.New(), entity.QuoteStatusApproved)
	reservation := tr.addReservation(quote.ID, entity.ReservationStatusPending)

	quotes := NewQuoteService(tr.repo, testLogger())

	if _, err := quotes.RecordPayment(context.Background(), &request.RecordPaymentRequest{
		ReservationID: reservation.ID.String(),
		Amount:        250,
		Status:        "pending",
	}); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	if reservation.Status != entity.ReservationStatusPending {
		t.Fatalf("pending payment must not confirm reservation, got %s", reservation.Status)
	}
}

func TestMarkQuotePaid(t *testing.T) {
	tr := newTestRepo()
	quote := tr.addQuote(uuid.New(), entity.QuoteStatusApproved)

	quotes := NewQuoteService(tr.repo, testLogger())

	if err := quotes.MarkQuotePaid(context.Background(), quote.ID.String()); err != nil {
		t.Fatalf("MarkQuotePaid returned error: %v", err)
	}
	if quote.PaymentStatus != entity.QuotePaymentPaid {
		t.Fatalf("expected paid, got %s", quote.PaymentStatus)
	}

	if err := quotes.MarkQuotePaid(context.Background(), uuid.New().String()); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestListQuotesOnlyOwners(t *testing.T) {
	tr := newTestRepo()
	owner := uuid.New()
	tr.addQuote(owner, entity.QuoteStatusDraft)
	tr.addQuote(owner, entity.QuoteStatusPending)
	tr.addQuote(uuid.New(), entity.QuoteStatusDraft)

	quotes := NewQuoteService(tr.repo, testLogger())

	resp, err := quotes.ListQuotes(context.Background(), owner.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListQuotes returned error: %v", err)
	}

	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 2 {
		t.Fatalf("expected total 2, got %d", resp.Pagination.Total)
	}
}
