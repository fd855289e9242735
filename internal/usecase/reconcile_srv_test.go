package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/google/uuid"
)

func (tr *testRepo) addOwner() *entity.User {
	now := time.Now()
	phone := "+62-811-000"
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     "Ayu",
		Email:    "ayu@example.com",
		Phone:    &phone,
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
	tr.users.users[user.ID] = user
	return user
}

func (tr *testRepo) addReservation(quoteID uuid.UUID, status entity.ReservationStatus) *entity.Reservation {
	now := time.Now()
	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		QuoteID: quoteID,
		Kind:    entity.ServiceKindHotel,
		Status:  status,
	}
	tr.reservations.reservations[reservation.ID] = reservation
	return reservation
}

func (tr *testRepo) addPayment(reservationID uuid.UUID, status entity.PaymentStatus) *entity.Payment {
	now := time.Now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReservationID: reservationID,
		Amount:        100,
		Status:        status,
	}
	tr.payments.payments[payment.ID] = payment
	return payment
}

func TestReconcilePaidViaReservationPayment(t *testing.T) {
	// The quote's own payment_status is pending, but a reservation carries a
	// completed payment: the OR-condition classifies it paid.
	tr := newTestRepo()
	owner := tr.addOwner()
	quote := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	reservation := tr.addReservation(quote.ID, entity.ReservationStatusConfirmed)
	tr.addPayment(reservation.ID, entity.PaymentStatusCompleted)

	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].PaymentStatus != "paid" {
		t.Fatalf("expected paid, got %s", summaries[0].PaymentStatus)
	}
}

func TestReconcilePaidViaQuoteStatus(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()
	quote := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	quote.PaymentStatus = entity.QuotePaymentPaid
	tr.addReservation(quote.ID, entity.ReservationStatusPending)

	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterPaid)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
}

func TestReconcilePendingAndFailedPaymentsDoNotCount(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()
	quote := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	reservation := tr.addReservation(quote.ID, entity.ReservationStatusPending)
	tr.addPayment(reservation.ID, entity.PaymentStatusPending)
	tr.addPayment(reservation.ID, entity.PaymentStatusFailed)

	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].PaymentStatus != "pending" {
		t.Fatalf("expected pending, got %s", summaries[0].PaymentStatus)
	}
}

func TestReconcileExcludesQuotesWithoutReservations(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()
	tr.addQuote(owner.ID, entity.QuoteStatusApproved)

	withReservation := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	tr.addReservation(withReservation.ID, entity.ReservationStatusPending)

	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected only the quote with a reservation, got %d", len(summaries))
	}
	if summaries[0].QuoteID != withReservation.ID.String() {
		t.Fatalf("wrong quote surfaced: %s", summaries[0].QuoteID)
	}
}

func TestReconcileFilterSplitsPaidAndPending(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()

	paid := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	paidRes := tr.addReservation(paid.ID, entity.ReservationStatusConfirmed)
	tr.addPayment(paidRes.ID, entity.PaymentStatusCompleted)

	pending := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	tr.addReservation(pending.ID, entity.ReservationStatusPending)

	reconcile := NewReconcileService(tr.repo, testLogger())

	paidOnly, err := reconcile.Reconcile(context.Background(), FilterPaid)
	if err != nil {
		t.Fatalf("paid filter: %v", err)
	}
	if len(paidOnly) != 1 || paidOnly[0].QuoteID != paid.ID.String() {
		t.Fatalf("paid filter returned wrong set: %+v", paidOnly)
	}

	pendingOnly, err := reconcile.Reconcile(context.Background(), FilterPending)
	if err != nil {
		t.Fatalf("pending filter: %v", err)
	}
	if len(pendingOnly) != 1 || pendingOnly[0].QuoteID != pending.ID.String() {
		t.Fatalf("pending filter returned wrong set: %+v", pendingOnly)
	}

	all, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("all filter: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(all))
	}
}

func TestReconcileOwnerAndReservationDetails(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()
	quote := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	quote.TotalPrice = 1500
	tr.addReservation(quote.ID, entity.ReservationStatusConfirmed)
	tr.addReservation(quote.ID, entity.ReservationStatusCancelled)

	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	summary := summaries[0]
	if summary.Owner.Name != owner.Name || summary.Owner.Email != owner.Email {
		t.Fatalf("owner info not joined: %+v", summary.Owner)
	}
	if summary.TotalPrice != 1500 {
		t.Fatalf("expected total 1500, got %v", summary.TotalPrice)
	}
	if summary.ReservationCount != 2 {
		t.Fatalf("expected 2 reservations, got %d", summary.ReservationCount)
	}
	if !summary.HasActive {
		t.Fatal("one reservation is confirmed, HasActive should be true")
	}
}

func TestReconcileAllReservationsCancelled(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()
	quote := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	tr.addReservation(quote.ID, entity.ReservationStatusCancelled)

	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].HasActive {
		t.Fatal("all reservations cancelled, HasActive should be false")
	}
}

func TestReconcileAbortsOnFetchFailure(t *testing.T) {
	tr := newTestRepo()
	owner := tr.addOwner()
	quote := tr.addQuote(owner.ID, entity.QuoteStatusApproved)
	tr.addReservation(quote.ID, entity.ReservationStatusPending)

	tr.reservations.findErr = errors.New("connection reset")

	reconcile := NewReconcileService(tr.repo, testLogger())

	if _, err := reconcile.Reconcile(context.Background(), FilterAll); err == nil {
		t.Fatal("expected error when reservation fetch fails")
	}

	tr.reservations.findErr = nil
	tr.payments.findErr = errors.New("connection reset")

	if _, err := reconcile.Reconcile(context.Background(), FilterAll); err == nil {
		t.Fatal("expected error when payment fetch fails")
	}
}

func TestReconcileEmptyDataset(t *testing.T) {
	tr := newTestRepo()
	reconcile := NewReconcileService(tr.repo, testLogger())

	summaries, err := reconcile.Reconcile(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty result, got %d", len(summaries))
	}
}

func TestParseReconcileFilter(t *testing.T) {
	cases := map[string]ReconcileFilter{
		"":        FilterAll,
		"all":     FilterAll,
		"paid":    FilterPaid,
		"pending": FilterPending,
	}
	for input, want := range cases {
		got, err := ParseReconcileFilter(input)
		if err != nil {
			t.Fatalf("ParseReconcileFilter(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseReconcileFilter(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := ParseReconcileFilter("bogus"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}
