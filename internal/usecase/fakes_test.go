package usecase

import (
	"context"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. Each embeds optional error hooks so tests can
// force a failing fetch or write on a specific path.

type fakePriceRepo struct {
	prices map[entity.ServiceKind]map[string]float64
	err    error
}

func (f *fakePriceRepo) Lookup(_ context.Context, kind entity.ServiceKind, code string) (float64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	price, ok := f.prices[kind][code]
	return price, ok, nil
}

type fakeQuoteRepo struct {
	quotes  map[uuid.UUID]*entity.Quote
	findErr error

	// beforeTransition runs just before a conditional status write, letting
	// tests move the quote between the service's read and its write.
	// afterTransition runs after a write applies.
	beforeTransition func()
	afterTransition  func()
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[uuid.UUID]*entity.Quote)}
}

func (f *fakeQuoteRepo) Create(_ context.Context, quote *entity.Quote) error {
	f.quotes[quote.ID] = quote
	return nil
}

func (f *fakeQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Quote, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.quotes[id], nil
}

func (f *fakeQuoteRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, quote := range f.quotes {
		if quote.OwnerID == ownerID {
			out = append(out, quote)
		}
	}
	return out, nil
}

func (f *fakeQuoteRepo) CountByOwnerID(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	for _, quote := range f.quotes {
		if quote.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuoteRepo) FindAll(_ context.Context) ([]*entity.Quote, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*entity.Quote
	for _, quote := range f.quotes {
		out = append(out, quote)
	}
	return out, nil
}

func (f *fakeQuoteRepo) UpdateTotalPrice(_ context.Context, id uuid.UUID, total float64) error {
	quote, ok := f.quotes[id]
	if !ok {
		return nil
	}
	quote.TotalPrice = total
	return nil
}

func (f *fakeQuoteRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status entity.QuotePaymentStatus) error {
	if quote, ok := f.quotes[id]; ok {
		quote.PaymentStatus = status
	}
	return nil
}

func (f *fakeQuoteRepo) UpdateStatus(_ context.Context, id uuid.UUID, from []entity.QuoteStatus, to entity.QuoteStatus) (bool, error) {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	quote, ok := f.quotes[id]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if quote.Status == status {
			quote.Status = to
			if f.afterTransition != nil {
				f.afterTransition()
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQuoteRepo) Approve(_ context.Context, id, approverID uuid.UUID, approvedAt time.Time) (bool, error) {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	quote, ok := f.quotes[id]
	if !ok {
		return false, nil
	}
	if quote.Status != entity.QuoteStatusDraft && quote.Status != entity.QuoteStatusPending {
		return false, nil
	}
	quote.Status = entity.QuoteStatusApproved
	quote.ApprovedAt = &approvedAt
	quote.ApprovedBy = &approverID
	if f.afterTransition != nil {
		f.afterTransition()
	}
	return true, nil
}

func (f *fakeQuoteRepo) CancelApproval(_ context.Context, id uuid.UUID, reason *string) (bool, error) {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	quote, ok := f.quotes[id]
	if !ok {
		return false, nil
	}
	if quote.Status != entity.QuoteStatusApproved {
		return false, nil
	}
	quote.Status = entity.QuoteStatusDraft
	quote.CancellationReason = reason
	if f.afterTransition != nil {
		f.afterTransition()
	}
	return true, nil
}

type itemKey struct {
	quoteID   uuid.UUID
	kind      entity.ServiceKind
	serviceID uuid.UUID
}

type fakeQuoteItemRepo struct {
	items map[itemKey]*entity.QuoteItem
}

func newFakeQuoteItemRepo() *fakeQuoteItemRepo {
	return &fakeQuoteItemRepo{items: make(map[itemKey]*entity.QuoteItem)}
}

func (f *fakeQuoteItemRepo) Upsert(_ context.Context, item *entity.QuoteItem) error {
	key := itemKey{quoteID: item.QuoteID, kind: item.ServiceKind, serviceID: item.ServiceID}
	if existing, ok := f.items[key]; ok {
		existing.Quantity = item.Quantity
		existing.UnitPrice = item.UnitPrice
		existing.TotalPrice = item.TotalPrice
		return nil
	}
	f.items[key] = item
	return nil
}

func (f *fakeQuoteItemRepo) FindByQuoteID(_ context.Context, quoteID uuid.UUID) ([]*entity.QuoteItem, error) {
	var out []*entity.QuoteItem
	for key, item := range f.items {
		if key.quoteID == quoteID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeQuoteItemRepo) Delete(_ context.Context, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID) error {
	delete(f.items, itemKey{quoteID: quoteID, kind: kind, serviceID: serviceID})
	return nil
}

type fakeServiceRecordRepo struct {
	records map[uuid.UUID]*entity.ServiceRecord
}

func newFakeServiceRecordRepo() *fakeServiceRecordRepo {
	return &fakeServiceRecordRepo{records: make(map[uuid.UUID]*entity.ServiceRecord)}
}

func (f *fakeServiceRecordRepo) Create(_ context.Context, record *entity.ServiceRecord) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeServiceRecordRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ServiceRecord, error) {
	return f.records[id], nil
}

func (f *fakeServiceRecordRepo) UpdatePricing(_ context.Context, id uuid.UUID, priceCode string, price float64) error {
	record, ok := f.records[id]
	if !ok {
		return nil
	}
	record.PriceCode = priceCode
	record.BasePrice = price
	return nil
}

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*entity.Reservation
	findErr      error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*entity.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	f.reservations[reservation.ID] = reservation
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return f.reservations[id], nil
}

func (f *fakeReservationRepo) FindByQuoteID(_ context.Context, quoteID uuid.UUID) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for _, reservation := range f.reservations {
		if reservation.QuoteID == quoteID {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByQuoteIDs(_ context.Context, quoteIDs []uuid.UUID) ([]*entity.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	wanted := make(map[uuid.UUID]bool, len(quoteIDs))
	for _, id := range quoteIDs {
		wanted[id] = true
	}
	var out []*entity.Reservation
	for _, reservation := range f.reservations {
		if wanted[reservation.QuoteID] {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	if reservation, ok := f.reservations[id]; ok {
		reservation.Status = status
	}
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
	findErr  error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, payment := range f.payments {
		if payment.ReservationID == reservationID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) FindCompletedByReservationIDs(_ context.Context, reservationIDs []uuid.UUID) ([]*entity.Payment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	wanted := make(map[uuid.UUID]bool, len(reservationIDs))
	for _, id := range reservationIDs {
		wanted[id] = true
	}
	var out []*entity.Payment
	for _, payment := range f.payments {
		if wanted[payment.ReservationID] && payment.Status == entity.PaymentStatusCompleted {
			out = append(out, payment)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session, ok := f.sessions[parsed]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	if session, ok := f.sessions[parsed]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.RevokedAt = &now
		}
	}
	return nil
}

// testRepo bundles fresh fakes into a Repository for service construction.
type testRepo struct {
	repo         *repository.Repository
	users        *fakeUserRepo
	sessions     *fakeSessionRepo
	quotes       *fakeQuoteRepo
	items        *fakeQuoteItemRepo
	records      *fakeServiceRecordRepo
	prices       *fakePriceRepo
	reservations *fakeReservationRepo
	payments     *fakePaymentRepo
}

func newTestRepo() *testRepo {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	quotes := newFakeQuoteRepo()
	items := newFakeQuoteItemRepo()
	records := newFakeServiceRecordRepo()
	prices := &fakePriceRepo{prices: make(map[entity.ServiceKind]map[string]float64)}
	reservations := newFakeReservationRepo()
	payments := newFakePaymentRepo()

	return &testRepo{
		repo: &repository.Repository{
			User:          users,
			Session:       sessions,
			Quote:         quotes,
			QuoteItem:     items,
			ServiceRecord: records,
			Price:         prices,
			Reservation:   reservations,
			Payment:       payments,
		},
		users:        users,
		sessions:     sessions,
		quotes:       quotes,
		items:        items,
		records:      records,
		prices:       prices,
		reservations: reservations,
		payments:     payments,
	}
}

func (tr *testRepo) setPrice(kind entity.ServiceKind, code string, price float64) {
	if tr.prices.prices[kind] == nil {
		tr.prices.prices[kind] = make(map[string]float64)
	}
	tr.prices.prices[kind][code] = price
}

func (tr *testRepo) addQuote(ownerID uuid.UUID, status entity.QuoteStatus) *entity.Quote {
	now := time.Now()
	quote := &entity.Quote{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:       ownerID,
		Title:         "Bali package",
		Reference:     "QT-20260831-120000-0001",
		Status:        status,
		PaymentStatus: entity.QuotePaymentPending,
	}
	tr.quotes.quotes[quote.ID] = quote
	return quote
}

func (tr *testRepo) addServiceRecord(kind entity.ServiceKind, priceCode string) *entity.ServiceRecord {
	now := time.Now()
	record := &entity.ServiceRecord{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Kind:      kind,
		Name:      "Test service",
		PriceCode: priceCode,
	}
	tr.records.records[record.ID] = record
	return record
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
