package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Quote         QuoteRepository
	QuoteItem     QuoteItemRepository
	ServiceRecord ServiceRecordRepository
	Price         PriceRepository
	Reservation   ReservationRepository
	Payment       PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Quote:         NewQuoteRepository(db, log),
		QuoteItem:     NewQuoteItemRepository(db, log),
		ServiceRecord: NewServiceRecordRepository(db, log),
		Price:         NewPriceRepository(db, log),
		Reservation:   NewReservationRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
	}
}
