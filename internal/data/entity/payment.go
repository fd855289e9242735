package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is one payment attempt against a reservation. A quote counts as paid
// when its own payment_status says so OR any reservation has a completed
// payment; there is no single stored source of truth.
type Payment struct {
	BaseNoDelete
	ReservationID uuid.UUID     `db:"reservation_id"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	TransactionID *string       `db:"transaction_id"`
}
