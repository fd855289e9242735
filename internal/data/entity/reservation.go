package entity

import (
	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is the bookable commitment created from an approved quote.
type Reservation struct {
	BaseNoDelete
	QuoteID uuid.UUID         `db:"quote_id"`
	Kind    ServiceKind       `db:"kind"`
	Status  ReservationStatus `db:"status"`
}
