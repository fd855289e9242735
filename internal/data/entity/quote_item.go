package entity

import (
	"github.com/google/uuid"
)

// QuoteItem is one priced, quantified service attached to a quote. The pair
// (QuoteID, ServiceKind, ServiceID) is the natural key; at most one item per
// service record per quote.
type QuoteItem struct {
	BaseNoDelete
	QuoteID     uuid.UUID   `db:"quote_id"`
	ServiceKind ServiceKind `db:"service_kind"`
	ServiceID   uuid.UUID   `db:"service_id"`
	Quantity    int         `db:"quantity"`
	UnitPrice   float64     `db:"unit_price"`
	TotalPrice  float64     `db:"total_price"`
}
