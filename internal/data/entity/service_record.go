package entity

// ServiceRecord is a concrete bookable service row (a cabin booking, a
// transfer, a tour seat). BasePrice caches the price-table answer for
// PriceCode; resynchronization is pull-based, so it can go stale when the
// catalog changes.
type ServiceRecord struct {
	BaseNoDelete
	Kind      ServiceKind `db:"kind"`
	Name      string      `db:"name"`
	PriceCode string      `db:"price_code"`
	BasePrice float64     `db:"base_price"`
}
