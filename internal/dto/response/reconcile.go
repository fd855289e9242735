package response

type OwnerInfo struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// QuoteSummaryResponse is one row of the reconciliation view: a quote with at
// least one reservation, classified paid or pending from its own
// payment_status and its reservations' completed payments.
type QuoteSummaryResponse struct {
	QuoteID          string    `json:"quote_id"`
	Title            string    `json:"title"`
	Reference        string    `json:"reference"`
	Owner            OwnerInfo `json:"owner"`
	TotalPrice       float64   `json:"total_price"`
	PaymentStatus    string    `json:"payment_status"`
	ReservationCount int       `json:"reservation_count"`
	HasActive        bool      `json:"has_active_reservation"`
}
