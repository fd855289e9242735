package request

type CreateQuoteRequest struct {
	Title string `json:"title" validate:"required,min=3,max=200"`
}

// SyncItemRequest attaches (or re-prices) one service on a quote.
type SyncItemRequest struct {
	ServiceKind string `json:"service_kind" validate:"required,oneof=cabin car airport hotel tour rentcar"`
	ServiceID   string `json:"service_id" validate:"required,uuid4"`
	PriceCode   string `json:"price_code" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

type CancelApprovalRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type CreateReservationRequest struct {
	Kind string `json:"kind" validate:"required,oneof=cabin car airport hotel tour rentcar"`
}

type RecordPaymentRequest struct {
	ReservationID string  `json:"reservation_id" validate:"required,uuid4"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Status        string  `json:"status" validate:"required,oneof=pending completed failed"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
