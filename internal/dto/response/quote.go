package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type QuoteItemResponse struct {
	ID          string             `json:"id"`
	ServiceKind entity.ServiceKind `json:"service_kind"`
	ServiceID   string             `json:"service_id"`
	Quantity    int                `json:"quantity"`
	UnitPrice   float64            `json:"unit_price"`
	TotalPrice  float64            `json:"total_price"`
}

type QuoteResponse struct {
	ID                 string                    `json:"id"`
	OwnerID            string                    `json:"owner_id"`
	Title              string                    `json:"title"`
	Reference          string                    `json:"reference"`
	Status             entity.QuoteStatus        `json:"status"`
	PaymentStatus      entity.QuotePaymentStatus `json:"payment_status"`
	TotalPrice         float64                   `json:"total_price"`
	CancellationReason *string                   `json:"cancellation_reason,omitempty"`
	ApprovedAt         *time.Time                `json:"approved_at,omitempty"`
	ApprovedBy         *string                   `json:"approved_by,omitempty"`
	Items              []QuoteItemResponse       `json:"items,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// SyncResponse is the result of pricing a single line item.
type SyncResponse struct {
	ServiceKind entity.ServiceKind `json:"service_kind"`
	ServiceID   string             `json:"service_id"`
	UnitPrice   float64            `json:"unit_price"`
	LineTotal   float64            `json:"line_total"`
	QuoteTotal  float64            `json:"quote_total"`
}

// SyncItemResult reports one item of a bulk resynchronization. Failed items
// carry the error message; the rest of the batch is unaffected.
type SyncItemResult struct {
	ServiceKind entity.ServiceKind `json:"service_kind"`
	ServiceID   string             `json:"service_id"`
	UnitPrice   float64            `json:"unit_price,omitempty"`
	LineTotal   float64            `json:"line_total,omitempty"`
	Error       string             `json:"error,omitempty"`
}

type SyncAllResponse struct {
	Items      []SyncItemResult `json:"items"`
	QuoteTotal float64          `json:"quote_total"`
	AllSynced  bool             `json:"all_synced"`
}

type ReservationResponse struct {
	ID        string                   `json:"id"`
	QuoteID   string                   `json:"quote_id"`
	Kind      entity.ServiceKind       `json:"kind"`
	Status    entity.ReservationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	ReservationID string               `json:"reservation_id"`
	Amount        float64              `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Helper converters

func QuoteToResponse(quote *entity.Quote, items []*entity.QuoteItem) *QuoteResponse {
	resp := &QuoteResponse{
		ID:                 quote.ID.String(),
		OwnerID:            quote.OwnerID.String(),
		Title:              quote.Title,
		Reference:          quote.Reference,
		Status:             quote.Status,
		PaymentStatus:      quote.PaymentStatus,
		TotalPrice:         quote.TotalPrice,
		CancellationReason: quote.CancellationReason,
		ApprovedAt:         quote.ApprovedAt,
		CreatedAt:          quote.CreatedAt,
	}

	if quote.ApprovedBy != nil {
		approvedBy := quote.ApprovedBy.String()
		resp.ApprovedBy = &approvedBy
	}

	for _, item := range items {
		resp.Items = append(resp.Items, QuoteItemResponse{
			ID:          item.ID.String(),
			ServiceKind: item.ServiceKind,
			ServiceID:   item.ServiceID.String(),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return resp
}

func ReservationToResponse(reservation *entity.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        reservation.ID.String(),
		QuoteID:   reservation.QuoteID.String(),
		Kind:      reservation.Kind,
		Status:    reservation.Status,
		CreatedAt: reservation.CreatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            payment.ID.String(),
		ReservationID: payment.ReservationID.String(),
		Amount:        payment.Amount,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
	}
}
