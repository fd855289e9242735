package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

type QuotePaymentStatus string

const (
	QuotePaymentPending QuotePaymentStatus = "pending"
	QuotePaymentPaid    QuotePaymentStatus = "paid"
)

// Quote is a customer's multi-service order. TotalPrice is a cached aggregate
// kept in sync with the quote's line items; ApprovedAt/ApprovedBy record the
// most recent approval and survive a cancel-approval so the audit trail of the
// last approver is retained.
type Quote struct {
	BaseNoDelete
	OwnerID            uuid.UUID          `db:"owner_id"`
	Title              string             `db:"title"`
	Reference          string             `db:"reference"`
	Status             QuoteStatus        `db:"status"`
	PaymentStatus      QuotePaymentStatus `db:"payment_status"`
	TotalPrice         float64            `db:"total_price"`
	CancellationReason *string            `db:"cancellation_reason"`
	ApprovedAt         *time.Time         `db:"approved_at"`
	ApprovedBy         *uuid.UUID         `db:"approved_by"`
}
