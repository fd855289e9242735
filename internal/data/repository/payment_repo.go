package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.Payment, error)
	// FindCompletedByReservationIDs returns completed payments for the
	// reservation id set in one query.
	FindCompletedByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) ([]*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, reservation_id, amount, status, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.ReservationID,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("reservation_id", payment.ReservationID.String()),
			zap.Float64("amount", payment.Amount),
		)
		return fmt.Errorf("create payment for reservation %s: %w", payment.ReservationID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT id, reservation_id, amount, status, transaction_id, created_at, updated_at
		FROM payments
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find payments by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find payments by reservation ID %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	return r.collectPayments(rows)
}

func (r *paymentRepository) FindCompletedByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) ([]*entity.Payment, error) {
	if len(reservationIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, reservation_id, amount, status, transaction_id, created_at, updated_at
		FROM payments
		WHERE reservation_id = ANY($1) AND status = 'completed'
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to find completed payments by reservation IDs",
			zap.Error(err),
			zap.Int("reservation_count", len(reservationIDs)),
		)
		return nil, fmt.Errorf("find completed payments by reservation IDs: %w", err)
	}
	defer rows.Close()

	return r.collectPayments(rows)
}

func (r *paymentRepository) collectPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.ReservationID,
			&payment.Amount,
			&payment.Status,
			&payment.TransactionID,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}
