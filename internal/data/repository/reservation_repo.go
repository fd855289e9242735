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

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]*entity.Reservation, error)
	FindByQuoteIDs(ctx context.Context, quoteIDs []uuid.UUID) ([]*entity.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, quote_id, kind, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.QuoteID,
		reservation.Kind,
		reservation.Status,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("quote_id", reservation.QuoteID.String()),
		)
		return fmt.Errorf("create reservation for quote %s: %w", reservation.QuoteID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, quote_id, kind, status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.QuoteID,
		&reservation.Kind,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]*entity.Reservation, error) {
	return r.FindByQuoteIDs(ctx, []uuid.UUID{quoteID})
}

// FindByQuoteIDs fetches every reservation whose quote is in the id set with
// a single query; reconciliation depends on this staying one round trip.
func (r *reservationRepository) FindByQuoteIDs(ctx context.Context, quoteIDs []uuid.UUID) ([]*entity.Reservation, error) {
	if len(quoteIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, quote_id, kind, status, created_at, updated_at
		FROM reservations
		WHERE quote_id = ANY($1)
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, quoteIDs)
	if err != nil {
		r.log.Error("Failed to find reservations by quote IDs",
			zap.Error(err),
			zap.Int("quote_count", len(quoteIDs)),
		)
		return nil, fmt.Errorf("find reservations by quote IDs: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.QuoteID,
			&reservation.Kind,
			&reservation.Status,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}
