package repository

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Quote, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
	FindAll(ctx context.Context) ([]*entity.Quote, error)
	UpdateTotalPrice(ctx context.Context, id uuid.UUID, total float64) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.QuotePaymentStatus) error

	// Transition updates are conditional single-row writes: they only apply
	// when the current status is one of the expected source states, and report
	// whether a row was changed so callers can detect a lost race.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []entity.QuoteStatus, to entity.QuoteStatus) (bool, error)
	Approve(ctx context.Context, id uuid.UUID, approverID uuid.UUID, approvedAt time.Time) (bool, error)
	CancelApproval(ctx context.Context, id uuid.UUID, reason *string) (bool, error)
}

type quoteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQuoteRepository(db database.PgxIface, log *zap.Logger) QuoteRepository {
	return &quoteRepository{
		db:  db,
		log: log.With(zap.String("repository", "quote")),
	}
}

const quoteColumns = `id, owner_id, title, reference, status, payment_status, total_price,
	       cancellation_reason, approved_at, approved_by, created_at, updated_at`

func (r *quoteRepository) scanQuote(row pgx.Row) (*entity.Quote, error) {
	var quote entity.Quote
	err := row.Scan(
		&quote.ID,
		&quote.OwnerID,
		&quote.Title,
		&quote.Reference,
		&quote.Status,
		&quote.PaymentStatus,
		&quote.TotalPrice,
		&quote.CancellationReason,
		&quote.ApprovedAt,
		&quote.ApprovedBy,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, owner_id, title, reference, status, payment_status, total_price,
		                    cancellation_reason, approved_at, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		quote.ID,
		quote.OwnerID,
		quote.Title,
		quote.Reference,
		quote.Status,
		quote.PaymentStatus,
		quote.TotalPrice,
		quote.CancellationReason,
		quote.ApprovedAt,
		quote.ApprovedBy,
		quote.CreatedAt,
		quote.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create quote",
			zap.Error(err),
			zap.String("reference", quote.Reference),
			zap.String("owner_id", quote.OwnerID.String()),
		)
		return fmt.Errorf("create quote %s: %w", quote.Reference, err)
	}

	return nil
}

func (r *quoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	quote, err := r.scanQuote(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find quote by ID",
			zap.Error(err),
			zap.String("quote_id", id.String()),
		)
		return nil, fmt.Errorf("find quote by ID %s: %w", id.String(), err)
	}

	return quote, nil
}

func (r *quoteRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find quotes by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find quotes by owner ID %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return r.collectQuotes(rows)
}

func (r *quoteRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM quotes WHERE owner_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count quotes by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return 0, fmt.Errorf("count quotes by owner ID %s: %w", ownerID.String(), err)
	}

	return count, nil
}

// FindAll returns every quote, paid ones first, for reconciliation runs.
func (r *quoteRepository) FindAll(ctx context.Context) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		ORDER BY payment_status DESC, created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all quotes", zap.Error(err))
		return nil, fmt.Errorf("find all quotes: %w", err)
	}
	defer rows.Close()

	return r.collectQuotes(rows)
}

func (r *quoteRepository) UpdateTotalPrice(ctx context.Context, id uuid.UUID, total float64) error {
	query := `UPDATE quotes SET total_price = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, total)
	if err != nil {
		r.log.Error("Failed to update quote total",
			zap.Error(err),
			zap.String("quote_id", id.String()),
			zap.Float64("total_price", total),
		)
		return fmt.Errorf("update quote %s total: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quote %s not found", id.String())
	}

	return nil
}

func (r *quoteRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.QuotePaymentStatus) error {
	query := `UPDATE quotes SET payment_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update quote payment status",
			zap.Error(err),
			zap.String("quote_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update quote %s payment status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quote %s not found", id.String())
	}

	return nil
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []entity.QuoteStatus, to entity.QuoteStatus) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.Exec(ctx, query, id, to, from)
	if err != nil {
		r.log.Error("Failed to update quote status",
			zap.Error(err),
			zap.String("quote_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update quote %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *quoteRepository) Approve(ctx context.Context, id uuid.UUID, approverID uuid.UUID, approvedAt time.Time) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $2, approved_at = $3, approved_by = $4, updated_at = NOW()
		WHERE id = $1 AND status = ANY($5)
	`

	from := []entity.QuoteStatus{entity.QuoteStatusDraft, entity.QuoteStatusPending}
	result, err := r.db.Exec(ctx, query, id, entity.QuoteStatusApproved, approvedAt, approverID, from)
	if err != nil {
		r.log.Error("Failed to approve quote",
			zap.Error(err),
			zap.String("quote_id", id.String()),
			zap.String("approver_id", approverID.String()),
		)
		return false, fmt.Errorf("approve quote %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// CancelApproval reverts an approved quote to draft. approved_at/approved_by
// are left at their last values so the quote keeps a record of who last
// approved it.
func (r *quoteRepository) CancelApproval(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $2, cancellation_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.Exec(ctx, query, id, entity.QuoteStatusDraft, reason, entity.QuoteStatusApproved)
	if err != nil {
		r.log.Error("Failed to cancel quote approval",
			zap.Error(err),
			zap.String("quote_id", id.String()),
		)
		return false, fmt.Errorf("cancel approval of quote %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *quoteRepository) collectQuotes(rows pgx.Rows) ([]*entity.Quote, error) {
	var quotes []*entity.Quote
	for rows.Next() {
		quote, err := r.scanQuote(rows)
		if err != nil {
			r.log.Error("Failed to scan quote row", zap.Error(err))
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}
