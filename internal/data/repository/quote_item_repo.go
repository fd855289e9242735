package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuoteItemRepository interface {
	// Upsert inserts or updates the item keyed by (quote_id, service_kind,
	// service_id); quantity and prices are overwritten on conflict.
	Upsert(ctx context.Context, item *entity.QuoteItem) error
	FindByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]*entity.QuoteItem, error)
	Delete(ctx context.Context, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID) error
}

type quoteItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQuoteItemRepository(db database.PgxIface, log *zap.Logger) QuoteItemRepository {
	return &quoteItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "quote_item")),
	}
}

func (r *quoteItemRepository) Upsert(ctx context.Context, item *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, service_kind, service_id, quantity,
		                         unit_price, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (quote_id, service_kind, service_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              unit_price = EXCLUDED.unit_price,
		              total_price = EXCLUDED.total_price,
		              updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.QuoteID,
		item.ServiceKind,
		item.ServiceID,
		item.Quantity,
		item.UnitPrice,
		item.TotalPrice,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert quote item",
			zap.Error(err),
			zap.String("quote_id", item.QuoteID.String()),
			zap.String("service_kind", string(item.ServiceKind)),
			zap.String("service_id", item.ServiceID.String()),
		)
		return fmt.Errorf("upsert quote item for quote %s: %w", item.QuoteID.String(), err)
	}

	return nil
}

func (r *quoteItemRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, service_kind, service_id, quantity, unit_price, total_price,
		       created_at, updated_at
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, quoteID)
	if err != nil {
		r.log.Error("Failed to find quote items",
			zap.Error(err),
			zap.String("quote_id", quoteID.String()),
		)
		return nil, fmt.Errorf("find items of quote %s: %w", quoteID.String(), err)
	}
	defer rows.Close()

	var items []*entity.QuoteItem
	for rows.Next() {
		var item entity.QuoteItem
		err := rows.Scan(
			&item.ID,
			&item.QuoteID,
			&item.ServiceKind,
			&item.ServiceID,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan quote item row", zap.Error(err))
			return nil, fmt.Errorf("scan quote item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *quoteItemRepository) Delete(ctx context.Context, quoteID uuid.UUID, kind entity.ServiceKind, serviceID uuid.UUID) error {
	query := `
		DELETE FROM quote_items
		WHERE quote_id = $1 AND service_kind = $2 AND service_id = $3
	`

	result, err := r.db.Exec(ctx, query, quoteID, kind, serviceID)
	if err != nil {
		r.log.Error("Failed to delete quote item",
			zap.Error(err),
			zap.String("quote_id", quoteID.String()),
			zap.String("service_kind", string(kind)),
		)
		return fmt.Errorf("delete quote item of quote %s: %w", quoteID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quote item not found")
	}

	return nil
}
