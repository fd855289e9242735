package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PriceRepository reads the per-kind price catalog tables. The tables are
// owned elsewhere; this repository never writes them.
type PriceRepository interface {
	// Lookup returns the stored price for a kind's price code. found is false
	// when no row matches; callers must not substitute a zero price.
	Lookup(ctx context.Context, kind entity.ServiceKind, code string) (price float64, found bool, err error)
}

type priceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceRepository(db database.PgxIface, log *zap.Logger) PriceRepository {
	return &priceRepository{
		db:  db,
		log: log.With(zap.String("repository", "price")),
	}
}

func (r *priceRepository) Lookup(ctx context.Context, kind entity.ServiceKind, code string) (float64, bool, error) {
	pt, ok := entity.PriceTableFor(kind)
	if !ok {
		return 0, false, fmt.Errorf("unknown service kind %q", string(kind))
	}

	// Table and column come from the closed ServiceKind set, never from
	// caller input, so string assembly here is safe.
	query := fmt.Sprintf(`SELECT price FROM %s WHERE %s = $1`, pt.Table, pt.KeyColumn)

	var price float64
	err := r.db.QueryRow(ctx, query, code).Scan(&price)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.log.Error("Failed to look up price",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("code", code),
		)
		return 0, false, fmt.Errorf("look up %s price %s: %w", string(kind), code, err)
	}

	return price, true, nil
}
