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

type ServiceRecordRepository interface {
	Create(ctx context.Context, record *entity.ServiceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceRecord, error)
	// UpdatePricing writes the current price code and its resolved price onto
	// the record's cached fields in one statement.
	UpdatePricing(ctx context.Context, id uuid.UUID, priceCode string, price float64) error
}

type serviceRecordRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRecordRepository(db database.PgxIface, log *zap.Logger) ServiceRecordRepository {
	return &serviceRecordRepository{
		db:  db,
		log: log.With(zap.String("repository", "service_record")),
	}
}

func (r *serviceRecordRepository) Create(ctx context.Context, record *entity.ServiceRecord) error {
	query := `
		INSERT INTO service_records (id, kind, name, price_code, base_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Kind,
		record.Name,
		record.PriceCode,
		record.BasePrice,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service record",
			zap.Error(err),
			zap.String("kind", string(record.Kind)),
			zap.String("price_code", record.PriceCode),
		)
		return fmt.Errorf("create service record: %w", err)
	}

	return nil
}

func (r *serviceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceRecord, error) {
	query := `
		SELECT id, kind, name, price_code, base_price, created_at, updated_at
		FROM service_records
		WHERE id = $1
	`

	var record entity.ServiceRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Kind,
		&record.Name,
		&record.PriceCode,
		&record.BasePrice,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service record by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service record by ID %s: %w", id.String(), err)
	}

	return &record, nil
}

func (r *serviceRecordRepository) UpdatePricing(ctx context.Context, id uuid.UUID, priceCode string, price float64) error {
	query := `UPDATE service_records SET price_code = $2, base_price = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, priceCode, price)
	if err != nil {
		r.log.Error("Failed to update service record pricing",
			zap.Error(err),
			zap.String("service_id", id.String()),
			zap.String("price_code", priceCode),
			zap.Float64("base_price", price),
		)
		return fmt.Errorf("update service record %s pricing: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service record %s not found", id.String())
	}

	return nil
}
