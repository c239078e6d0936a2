package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
	"github.com/lib/pq"
)

type productRepository struct {
	db         *sqlx.DB
	classifier *slotting.Classifier
}

// NewProductRepository builds the Postgres product port. The classifier is
// applied to SQL-side movement aggregates so products arrive pre-classified.
func NewProductRepository(db *sqlx.DB, classifier *slotting.Classifier) repository.ProductRepository {
	return &productRepository{db: db, classifier: classifier}
}

type productRow struct {
	ID             string          `db:"id"`
	SKU            string          `db:"sku"`
	Name           string          `db:"name"`
	Category       string          `db:"category"`
	LengthM        float64         `db:"length_m"`
	WidthM         float64         `db:"width_m"`
	HeightM        float64         `db:"height_m"`
	WeightKg       float64         `db:"weight_kg"`
	Temperature    sql.NullString  `db:"temperature"`
	Hazmat         bool            `db:"hazmat"`
	Fragile        bool            `db:"fragile"`
	Stackable      bool            `db:"stackable"`
	MaxStackHeight sql.NullInt64   `db:"max_stack_height"`
	SeasonalIndex  sql.NullFloat64 `db:"seasonal_index"`
	PeakMonths     pq.Int64Array   `db:"seasonal_peak_months"`
	TotalQty       float64         `db:"total_qty"`
	OutCount       float64         `db:"out_count"`
}

func (r *productRepository) FetchProductsWithVelocity(ctx context.Context, tenantID, warehouseID string, since time.Time) ([]domain.Product, error) {
	query := `
		SELECT
			p.id,
			p.sku,
			p.name,
			p.category,
			p.length_m,
			p.width_m,
			p.height_m,
			p.weight_kg,
			p.temperature,
			p.hazmat,
			p.fragile,
			p.stackable,
			p.max_stack_height,
			p.seasonal_index,
			p.seasonal_peak_months,
			COALESCE(SUM(m.quantity), 0) AS total_qty,
			COALESCE(COUNT(m.id) FILTER (WHERE m.movement_type = 'OUT'), 0) AS out_count
		FROM products p
		LEFT JOIN stock_movements m
			ON m.product_id = p.id
			AND m.warehouse_id = $2
			AND m.occurred_at >= $3
		WHERE p.tenant_id = $1
		GROUP BY p.id
		ORDER BY p.id
	`

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, warehouseID, since); err != nil {
		return nil, fmt.Errorf("error fetching products with velocity: %w", err)
	}

	days := time.Since(since).Hours() / 24
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		cls := r.classifier.FromAggregates(row.TotalQty, row.OutCount, days)

		p := domain.Product{
			ID:                 row.ID,
			SKU:                row.SKU,
			Name:               row.Name,
			Category:           row.Category,
			LengthM:            row.LengthM,
			WidthM:             row.WidthM,
			HeightM:            row.HeightM,
			WeightKg:           row.WeightKg,
			AverageDailyDemand: cls.AverageDailyDemand,
			PickFrequency:      cls.PickFrequency,
			Velocity:           cls.Velocity,
			ABCClass:           cls.ABCClass,
		}

		if row.Temperature.Valid || row.Hazmat || row.Fragile || !row.Stackable {
			req := &domain.StorageRequirements{
				Hazmat:    row.Hazmat,
				Fragile:   row.Fragile,
				Stackable: row.Stackable,
			}
			if row.Temperature.Valid {
				req.Temperature = row.Temperature.String
			}
			if row.MaxStackHeight.Valid {
				req.MaxStackHeight = int(row.MaxStackHeight.Int64)
			}
			p.StorageReq = req
		}

		if row.SeasonalIndex.Valid && row.SeasonalIndex.Float64 > 0 {
			seasonality := &domain.Seasonality{Index: row.SeasonalIndex.Float64}
			for _, m := range row.PeakMonths {
				if m >= 1 && m <= 12 {
					seasonality.PeakMonths = append(seasonality.PeakMonths, time.Month(m))
				}
			}
			p.Seasonality = seasonality
		}

		products = append(products, p)
	}

	return products, nil
}

func (r *productRepository) FetchMovementHistory(ctx context.Context, warehouseID string, since time.Time) ([]domain.MovementRecord, error) {
	query := `
		SELECT
			product_id,
			quantity,
			movement_type,
			COALESCE(reference, '') AS reference,
			occurred_at
		FROM stock_movements
		WHERE warehouse_id = $1
		  AND occurred_at >= $2
		ORDER BY occurred_at, product_id
	`

	var movements []domain.MovementRecord
	if err := r.db.SelectContext(ctx, &movements, query, warehouseID, since); err != nil {
		return nil, fmt.Errorf("error fetching movement history: %w", err)
	}

	return movements, nil
}
