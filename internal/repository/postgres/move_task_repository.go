package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository"
)

type moveTaskRepository struct {
	db *DB
}

// NewMoveTaskRepository builds the Postgres move-task port. Inserted rows are
// picked up by the external move-execution system; this repository never
// updates location occupancy itself.
func NewMoveTaskRepository(db *DB) repository.MoveTaskRepository {
	return &moveTaskRepository{db: db}
}

func (r *moveTaskRepository) CreateMoveTask(ctx context.Context, rec domain.SlottingRecommendation) (string, error) {
	query := `
		INSERT INTO move_tasks (
			product_id, sku,
			from_location_id, to_location_id,
			reason, priority,
			estimated_minutes, cost_to_move, annual_savings,
			status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', NOW())
		RETURNING id
	`

	var fromLocation any
	if rec.CurrentLocation != nil {
		fromLocation = rec.CurrentLocation.ID
	}

	var taskID string
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			rec.ProductID,
			rec.SKU,
			fromLocation,
			rec.RecommendedLocation.ID,
			rec.Reason,
			rec.Priority,
			rec.Effort.EstimatedMinutes,
			rec.ROI.CostToMove,
			rec.ROI.AnnualSavings,
		).Scan(&taskID)
	})
	if err != nil {
		return "", fmt.Errorf("error creating move task: %w", err)
	}

	return taskID, nil
}
