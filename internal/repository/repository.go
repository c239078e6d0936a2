// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

// ProductRepository supplies the product catalog with classification inputs.
// Implementations must include movement aggregates sufficient for the
// classifier math (demand, pick frequency).
type ProductRepository interface {
	FetchProductsWithVelocity(ctx context.Context, tenantID, warehouseID string, since time.Time) ([]domain.Product, error)
	FetchMovementHistory(ctx context.Context, warehouseID string, since time.Time) ([]domain.MovementRecord, error)
}

// LocationRepository supplies point-in-time location snapshots.
type LocationRepository interface {
	FetchCurrentAssignments(ctx context.Context, warehouseID string) (map[string]domain.StorageLocation, error)
	FetchAvailableLocations(ctx context.Context, warehouseID string) ([]domain.StorageLocation, error)
}

// MoveTaskRepository hands an accepted recommendation to the external
// move-execution system. The analyzer never calls this on its own.
type MoveTaskRepository interface {
	CreateMoveTask(ctx context.Context, rec domain.SlottingRecommendation) (string, error)
}
