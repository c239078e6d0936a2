package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"golang.org/x/sync/semaphore"
)

// saturatedDB returns a DB whose semaphore has no free permits, so any
// acquire with a cancelled context fails before the connection is touched.
func saturatedDB(t *testing.T) *DB {
	t.Helper()
	sem := semaphore.NewWeighted(1)
	if err := sem.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("failed to saturate semaphore: %v", err)
	}
	return &DB{sem: sem}
}

func TestWithTxAcquireHonorsCancelledContext(t *testing.T) {
	db := saturatedDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		t.Fatal("transaction body ran despite cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WithTx() error = %v, want context.Canceled", err)
	}
	if !strings.Contains(err.Error(), "could not acquire semaphore") {
		t.Fatalf("WithTx() error = %q, want semaphore acquire failure", err)
	}
}

func TestCreateMoveTaskRoutesThroughTransaction(t *testing.T) {
	repo := NewMoveTaskRepository(saturatedDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := domain.SlottingRecommendation{
		ProductID:           "p1",
		SKU:                 "SKU-p1",
		RecommendedLocation: domain.StorageLocation{ID: "l1", Code: "P-01-01"},
	}
	_, err := repo.CreateMoveTask(ctx, rec)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("CreateMoveTask() error = %v, want context.Canceled", err)
	}
}
