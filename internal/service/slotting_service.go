package service

import (
	"context"
	"fmt"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/cache"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/events"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/storage"
	"github.com/rs/zerolog/log"
)

// SlottingService is the application surface over the slotting core: cached
// analyses, explicit recommendation acceptance and what-if simulations.
type SlottingService struct {
	analyzer  *slotting.Analyzer
	simulator *slotting.Simulator
	cache     cache.AnalysisCache
	emitter   events.Emitter
	moveTasks repository.MoveTaskRepository
	storage   storage.ObjectStorage
}

// NewSlottingService wires the service. cacheImpl may be nil (degrades to
// noop); storageImpl may be nil (report export disabled).
func NewSlottingService(
	analyzer *slotting.Analyzer,
	simulator *slotting.Simulator,
	cacheImpl cache.AnalysisCache,
	emitter events.Emitter,
	moveTasks repository.MoveTaskRepository,
	storageImpl storage.ObjectStorage,
) *SlottingService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	if emitter == nil {
		emitter = events.NewNoopEmitter()
	}
	return &SlottingService{
		analyzer:  analyzer,
		simulator: simulator,
		cache:     cacheImpl,
		emitter:   emitter,
		moveTasks: moveTasks,
		storage:   storageImpl,
	}
}

// AnalyzeSlotting returns the ranked analysis for a warehouse, read through
// the cache. Cache failures degrade to a fresh analysis, never to an error.
func (s *SlottingService) AnalyzeSlotting(ctx context.Context, tenantID, warehouseID string, opts slotting.AnalyzeOptions) (*domain.SlottingAnalysis, error) {
	if analysis, ok, err := s.cache.GetAnalysis(ctx, warehouseID, opts); err == nil && ok {
		return analysis, nil
	} else if err != nil {
		log.Warn().Err(err).Str("warehouse_id", warehouseID).Msg("slotting: cache get analysis failed")
	}

	analysis, err := s.analyzer.AnalyzeSlotting(ctx, tenantID, warehouseID, opts)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAnalysis(ctx, warehouseID, opts, analysis); err != nil {
		log.Warn().Err(err).Str("warehouse_id", warehouseID).Msg("slotting: cache set analysis failed")
	}

	return analysis, nil
}

// ImplementRecommendation hands an accepted recommendation to the external
// move-execution system and returns the created task ID. This is the only
// path that creates move tasks; analysis runs never do.
func (s *SlottingService) ImplementRecommendation(ctx context.Context, warehouseID string, rec domain.SlottingRecommendation) (string, error) {
	taskID, err := s.moveTasks.CreateMoveTask(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("create move task for %s: %w", rec.ProductID, err)
	}

	// The snapshot this analysis ran against is stale once a move is queued.
	if err := s.cache.InvalidateWarehouse(ctx, warehouseID); err != nil {
		log.Warn().Err(err).Str("warehouse_id", warehouseID).Msg("slotting: cache invalidate failed")
	}

	if err := s.emitter.Emit(ctx, events.RecommendationImplemented, map[string]any{
		"warehouse_id": warehouseID,
		"product_id":   rec.ProductID,
		"move_task_id": taskID,
		"priority":     rec.Priority,
		"net_benefit":  rec.ROI.NetBenefit,
	}); err != nil {
		log.Warn().Err(err).Str("move_task_id", taskID).Msg("slotting: emit recommendation implemented failed")
	}

	return taskID, nil
}

// RunSimulation projects KPIs for a strategy without touching location data.
func (s *SlottingService) RunSimulation(warehouseID string, strategy domain.SlottingStrategy, baseline *domain.WarehouseKPIs) (*domain.SimulationResult, error) {
	return s.simulator.RunSimulation(warehouseID, strategy, baseline)
}

// Strategies lists the built-in simulation strategies.
func (s *SlottingService) Strategies() []domain.SlottingStrategy {
	return slotting.BuiltinStrategies()
}
