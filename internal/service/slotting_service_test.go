package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/events"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/storage"
)

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) FetchProductsWithVelocity(ctx context.Context, tenantID, warehouseID string, since time.Time) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) FetchMovementHistory(ctx context.Context, warehouseID string, since time.Time) ([]domain.MovementRecord, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	assignments map[string]domain.StorageLocation
	available   []domain.StorageLocation
}

func (f *fakeLocationRepo) FetchCurrentAssignments(ctx context.Context, warehouseID string) (map[string]domain.StorageLocation, error) {
	return f.assignments, nil
}

func (f *fakeLocationRepo) FetchAvailableLocations(ctx context.Context, warehouseID string) ([]domain.StorageLocation, error) {
	return f.available, nil
}

type fakeAnalysisCache struct {
	stored      map[string]*domain.SlottingAnalysis
	getErr      error
	invalidated []string
}

func newFakeAnalysisCache() *fakeAnalysisCache {
	return &fakeAnalysisCache{stored: make(map[string]*domain.SlottingAnalysis)}
}

func (f *fakeAnalysisCache) GetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions) (*domain.SlottingAnalysis, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	analysis, ok := f.stored[warehouseID]
	return analysis, ok, nil
}

func (f *fakeAnalysisCache) SetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions, analysis *domain.SlottingAnalysis) error {
	f.stored[warehouseID] = analysis
	return nil
}

func (f *fakeAnalysisCache) InvalidateWarehouse(ctx context.Context, warehouseID string) error {
	f.invalidated = append(f.invalidated, warehouseID)
	delete(f.stored, warehouseID)
	return nil
}

type fakeEmitter struct {
	names []string
}

func (f *fakeEmitter) Emit(ctx context.Context, name string, payload any) error {
	f.names = append(f.names, name)
	return nil
}

type fakeMoveTaskRepo struct {
	created []domain.SlottingRecommendation
	err     error
}

func (f *fakeMoveTaskRepo) CreateMoveTask(ctx context.Context, rec domain.SlottingRecommendation) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, rec)
	return "task-1", nil
}

type fakeObjectStorage struct {
	uploads map[string][]byte
	err     error
	listErr error
}

func (f *fakeObjectStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	objects := make([]storage.ObjectInfo, 0, len(f.uploads))
	for k, v := range f.uploads {
		if strings.HasPrefix(k, prefix) {
			objects = append(objects, storage.ObjectInfo{Key: k, Size: int64(len(v))})
		}
	}
	return objects, nil
}

func (f *fakeObjectStorage) UploadObject(ctx context.Context, key string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = payload
	return nil
}

func testService(t *testing.T, cache *fakeAnalysisCache, emitter *fakeEmitter, moves *fakeMoveTaskRepo, store *fakeObjectStorage) *SlottingService {
	t.Helper()

	scorer, err := slotting.NewScorer(config.DefaultWeights())
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	rec := slotting.NewRecommender(scorer, config.DefaultCosts())

	products := &fakeProductRepo{products: []domain.Product{{
		ID:                 "p1",
		SKU:                "SKU-p1",
		LengthM:            0.4,
		WidthM:             0.4,
		HeightM:            0.3,
		AverageDailyDemand: 25,
		PickFrequency:      12,
		Velocity:           domain.VelocityHigh,
		ABCClass:           domain.ABCClassA,
	}}}
	locations := &fakeLocationRepo{
		available: []domain.StorageLocation{{
			ID:               "l1",
			Code:             "LOC-l1",
			Zone:             "P",
			Type:             domain.LocationPickFace,
			Ergonomics:       domain.ErgonomicGolden,
			CapacityM3:       1,
			DistanceFromDock: 10,
		}},
	}
	analyzer := slotting.NewAnalyzer(products, locations, rec, nil, 2)
	simulator := slotting.NewSimulator(config.DefaultCosts())

	svc := NewSlottingService(analyzer, simulator, nil, nil, moves, nil)
	if cache != nil {
		svc.cache = cache
	}
	if emitter != nil {
		svc.emitter = emitter
	}
	if store != nil {
		svc.storage = store
	}
	return svc
}

func TestAnalyzeSlottingCacheMiss(t *testing.T) {
	cache := newFakeAnalysisCache()
	svc := testService(t, cache, nil, nil, nil)

	analysis, err := svc.AnalyzeSlotting(context.Background(), "t1", "wh1", slotting.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("AnalyzeSlotting() error = %v", err)
	}
	if len(analysis.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(analysis.Recommendations))
	}
	if _, ok := cache.stored["wh1"]; !ok {
		t.Error("analysis was not written back to the cache")
	}
}

func TestAnalyzeSlottingCacheHit(t *testing.T) {
	cache := newFakeAnalysisCache()
	cached := &domain.SlottingAnalysis{WarehouseID: "wh1", TotalProducts: 42}
	cache.stored["wh1"] = cached

	svc := testService(t, cache, nil, nil, nil)

	analysis, err := svc.AnalyzeSlotting(context.Background(), "t1", "wh1", slotting.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("AnalyzeSlotting() error = %v", err)
	}
	if analysis != cached {
		t.Error("cache hit should short-circuit the analyzer")
	}
}

func TestAnalyzeSlottingCacheFailureDegrades(t *testing.T) {
	cache := newFakeAnalysisCache()
	cache.getErr = errors.New("redis down")

	svc := testService(t, cache, nil, nil, nil)

	analysis, err := svc.AnalyzeSlotting(context.Background(), "t1", "wh1", slotting.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("a cache failure must not fail the analysis: %v", err)
	}
	if analysis == nil || len(analysis.Recommendations) != 1 {
		t.Fatal("expected a fresh analysis despite the cache failure")
	}
}

func TestImplementRecommendation(t *testing.T) {
	cache := newFakeAnalysisCache()
	cache.stored["wh1"] = &domain.SlottingAnalysis{WarehouseID: "wh1"}
	emitter := &fakeEmitter{}
	moves := &fakeMoveTaskRepo{}

	svc := testService(t, cache, emitter, moves, nil)

	rec := domain.SlottingRecommendation{ProductID: "p1", Priority: 90}
	taskID, err := svc.ImplementRecommendation(context.Background(), "wh1", rec)
	if err != nil {
		t.Fatalf("ImplementRecommendation() error = %v", err)
	}
	if taskID != "task-1" {
		t.Errorf("task id = %q, want task-1", taskID)
	}
	if len(moves.created) != 1 || moves.created[0].ProductID != "p1" {
		t.Errorf("created tasks = %v, want one for p1", moves.created)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "wh1" {
		t.Errorf("invalidated = %v, want [wh1]", cache.invalidated)
	}
	if len(emitter.names) != 1 || emitter.names[0] != events.RecommendationImplemented {
		t.Errorf("emitted = %v, want [%s]", emitter.names, events.RecommendationImplemented)
	}
}

func TestImplementRecommendationTaskFailure(t *testing.T) {
	moves := &fakeMoveTaskRepo{err: errors.New("downstream unavailable")}
	svc := testService(t, newFakeAnalysisCache(), &fakeEmitter{}, moves, nil)

	if _, err := svc.ImplementRecommendation(context.Background(), "wh1", domain.SlottingRecommendation{ProductID: "p1"}); err == nil {
		t.Fatal("expected the move task failure to propagate")
	}
}

func TestRunSimulationRejectsInvalidStrategy(t *testing.T) {
	svc := testService(t, newFakeAnalysisCache(), nil, nil, nil)

	_, err := svc.RunSimulation("wh1", domain.SlottingStrategy{}, nil)
	if !errors.Is(err, slotting.ErrInvalidStrategy) {
		t.Fatalf("error = %v, want ErrInvalidStrategy", err)
	}
}

func TestStrategiesListsBuiltins(t *testing.T) {
	svc := testService(t, newFakeAnalysisCache(), nil, nil, nil)

	strategies := svc.Strategies()
	if len(strategies) == 0 {
		t.Fatal("no strategies listed")
	}
	names := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		names[s.Name] = struct{}{}
	}
	if _, ok := names["velocity-based"]; !ok {
		t.Errorf("strategies = %v, want velocity-based included", names)
	}
}
