package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/service"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
)

type stubProductRepo struct {
	products []domain.Product
	err      error
}

func (s *stubProductRepo) FetchProductsWithVelocity(ctx context.Context, tenantID, warehouseID string, since time.Time) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductRepo) FetchMovementHistory(ctx context.Context, warehouseID string, since time.Time) ([]domain.MovementRecord, error) {
	return nil, s.err
}

type stubLocationRepo struct {
	available []domain.StorageLocation
}

func (s *stubLocationRepo) FetchCurrentAssignments(ctx context.Context, warehouseID string) (map[string]domain.StorageLocation, error) {
	return map[string]domain.StorageLocation{}, nil
}

func (s *stubLocationRepo) FetchAvailableLocations(ctx context.Context, warehouseID string) ([]domain.StorageLocation, error) {
	return s.available, nil
}

type stubMoveTaskRepo struct{}

func (s *stubMoveTaskRepo) CreateMoveTask(ctx context.Context, rec domain.SlottingRecommendation) (string, error) {
	return "task-42", nil
}

func testRouter(t *testing.T, available []domain.StorageLocation) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scorer, err := slotting.NewScorer(config.DefaultWeights())
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	rec := slotting.NewRecommender(scorer, config.DefaultCosts())

	products := &stubProductRepo{products: []domain.Product{{
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
	analyzer := slotting.NewAnalyzer(products, &stubLocationRepo{available: available}, rec, nil, 2)
	simulator := slotting.NewSimulator(config.DefaultCosts())
	svc := service.NewSlottingService(analyzer, simulator, nil, nil, &stubMoveTaskRepo{}, nil)

	h := NewSlottingHandler(svc)
	router := gin.New()
	router.GET("/strategies", h.Strategies)
	router.POST("/warehouses/:warehouse_id/analyze", h.Analyze)
	router.POST("/warehouses/:warehouse_id/simulate", h.Simulate)
	router.POST("/warehouses/:warehouse_id/recommendations/implement", h.Implement)
	router.GET("/warehouses/:warehouse_id/reports", h.Reports)
	return router
}

func pickFace() domain.StorageLocation {
	return domain.StorageLocation{
		ID:               "l1",
		Code:             "P-01-01",
		Zone:             "P",
		Type:             domain.LocationPickFace,
		Ergonomics:       domain.ErgonomicGolden,
		CapacityM3:       1,
		DistanceFromDock: 10,
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := testRouter(t, []domain.StorageLocation{pickFace()})

	req := httptest.NewRequest(http.MethodPost, "/warehouses/wh1/analyze?horizon_days=30", nil)
	req.Header.Set("X-Tenant-ID", "t1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var analysis domain.SlottingAnalysis
	if err := json.Unmarshal(w.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("response is not a valid analysis: %v", err)
	}
	if analysis.WarehouseID != "wh1" {
		t.Errorf("warehouse = %q, want wh1", analysis.WarehouseID)
	}
	if len(analysis.Recommendations) != 1 {
		t.Errorf("got %d recommendations, want 1", len(analysis.Recommendations))
	}
}

func TestAnalyzeEndpointNoLocations(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/warehouses/wh1/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when location data is unavailable", w.Code)
	}
}

func TestSimulateEndpointInvalidStrategy(t *testing.T) {
	router := testRouter(t, []domain.StorageLocation{pickFace()})

	body := `{"strategy":{"name":"","rules":[]}}`
	req := httptest.NewRequest(http.MethodPost, "/warehouses/wh1/simulate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for a nameless strategy (body %s)", w.Code, w.Body.String())
	}
}

func TestSimulateEndpoint(t *testing.T) {
	router := testRouter(t, []domain.StorageLocation{pickFace()})

	body := `{"strategy":{"name":"velocity-based","expected_improvements":{"pick_time_reduction_pct":20}}}`
	req := httptest.NewRequest(http.MethodPost, "/warehouses/wh1/simulate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var result domain.SimulationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a valid simulation result: %v", err)
	}
	if result.ProjectedState.AveragePickTimeMin >= result.CurrentState.AveragePickTimeMin {
		t.Error("projected pick time should drop under a pick-time reduction")
	}
}

func TestImplementEndpoint(t *testing.T) {
	router := testRouter(t, []domain.StorageLocation{pickFace()})

	body := `{"recommendation":{"product_id":"p1","priority":90,"recommended_location":{"id":"l1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/warehouses/wh1/recommendations/implement", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["move_task_id"] != "task-42" {
		t.Errorf("move_task_id = %q, want task-42", resp["move_task_id"])
	}
}

func TestStrategiesEndpoint(t *testing.T) {
	router := testRouter(t, []domain.StorageLocation{pickFace()})

	req := httptest.NewRequest(http.MethodGet, "/strategies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Strategies []domain.SlottingStrategy `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Strategies) != 3 {
		t.Errorf("got %d strategies, want 3", len(resp.Strategies))
	}
}

func TestReportsWithoutStorageConfigured(t *testing.T) {
	router := testRouter(t, []domain.StorageLocation{pickFace()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/warehouses/wh1/reports", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.Contains(body["error"], "not configured") {
		t.Errorf("error = %q, want storage not configured", body["error"])
	}
}
