package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/service"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
)

type SlottingHandler struct {
	service *service.SlottingService
}

func NewSlottingHandler(service *service.SlottingService) *SlottingHandler {
	return &SlottingHandler{service: service}
}

func (h *SlottingHandler) parseOptions(c *gin.Context) slotting.AnalyzeOptions {
	opts := slotting.AnalyzeOptions{
		AnalysisHorizonDays: 90,
	}

	if v := strings.TrimSpace(c.Query("include_dead_stock")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.IncludeDeadStock = b
		}
	}
	if v := strings.TrimSpace(c.Query("min_velocity")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			opts.MinVelocityThreshold = f
		}
	}
	if days, err := strconv.Atoi(c.DefaultQuery("horizon_days", "90")); err == nil && days > 0 {
		opts.AnalysisHorizonDays = days
	}

	return opts
}

// Analyze runs the slotting analysis for a warehouse.
func (h *SlottingHandler) Analyze(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Param("warehouse_id"))
	if warehouseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id is required"})
		return
	}
	tenantID := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))

	analysis, err := h.service.AnalyzeSlotting(c.Request.Context(), tenantID, warehouseID, h.parseOptions(c))
	if err != nil {
		if errors.Is(err, slotting.ErrDataUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

type implementRequest struct {
	Recommendation domain.SlottingRecommendation `json:"recommendation" binding:"required"`
}

// Implement accepts a recommendation and hands it to move execution.
func (h *SlottingHandler) Implement(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Param("warehouse_id"))
	if warehouseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id is required"})
		return
	}

	var req implementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	taskID, err := h.service.ImplementRecommendation(c.Request.Context(), warehouseID, req.Recommendation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"move_task_id": taskID})
}

type simulateRequest struct {
	Strategy domain.SlottingStrategy `json:"strategy" binding:"required"`
	Baseline *domain.WarehouseKPIs   `json:"baseline,omitempty"`
}

// Simulate projects KPIs for a strategy without mutating location data.
func (h *SlottingHandler) Simulate(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Param("warehouse_id"))
	if warehouseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id is required"})
		return
	}

	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.RunSimulation(warehouseID, req.Strategy, req.Baseline)
	if err != nil {
		if errors.Is(err, slotting.ErrInvalidStrategy) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Strategies lists the built-in simulation strategies.
func (h *SlottingHandler) Strategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": h.service.Strategies()})
}

// Reports lists the report objects previously exported for a warehouse.
func (h *SlottingHandler) Reports(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Param("warehouse_id"))
	if warehouseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id is required"})
		return
	}

	objects, err := h.service.ListReports(c.Request.Context(), warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": objects})
}

// Export renders the current analysis as CSV and uploads it to object storage.
func (h *SlottingHandler) Export(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Param("warehouse_id"))
	if warehouseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id is required"})
		return
	}
	tenantID := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))

	analysis, err := h.service.AnalyzeSlotting(c.Request.Context(), tenantID, warehouseID, h.parseOptions(c))
	if err != nil {
		if errors.Is(err, slotting.ErrDataUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	key, err := h.service.ExportAnalysis(c.Request.Context(), analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"object_key": key})
}
