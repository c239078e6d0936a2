package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/storage"
)

// ExportAnalysis renders the analysis as CSV and uploads it to object
// storage, returning the object key. Returns an error when storage is not
// configured.
func (s *SlottingService) ExportAnalysis(ctx context.Context, analysis *domain.SlottingAnalysis) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("report export: object storage is not configured")
	}

	payload, err := renderAnalysisCSV(analysis)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("slotting/%s/%s.csv",
		analysis.WarehouseID, analysis.AnalysisDate.Format("20060102T150405"))
	if err := s.storage.UploadObject(ctx, key, payload); err != nil {
		return "", fmt.Errorf("report export: %w", err)
	}

	return key, nil
}

// ListReports returns the report objects previously exported for a warehouse.
// Returns an error when storage is not configured.
func (s *SlottingService) ListReports(ctx context.Context, warehouseID string) ([]storage.ObjectInfo, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("report listing: object storage is not configured")
	}

	prefix := fmt.Sprintf("slotting/%s/", warehouseID)
	objects, err := s.storage.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("report listing: %w", err)
	}

	return objects, nil
}

func renderAnalysisCSV(analysis *domain.SlottingAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{
		"product_id",
		"sku",
		"current_location",
		"recommended_location",
		"priority",
		"pick_time_reduction_min",
		"travel_distance_reduction_m",
		"estimated_minutes",
		"cost_to_move",
		"annual_savings",
		"payback_period_days",
		"net_benefit",
		"reason",
	}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, rec := range analysis.Recommendations {
		currentCode := ""
		if rec.CurrentLocation != nil {
			currentCode = rec.CurrentLocation.Code
		}
		record := []string{
			rec.ProductID,
			rec.SKU,
			currentCode,
			rec.RecommendedLocation.Code,
			strconv.Itoa(rec.Priority),
			formatFloat(rec.Impact.PickTimeReductionMin),
			formatFloat(rec.Impact.TravelDistanceReduction),
			formatFloat(rec.Effort.EstimatedMinutes),
			formatFloat(rec.ROI.CostToMove),
			formatFloat(rec.ROI.AnnualSavings),
			formatFloat(rec.ROI.PaybackDays),
			formatFloat(rec.ROI.NetBenefit),
			rec.Reason,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
