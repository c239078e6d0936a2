package slotting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/events"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHorizonDays = 90
	defaultWorkers     = 8

	overUtilizedThreshold  = 90.0
	underUtilizedThreshold = 50.0

	highPriorityBand   = 80
	mediumPriorityBand = 60
)

// AnalyzeOptions tunes one analysis run.
type AnalyzeOptions struct {
	IncludeDeadStock     bool
	MinVelocityThreshold float64
	AnalysisHorizonDays  int
}

// Analyzer runs the classify/filter/score/recommend pipeline across the
// product catalog of a warehouse. It never mutates location state; it reads a
// snapshot through its ports and returns a transient analysis aggregate.
type Analyzer struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	rec       *Recommender
	emitter   events.Emitter
	workers   int
}

// NewAnalyzer wires the orchestrator. A nil emitter degrades to noop.
func NewAnalyzer(products repository.ProductRepository, locations repository.LocationRepository, rec *Recommender, emitter events.Emitter, workers int) *Analyzer {
	if emitter == nil {
		emitter = events.NewNoopEmitter()
	}
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Analyzer{
		products:  products,
		locations: locations,
		rec:       rec,
		emitter:   emitter,
		workers:   workers,
	}
}

// AnalyzeSlotting produces a ranked slotting analysis for one warehouse. An
// analysis with zero recommendations is a valid outcome, not an error; a
// failed fetch or a warehouse without locations is ErrDataUnavailable.
func (a *Analyzer) AnalyzeSlotting(ctx context.Context, tenantID, warehouseID string, opts AnalyzeOptions) (*domain.SlottingAnalysis, error) {
	horizon := opts.AnalysisHorizonDays
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}
	since := time.Now().AddDate(0, 0, -horizon)

	products, err := a.products.FetchProductsWithVelocity(ctx, tenantID, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch products: %v", ErrDataUnavailable, err)
	}

	assignments, err := a.locations.FetchCurrentAssignments(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch assignments: %v", ErrDataUnavailable, err)
	}

	available, err := a.locations.FetchAvailableLocations(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch locations: %v", ErrDataUnavailable, err)
	}
	if len(available) == 0 && len(assignments) == 0 {
		return nil, fmt.Errorf("%w: warehouse %s has no storage locations", ErrDataUnavailable, warehouseID)
	}

	candidates := a.filterProducts(products, opts)

	// Per-product scoring has no cross-product dependency; each worker writes
	// only its own slot, the ranking happens after all workers are done.
	results := make([]*domain.SlottingRecommendation, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := candidates[i]
			var current *domain.StorageLocation
			if loc, ok := assignments[p.ID]; ok {
				current = &loc
			}
			if rec, ok := a.rec.Recommend(p, current, available); ok {
				results[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recommendations := make([]domain.SlottingRecommendation, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}
	SortRecommendations(recommendations)

	analysis := &domain.SlottingAnalysis{
		WarehouseID:          warehouseID,
		AnalysisDate:         time.Now().UTC(),
		TotalProducts:        len(products),
		Recommendations:      recommendations,
		Summary:              summarize(recommendations),
		VelocityDistribution: velocityDistribution(products),
		ZoneUtilization:      CalculateZoneUtilization(assignments, available),
	}

	if err := a.emitter.Emit(ctx, events.AnalysisCompleted, map[string]any{
		"warehouse_id":    warehouseID,
		"recommendations": len(recommendations),
		"total_savings":   analysis.Summary.TotalSavings,
	}); err != nil {
		log.Warn().Err(err).Str("warehouse_id", warehouseID).Msg("slotting: emit analysis completed failed")
	}

	return analysis, nil
}

func (a *Analyzer) filterProducts(products []domain.Product, opts AnalyzeOptions) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !opts.IncludeDeadStock && p.Velocity == domain.VelocityDead {
			continue
		}
		if p.AverageDailyDemand < opts.MinVelocityThreshold {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func summarize(recs []domain.SlottingRecommendation) domain.AnalysisSummary {
	var summary domain.AnalysisSummary
	var roiSum float64
	var roiCount int
	for _, rec := range recs {
		switch {
		case rec.Priority >= highPriorityBand:
			summary.HighPriority++
		case rec.Priority >= mediumPriorityBand:
			summary.MediumPriority++
		default:
			summary.LowPriority++
		}
		summary.TotalSavings += rec.ROI.AnnualSavings
		summary.TotalCost += rec.ROI.CostToMove
		if rec.ROI.CostToMove > 0 {
			roiSum += rec.ROI.AnnualSavings / rec.ROI.CostToMove
			roiCount++
		}
	}
	if roiCount > 0 {
		summary.AverageROI = roiSum / float64(roiCount)
	}
	return summary
}

func velocityDistribution(products []domain.Product) map[domain.Velocity]int {
	dist := make(map[domain.Velocity]int, 4)
	for _, p := range products {
		dist[p.Velocity]++
	}
	return dist
}

// CalculateZoneUtilization aggregates cube usage per zone across assigned and
// available locations, attaching an advisory above 90% or below 50%.
func CalculateZoneUtilization(assignments map[string]domain.StorageLocation, available []domain.StorageLocation) []domain.ZoneUtilization {
	type zoneAgg struct {
		capacity float64
		used     float64
	}

	seen := make(map[string]struct{})
	zones := make(map[string]*zoneAgg)
	accumulate := func(loc domain.StorageLocation) {
		if _, ok := seen[loc.ID]; ok {
			return
		}
		seen[loc.ID] = struct{}{}
		agg, ok := zones[loc.Zone]
		if !ok {
			agg = &zoneAgg{}
			zones[loc.Zone] = agg
		}
		agg.capacity += loc.CapacityM3
		agg.used += loc.CapacityM3 * loc.CurrentOccupancy / 100
	}

	for _, loc := range assignments {
		accumulate(loc)
	}
	for _, loc := range available {
		accumulate(loc)
	}

	names := make([]string, 0, len(zones))
	for zone := range zones {
		names = append(names, zone)
	}
	sort.Strings(names)

	result := make([]domain.ZoneUtilization, 0, len(names))
	for _, zone := range names {
		agg := zones[zone]
		zu := domain.ZoneUtilization{
			Zone:       zone,
			CapacityM3: agg.capacity,
			UsedM3:     agg.used,
		}
		if agg.capacity > 0 {
			zu.UtilizationRate = agg.used / agg.capacity * 100
		}
		switch {
		case zu.UtilizationRate > overUtilizedThreshold:
			zu.Advisory = "over-utilized"
		case zu.UtilizationRate < underUtilizedThreshold:
			zu.Advisory = "under-utilized"
		}
		result = append(result, zu)
	}

	return result
}
