package slotting

import (
	"fmt"
	"sort"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

const goldenZonePriority = 95

// GoldenZoneAnalyzer checks that the ergonomically ideal locations hold the
// highest-velocity products and emits corrective moves for mismatches.
type GoldenZoneAnalyzer struct {
	rec *Recommender
}

// NewGoldenZoneAnalyzer creates a golden-zone analyzer.
func NewGoldenZoneAnalyzer(rec *Recommender) *GoldenZoneAnalyzer {
	return &GoldenZoneAnalyzer{rec: rec}
}

// Analyze compares golden-location occupants against the top-N products by
// demand, where N is the number of golden locations, and recommends moving
// each misplaced top product into a free, compatible golden slot.
func (g *GoldenZoneAnalyzer) Analyze(products []domain.Product, assignments map[string]domain.StorageLocation, available []domain.StorageLocation) []domain.SlottingRecommendation {
	golden := make([]domain.StorageLocation, 0)
	for _, loc := range available {
		if loc.Ergonomics == domain.ErgonomicGolden {
			golden = append(golden, loc)
		}
	}
	inGolden := make(map[string]struct{})
	goldenCount := len(golden)
	for _, loc := range assignments {
		if loc.Ergonomics == domain.ErgonomicGolden {
			goldenCount++
			if loc.CurrentProductID != "" {
				inGolden[loc.CurrentProductID] = struct{}{}
			}
		}
	}
	if goldenCount == 0 {
		return nil
	}

	// Top-N products by demand, deterministic on ties.
	ranked := append([]domain.Product(nil), products...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageDailyDemand != ranked[j].AverageDailyDemand {
			return ranked[i].AverageDailyDemand > ranked[j].AverageDailyDemand
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > goldenCount {
		ranked = ranked[:goldenCount]
	}

	recs := make([]domain.SlottingRecommendation, 0)
	for _, p := range ranked {
		if _, ok := inGolden[p.ID]; ok {
			continue
		}
		var current *domain.StorageLocation
		if loc, ok := assignments[p.ID]; ok {
			current = &loc
		}
		rec, ok := g.rec.Recommend(p, current, golden)
		if !ok {
			continue
		}
		rec.Priority = goldenZonePriority
		rec.Reason = fmt.Sprintf("top-velocity product %s (%.1f/day) is outside the golden zone; slot %s frees up ergonomic capacity",
			p.SKU, p.AverageDailyDemand, rec.RecommendedLocation.Code)
		recs = append(recs, *rec)
	}

	SortRecommendations(recs)
	return recs
}
