package slotting

import (
	"fmt"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

const (
	// Seasonality index above which an upcoming peak predicts a velocity
	// upgrade worth pre-positioning for.
	seasonalUpgradeIndex = 1.5

	seasonalRevertMonths = 3
)

// SeasonalAnalyzer schedules time-boxed moves for products whose historical
// monthly spikes predict a velocity upgrade in the upcoming months.
type SeasonalAnalyzer struct {
	rec *Recommender
}

// NewSeasonalAnalyzer creates a seasonal analyzer.
func NewSeasonalAnalyzer(rec *Recommender) *SeasonalAnalyzer {
	return &SeasonalAnalyzer{rec: rec}
}

// Analyze finds products with a peak in the given upcoming months and a
// seasonality index past the upgrade threshold, and recommends moving them to
// faster locations ahead of the peak. Each recommendation carries an
// implement-by date (start of the first peak month) and a revert-by date
// three months later.
func (s *SeasonalAnalyzer) Analyze(now time.Time, upcoming []time.Month, products []domain.Product, assignments map[string]domain.StorageLocation, available []domain.StorageLocation) []domain.SlottingRecommendation {
	upcomingSet := make(map[time.Month]struct{}, len(upcoming))
	for _, m := range upcoming {
		upcomingSet[m] = struct{}{}
	}

	recs := make([]domain.SlottingRecommendation, 0)
	for _, p := range products {
		if p.Seasonality == nil || p.Seasonality.Index < seasonalUpgradeIndex {
			continue
		}
		peak, ok := firstUpcomingPeak(now, p.Seasonality.PeakMonths, upcomingSet)
		if !ok {
			continue
		}

		// Score the product as its upgraded self so the candidate search
		// targets pick-face/forward slots.
		upgraded := p
		upgraded.Velocity = upgradeVelocity(p.Velocity)
		if upgraded.Velocity == domain.VelocityHigh {
			upgraded.ABCClass = domain.ABCClassA
		}

		var current *domain.StorageLocation
		if loc, ok := assignments[p.ID]; ok {
			current = &loc
		}
		rec, ok := s.rec.Recommend(upgraded, current, available)
		if !ok {
			continue
		}

		implementBy := monthStart(now, peak)
		revertBy := implementBy.AddDate(0, seasonalRevertMonths, 0)
		rec.ImplementBy = &implementBy
		rec.RevertBy = &revertBy
		rec.Reason = fmt.Sprintf("seasonal peak in %s (index %.1f); pre-position %s before %s and revert by %s",
			peak, p.Seasonality.Index, p.SKU, implementBy.Format("2006-01-02"), revertBy.Format("2006-01-02"))
		recs = append(recs, *rec)
	}

	SortRecommendations(recs)
	return recs
}

func firstUpcomingPeak(now time.Time, peaks []time.Month, upcoming map[time.Month]struct{}) (time.Month, bool) {
	// Walk forward from the current month so "first" is chronological, not
	// the order the peaks were declared in.
	for offset := 0; offset < 12; offset++ {
		m := time.Month((int(now.Month())-1+offset)%12 + 1)
		if _, ok := upcoming[m]; !ok {
			continue
		}
		for _, peak := range peaks {
			if peak == m {
				return m, true
			}
		}
	}
	return 0, false
}

func upgradeVelocity(v domain.Velocity) domain.Velocity {
	switch v {
	case domain.VelocityMedium:
		return domain.VelocityHigh
	case domain.VelocityLow:
		return domain.VelocityMedium
	case domain.VelocityDead:
		return domain.VelocityLow
	}
	return v
}

func monthStart(now time.Time, month time.Month) time.Time {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
