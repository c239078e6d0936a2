package slotting

import (
	"fmt"
	"math"
	"sort"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

const (
	basePriority = 50

	paybackBonusDays = 30
	daysPerYear      = 365
)

// Recommender finds the best-scoring compatible location per product and
// packages the move as a recommendation with effort and ROI estimates.
type Recommender struct {
	scorer *Scorer
	costs  config.SlottingCosts
}

// NewRecommender creates a recommender around a scorer and a cost model.
func NewRecommender(scorer *Scorer, costs config.SlottingCosts) *Recommender {
	return &Recommender{scorer: scorer, costs: costs}
}

// FindOptimalLocation scans the candidate locations and returns the
// highest-scoring compatible one that would strictly improve on the current
// assignment. Ties break on location ID so repeated runs pick the same slot.
// The boolean is false when no candidate improves on the current placement.
func (r *Recommender) FindOptimalLocation(p domain.Product, current *domain.StorageLocation, candidates []domain.StorageLocation) (*domain.StorageLocation, float64, bool) {
	currentScore := -1.0
	if current != nil {
		currentScore = r.scorer.Score(p, *current)
	}

	var best *domain.StorageLocation
	bestScore := -1.0
	for i := range candidates {
		loc := &candidates[i]
		if current != nil && loc.ID == current.ID {
			continue
		}
		if !IsCompatible(p, *loc) {
			continue
		}
		score := r.scorer.Score(p, *loc)
		if score > bestScore || (score == bestScore && best != nil && loc.ID < best.ID) {
			best = loc
			bestScore = score
		}
	}

	if best == nil || bestScore <= currentScore {
		return nil, 0, false
	}

	return best, bestScore, true
}

// Recommend produces the move recommendation for a product, or false when the
// product has no better candidate (which is not an error).
func (r *Recommender) Recommend(p domain.Product, current *domain.StorageLocation, candidates []domain.StorageLocation) (*domain.SlottingRecommendation, bool) {
	best, _, ok := r.FindOptimalLocation(p, current, candidates)
	if !ok {
		return nil, false
	}

	travelDelta := best.DistanceFromDock
	if current != nil {
		travelDelta = current.DistanceFromDock - best.DistanceFromDock
	}

	effort := r.estimateEffort(p, current, *best)
	roi := r.EstimateROI(p, travelDelta, effort)
	impact := r.estimateImpact(p, current, *best, travelDelta)

	rec := &domain.SlottingRecommendation{
		ProductID:           p.ID,
		SKU:                 p.SKU,
		CurrentLocation:     current,
		RecommendedLocation: *best,
		Reason:              r.buildReason(p, current, *best, travelDelta),
		Priority:            r.priority(p, roi),
		Impact:              impact,
		Effort:              effort,
		ROI:                 roi,
	}

	return rec, true
}

// EstimateROI computes the economics of a move. travelDelta is the per-pick
// travel distance saved in meters (negative when the move lengthens travel).
func (r *Recommender) EstimateROI(p domain.Product, travelDelta float64, effort domain.Effort) domain.ROI {
	pickTimeSavingsMin := math.Abs(travelDelta) * r.costs.PickTimePerMeterMin
	annualTimeSavingsMin := p.AverageDailyDemand * daysPerYear * pickTimeSavingsMin
	annualSavings := annualTimeSavingsMin / 60 * r.costs.PickerHourlyRate

	moveCost := effort.EstimatedMinutes/60*r.costs.ForkliftHourlyRate +
		r.costs.FixedMoveCostPerPallet*float64(effort.MoveQty)

	roi := domain.ROI{
		CostToMove:    moveCost,
		AnnualSavings: annualSavings,
		NetBenefit:    annualSavings - moveCost,
	}

	// Division guard: a move that saves nothing has no payback, not a NaN.
	if annualSavings <= 0 {
		roi.PaybackDays = -1
		roi.HasPayback = false
		return roi
	}

	roi.PaybackDays = moveCost / (annualSavings / daysPerYear)
	roi.HasPayback = true

	return roi
}

func (r *Recommender) estimateEffort(p domain.Product, current *domain.StorageLocation, target domain.StorageLocation) domain.Effort {
	moveDistance := target.DistanceFromDock
	if current != nil {
		moveDistance = distanceBetween(current.Coordinates, target.Coordinates)
	}

	moveMinutes := math.Ceil(moveDistance*r.costs.MoveMinutesPerMeter + r.costs.MoveFixedMinutes)

	resources := []string{"forklift", "operator"}
	if p.StorageReq != nil && p.StorageReq.Hazmat {
		resources = append(resources, "hazmat_certified_operator")
	}

	return domain.Effort{
		MoveQty:          1,
		MoveDistanceM:    moveDistance,
		EstimatedMinutes: moveMinutes,
		Resources:        resources,
	}
}

func (r *Recommender) estimateImpact(p domain.Product, current *domain.StorageLocation, target domain.StorageLocation, travelDelta float64) domain.Impact {
	impact := domain.Impact{
		PickTimeReductionMin:    math.Abs(travelDelta) * r.costs.PickTimePerMeterMin,
		TravelDistanceReduction: math.Max(0, travelDelta),
	}

	targetErgo := ergonomicValue(target.Ergonomics)
	currentErgo := 0.0
	if current != nil {
		currentErgo = ergonomicValue(current.Ergonomics)
	}
	impact.ErgonomicImprovement = clampPct(targetErgo - currentErgo)

	if target.CapacityM3 > 0 {
		targetFill := p.CubeM3() / target.CapacityM3 * 100
		currentFill := 0.0
		if current != nil && current.CapacityM3 > 0 {
			currentFill = p.CubeM3() / current.CapacityM3 * 100
		}
		impact.SpaceUtilizationGain = clampPct(targetFill - currentFill)
	}

	return impact
}

// priority applies the additive heuristic: base 50, +30 for high velocity,
// +20 for A-class, +10 for net benefit above the configured floor, +10 for a
// payback under 30 days, capped at 100.
func (r *Recommender) priority(p domain.Product, roi domain.ROI) int {
	priority := basePriority
	if p.Velocity == domain.VelocityHigh {
		priority += 30
	}
	if p.ABCClass == domain.ABCClassA {
		priority += 20
	}
	if roi.NetBenefit > r.costs.PriorityNetBenefitFloor {
		priority += 10
	}
	if roi.HasPayback && roi.PaybackDays < paybackBonusDays {
		priority += 10
	}
	if priority > 100 {
		priority = 100
	}

	return priority
}

func (r *Recommender) buildReason(p domain.Product, current *domain.StorageLocation, target domain.StorageLocation, travelDelta float64) string {
	if current == nil {
		return fmt.Sprintf("%s velocity product is unslotted; %s slot %s is %.0fm from dock",
			p.Velocity, target.Type, target.Code, target.DistanceFromDock)
	}
	if travelDelta > 0 {
		return fmt.Sprintf("%s velocity product sits in %s slot %s; moving to %s slot %s cuts dock travel by %.0fm",
			p.Velocity, current.Type, current.Code, target.Type, target.Code, travelDelta)
	}
	return fmt.Sprintf("%s slot %s fits %s better than current %s slot %s",
		target.Type, target.Code, p.SKU, current.Type, current.Code)
}

// SortRecommendations orders recommendations by priority, then net benefit,
// then product ID. The product ID tie-break keeps parallel analysis runs
// deterministic; negative-net-benefit moves naturally rank last.
func SortRecommendations(recs []domain.SlottingRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}
		if recs[i].ROI.NetBenefit != recs[j].ROI.NetBenefit {
			return recs[i].ROI.NetBenefit > recs[j].ROI.NetBenefit
		}
		return recs[i].ProductID < recs[j].ProductID
	})
}

func ergonomicValue(level domain.ErgonomicLevel) float64 {
	switch level {
	case domain.ErgonomicGolden:
		return 100
	case domain.ErgonomicStandard:
		return 50
	}
	return 0
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func distanceBetween(a, b domain.Coordinates) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
