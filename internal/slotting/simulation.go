package slotting

import (
	"fmt"
	"math"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

// Baseline KPIs used when the caller has no measured snapshot.
const (
	defaultAvgPickTimeMin    = 2.5
	defaultAvgTravelDistance = 45.0
	defaultSpaceUtilization  = 68.0
	defaultProductivityRate  = 120.0

	defaultSimulationMoves = 100
	movesPerDay            = 20
)

// Rollout plan shape: three phases at 60/30/10% of total moves.
var phaseShares = [3]float64{60, 30, 10}

// Simulator projects warehouse-wide KPIs under a named strategy without
// touching real location data. It is purely computational and does not call
// the recommender; strategies carry their own improvement percentages.
type Simulator struct {
	costs config.SlottingCosts
}

// NewSimulator creates a simulator over a cost model.
func NewSimulator(costs config.SlottingCosts) *Simulator {
	return &Simulator{costs: costs}
}

// RunSimulation validates the strategy, projects before/after KPIs and builds
// a phased rollout plan. baseline may be nil or zeroed; defaults apply then.
func (s *Simulator) RunSimulation(warehouseID string, strategy domain.SlottingStrategy, baseline *domain.WarehouseKPIs) (*domain.SimulationResult, error) {
	if err := ValidateStrategy(strategy); err != nil {
		return nil, err
	}

	current := normalizeBaseline(baseline)
	imp := strategy.Improvements

	projected := domain.WarehouseKPIs{
		AveragePickTimeMin:    current.AveragePickTimeMin * (1 - imp.PickTimeReduction/100),
		AverageTravelDistance: current.AverageTravelDistance * (1 - imp.TravelReduction/100),
		SpaceUtilization:      math.Min(100, current.SpaceUtilization*(1+imp.SpaceGain/100)),
		ProductivityRate:      current.ProductivityRate * (1 + imp.ProductivityGain/100),
	}

	// Annualized labor savings from the projected pick-time delta.
	pickTimeDeltaMin := current.AveragePickTimeMin - projected.AveragePickTimeMin
	annualSavings := pickTimeDeltaMin / 60 * s.costs.PickerHourlyRate * s.costs.AnnualPickVolume

	totalMoves := strategy.TotalMoves
	if totalMoves <= 0 {
		totalMoves = defaultSimulationMoves
	}

	return &domain.SimulationResult{
		WarehouseID:    warehouseID,
		Strategy:       strategy.Name,
		CurrentState:   current,
		ProjectedState: projected,
		Improvements:   imp,
		AnnualSavings:  annualSavings,
		Plan:           buildPlan(totalMoves),
		SimulatedAt:    time.Now().UTC(),
	}, nil
}

// ValidateStrategy rejects strategies with missing names, improvement
// percentages outside [0,100] or rule weights outside [0,1].
func ValidateStrategy(strategy domain.SlottingStrategy) error {
	if strategy.Name == "" {
		return fmt.Errorf("%w: strategy name is required", ErrInvalidStrategy)
	}

	percents := map[string]float64{
		"pick_time_reduction": strategy.Improvements.PickTimeReduction,
		"travel_reduction":    strategy.Improvements.TravelReduction,
		"space_gain":          strategy.Improvements.SpaceGain,
		"productivity_gain":   strategy.Improvements.ProductivityGain,
	}
	for name, pct := range percents {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: %s must be within [0,100], got %.2f", ErrInvalidStrategy, name, pct)
		}
	}

	for _, rule := range strategy.Rules {
		if rule.Name == "" {
			return fmt.Errorf("%w: rule name is required", ErrInvalidStrategy)
		}
		if rule.Weight < 0 || rule.Weight > 1 {
			return fmt.Errorf("%w: rule %s weight must be within [0,1], got %.2f", ErrInvalidStrategy, rule.Name, rule.Weight)
		}
	}

	return nil
}

func normalizeBaseline(baseline *domain.WarehouseKPIs) domain.WarehouseKPIs {
	current := domain.WarehouseKPIs{
		AveragePickTimeMin:    defaultAvgPickTimeMin,
		AverageTravelDistance: defaultAvgTravelDistance,
		SpaceUtilization:      defaultSpaceUtilization,
		ProductivityRate:      defaultProductivityRate,
	}
	if baseline == nil {
		return current
	}
	if baseline.AveragePickTimeMin > 0 {
		current.AveragePickTimeMin = baseline.AveragePickTimeMin
	}
	if baseline.AverageTravelDistance > 0 {
		current.AverageTravelDistance = baseline.AverageTravelDistance
	}
	if baseline.SpaceUtilization > 0 {
		current.SpaceUtilization = baseline.SpaceUtilization
	}
	if baseline.ProductivityRate > 0 {
		current.ProductivityRate = baseline.ProductivityRate
	}
	return current
}

func buildPlan(totalMoves int) []domain.ImplementationPhase {
	plan := make([]domain.ImplementationPhase, 0, len(phaseShares))
	assigned := 0
	for i, share := range phaseShares {
		moves := int(math.Round(float64(totalMoves) * share / 100))
		if i == len(phaseShares)-1 {
			moves = totalMoves - assigned
		}
		assigned += moves

		days := int(math.Ceil(float64(moves) / movesPerDay))
		if days < 1 {
			days = 1
		}

		plan = append(plan, domain.ImplementationPhase{
			Phase:        i + 1,
			Moves:        moves,
			DurationDays: days,
			BenefitShare: share,
		})
	}
	return plan
}

// BuiltinStrategies are the named strategies available out of the box.
func BuiltinStrategies() []domain.SlottingStrategy {
	return []domain.SlottingStrategy{
		{
			Name:        "velocity-based",
			Description: "place high-velocity stock in pick faces near the dock",
			Rules: []domain.SlottingRule{
				{Name: "high-to-pick-face", Weight: 0.6, Condition: "velocity = high", Action: "assign pick_face"},
				{Name: "dead-to-overstock", Weight: 0.4, Condition: "velocity = dead", Action: "assign overstock"},
			},
			Constraints: []domain.SlottingConstraint{
				{Name: "respect-hazmat", Enforced: true},
			},
			Improvements: domain.ExpectedImprovements{
				PickTimeReduction: 20,
				TravelReduction:   25,
				SpaceGain:         5,
				ProductivityGain:  15,
			},
		},
		{
			Name:        "golden-zone",
			Description: "keep A-class stock in ergonomic golden locations",
			Rules: []domain.SlottingRule{
				{Name: "a-class-golden", Weight: 1.0, Condition: "abc_class = A", Action: "assign golden"},
			},
			Constraints: []domain.SlottingConstraint{
				{Name: "respect-weight-limits", Enforced: true},
			},
			Improvements: domain.ExpectedImprovements{
				PickTimeReduction: 12,
				TravelReduction:   8,
				SpaceGain:         2,
				ProductivityGain:  10,
			},
		},
		{
			Name:        "cube-per-order",
			Description: "consolidate underfilled slots to reclaim cube",
			Rules: []domain.SlottingRule{
				{Name: "consolidate-underfilled", Weight: 0.7, Condition: "fill < 30%", Action: "consolidate"},
				{Name: "re-rack-low-bays", Weight: 0.3, Condition: "zone fill < 40%", Action: "re-rack"},
			},
			Constraints: []domain.SlottingConstraint{
				{Name: "respect-temperature", Enforced: true},
				{Name: "keep-families-together", Enforced: false},
			},
			Improvements: domain.ExpectedImprovements{
				PickTimeReduction: 5,
				TravelReduction:   4,
				SpaceGain:         18,
				ProductivityGain:  6,
			},
		},
	}
}
