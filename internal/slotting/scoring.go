package slotting

import (
	"math"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

const (
	factorBonus = 100.0 // full bonus for a matched factor before weighting

	spaceFillLowerBound = 0.60
	spaceFillUpperBound = 0.90

	ergoPickFrequencyFloor = 10.0
)

// Scorer computes a weighted fit score for a (product, location) pair. Scores
// are deterministic and reproducible: identical inputs yield identical scores.
type Scorer struct {
	weights config.SlottingWeights
}

// NewScorer creates a scorer after validating that the weights sum to 1.0.
func NewScorer(weights config.SlottingWeights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights}, nil
}

// Score returns the total fit score, always >= 0.
func (s *Scorer) Score(p domain.Product, loc domain.StorageLocation) float64 {
	score, _ := s.ScoreWithBreakdown(p, loc)
	return score
}

// ScoreWithBreakdown returns the score together with each factor's
// contribution, for explainability in recommendation reasons.
func (s *Scorer) ScoreWithBreakdown(p domain.Product, loc domain.StorageLocation) (float64, map[string]float64) {
	breakdown := map[string]float64{
		"velocity":       s.velocityScore(p, loc),
		"abc_class":      s.abcScore(p, loc),
		"pick_frequency": s.pickFrequencyScore(p, loc),
		"space":          s.spaceEfficiencyScore(p, loc),
		"ergonomics":     s.ergonomicsScore(p, loc),
	}

	var total float64
	for _, v := range breakdown {
		total += v
	}

	return total, breakdown
}

// velocityScore rewards a location whose functional type matches the
// product's velocity tier (high/pick_face, medium/forward, low/reserve).
func (s *Scorer) velocityScore(p domain.Product, loc domain.StorageLocation) float64 {
	preferred, ok := p.Velocity.PreferredLocationType()
	if !ok || preferred != loc.Type {
		return 0
	}
	return factorBonus * s.weights.Velocity
}

// abcScore rewards A-class stock in golden-ergonomic slots and B-class in
// standard slots.
func (s *Scorer) abcScore(p domain.Product, loc domain.StorageLocation) float64 {
	switch {
	case p.ABCClass == domain.ABCClassA && loc.Ergonomics == domain.ErgonomicGolden:
		return factorBonus * s.weights.ABCClass
	case p.ABCClass == domain.ABCClassB && loc.Ergonomics == domain.ErgonomicStandard:
		return factorBonus * s.weights.ABCClass
	}
	return 0
}

// pickFrequencyScore rewards high-frequency products placed close to the
// dock. Locations beyond 100m from the dock contribute nothing.
func (s *Scorer) pickFrequencyScore(p domain.Product, loc domain.StorageLocation) float64 {
	proximity := math.Max(0, 100-loc.DistanceFromDock)
	return (p.PickFrequency / 30) * proximity * s.weights.PickFrequency
}

// spaceEfficiencyScore rewards a fill ratio in the 60-90% band, avoiding both
// wasted cube and overstuffed slots.
func (s *Scorer) spaceEfficiencyScore(p domain.Product, loc domain.StorageLocation) float64 {
	if loc.CapacityM3 <= 0 {
		return 0
	}
	fill := p.CubeM3() / loc.CapacityM3
	if fill < spaceFillLowerBound || fill > spaceFillUpperBound {
		return 0
	}
	return factorBonus * s.weights.SpaceEfficiency
}

// ergonomicsScore rewards frequently picked products in golden slots.
func (s *Scorer) ergonomicsScore(p domain.Product, loc domain.StorageLocation) float64 {
	if p.PickFrequency > ergoPickFrequencyFloor && loc.Ergonomics == domain.ErgonomicGolden {
		return factorBonus * s.weights.Ergonomics
	}
	return 0
}
