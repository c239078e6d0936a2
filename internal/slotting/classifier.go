package slotting

import (
	"math"
	"sort"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

// Velocity and ABC cut points on average daily demand. Both axes deliberately
// share the same thresholds; the value-based Pareto split is available as an
// alternative via ClassifyABCByValue.
const (
	highDemandThreshold   = 20.0
	mediumDemandThreshold = 5.0
)

// Classification is the classifier output for a single product.
type Classification struct {
	AverageDailyDemand float64
	PickFrequency      float64
	Velocity           domain.Velocity
	ABCClass           domain.ABCClass
}

// Classifier derives velocity tiers and ABC classes from movement history.
// It is pure and holds no mutable state.
type Classifier struct{}

// NewClassifier creates a new classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify computes the classification of one product from its movement
// records over the [since, until] window. A product with zero movement
// history classifies as dead/C with zero demand; this is never an error.
func (c *Classifier) Classify(movements []domain.MovementRecord, since, until time.Time) Classification {
	var totalQty float64
	var outCount float64
	for _, m := range movements {
		if m.OccurredAt.Before(since) || m.OccurredAt.After(until) {
			continue
		}
		totalQty += m.Quantity
		if m.Type == domain.MovementOut {
			outCount++
		}
	}

	return c.FromAggregates(totalQty, outCount, daysInWindow(since, until))
}

// FromAggregates computes the classification from precomputed movement
// aggregates. This is the path used by repositories that aggregate in SQL.
func (c *Classifier) FromAggregates(totalQty, outCount float64, days float64) Classification {
	days = math.Max(1, days)

	avgDemand := totalQty / days
	pickFreq := outCount / days

	cls := Classification{
		AverageDailyDemand: avgDemand,
		PickFrequency:      pickFreq,
	}

	switch {
	case avgDemand > highDemandThreshold:
		cls.Velocity = domain.VelocityHigh
	case avgDemand > mediumDemandThreshold:
		cls.Velocity = domain.VelocityMedium
	case avgDemand > 0:
		cls.Velocity = domain.VelocityLow
	default:
		cls.Velocity = domain.VelocityDead
	}

	switch {
	case avgDemand > highDemandThreshold:
		cls.ABCClass = domain.ABCClassA
	case avgDemand > mediumDemandThreshold:
		cls.ABCClass = domain.ABCClassB
	default:
		cls.ABCClass = domain.ABCClassC
	}

	return cls
}

// ClassifyProduct applies Classify to a product in place.
func (c *Classifier) ClassifyProduct(p *domain.Product, movements []domain.MovementRecord, since, until time.Time) {
	cls := c.Classify(movements, since, until)
	p.AverageDailyDemand = cls.AverageDailyDemand
	p.PickFrequency = cls.PickFrequency
	p.Velocity = cls.Velocity
	p.ABCClass = cls.ABCClass
}

// ClassifyABCByValue assigns ABC classes from a cumulative-value Pareto split:
// products covering the first 80% of total value are A, up to 95% are B, the
// rest C. Ties are broken by product ID so the split is reproducible.
func (c *Classifier) ClassifyABCByValue(values map[string]float64) map[string]domain.ABCClass {
	type productValue struct {
		id    string
		value float64
	}

	ranked := make([]productValue, 0, len(values))
	var total float64
	for id, v := range values {
		if v < 0 {
			v = 0
		}
		ranked = append(ranked, productValue{id: id, value: v})
		total += v
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].value != ranked[j].value {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].id < ranked[j].id
	})

	classes := make(map[string]domain.ABCClass, len(ranked))
	if total <= 0 {
		for _, pv := range ranked {
			classes[pv.id] = domain.ABCClassC
		}
		return classes
	}

	var cumulative float64
	for _, pv := range ranked {
		cumulative += pv.value
		share := cumulative / total * 100
		switch {
		case share <= 80:
			classes[pv.id] = domain.ABCClassA
		case share <= 95:
			classes[pv.id] = domain.ABCClassB
		default:
			classes[pv.id] = domain.ABCClassC
		}
	}

	return classes
}

func daysInWindow(since, until time.Time) float64 {
	return math.Max(1, until.Sub(since).Hours()/24)
}
