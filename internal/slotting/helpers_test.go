package slotting

import (
	"testing"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

func testScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := NewScorer(config.DefaultWeights())
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	return scorer
}

func testRecommender(t *testing.T) *Recommender {
	t.Helper()
	return NewRecommender(testScorer(t), config.DefaultCosts())
}

func fastProduct(id string) domain.Product {
	return domain.Product{
		ID:                 id,
		SKU:                "SKU-" + id,
		Name:               "Product " + id,
		LengthM:            0.4,
		WidthM:             0.4,
		HeightM:            0.3,
		WeightKg:           8,
		AverageDailyDemand: 25,
		PickFrequency:      12,
		Velocity:           domain.VelocityHigh,
		ABCClass:           domain.ABCClassA,
	}
}

func slowProduct(id string) domain.Product {
	return domain.Product{
		ID:                 id,
		SKU:                "SKU-" + id,
		Name:               "Product " + id,
		LengthM:            0.4,
		WidthM:             0.4,
		HeightM:            0.3,
		WeightKg:           8,
		AverageDailyDemand: 2,
		PickFrequency:      0.5,
		Velocity:           domain.VelocityLow,
		ABCClass:           domain.ABCClassC,
	}
}

func reserveLocation(id string, distanceFromDock float64) domain.StorageLocation {
	return domain.StorageLocation{
		ID:               id,
		Code:             "LOC-" + id,
		Zone:             "R",
		Type:             domain.LocationReserve,
		Ergonomics:       domain.ErgonomicStandard,
		CapacityM3:       1.0,
		DistanceFromDock: distanceFromDock,
		Coordinates:      domain.Coordinates{X: distanceFromDock},
	}
}

func pickFaceLocation(id string, distanceFromDock float64) domain.StorageLocation {
	return domain.StorageLocation{
		ID:               id,
		Code:             "LOC-" + id,
		Zone:             "P",
		Type:             domain.LocationPickFace,
		Ergonomics:       domain.ErgonomicGolden,
		CapacityM3:       1.0,
		DistanceFromDock: distanceFromDock,
		Coordinates:      domain.Coordinates{X: distanceFromDock},
	}
}
