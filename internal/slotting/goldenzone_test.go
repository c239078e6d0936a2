package slotting

import (
	"testing"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

func TestGoldenZoneAnalyzerMovesTopMoversIn(t *testing.T) {
	g := NewGoldenZoneAnalyzer(testRecommender(t))

	top := fastProduct("p-top")
	top.AverageDailyDemand = 30
	second := fastProduct("p-second")
	second.AverageDailyDemand = 25
	slow := slowProduct("p-slow")

	// The top mover already holds a golden slot; only the runner-up should move.
	occupiedGolden := pickFaceLocation("l-golden-1", 5)
	occupiedGolden.CurrentProductID = top.ID
	freeGolden := pickFaceLocation("l-golden-2", 8)
	secondCurrent := reserveLocation("l-reserve", 80)
	secondCurrent.CurrentProductID = second.ID

	recs := g.Analyze(
		[]domain.Product{slow, second, top},
		map[string]domain.StorageLocation{
			top.ID:    occupiedGolden,
			second.ID: secondCurrent,
		},
		[]domain.StorageLocation{freeGolden},
	)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if rec.ProductID != second.ID {
		t.Errorf("recommended product = %s, want %s", rec.ProductID, second.ID)
	}
	if rec.RecommendedLocation.ID != freeGolden.ID {
		t.Errorf("recommended location = %s, want %s", rec.RecommendedLocation.ID, freeGolden.ID)
	}
	if rec.Priority != 95 {
		t.Errorf("priority = %d, want 95", rec.Priority)
	}
}

func TestGoldenZoneAnalyzerNoGoldenLocations(t *testing.T) {
	g := NewGoldenZoneAnalyzer(testRecommender(t))

	recs := g.Analyze(
		[]domain.Product{fastProduct("p1")},
		map[string]domain.StorageLocation{},
		[]domain.StorageLocation{reserveLocation("l1", 50)},
	)
	if len(recs) != 0 {
		t.Fatalf("got %d recommendations for a warehouse without golden slots", len(recs))
	}
}
