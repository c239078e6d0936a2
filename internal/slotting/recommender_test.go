package slotting

import (
	"math"
	"testing"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

func TestRecommendFastMoverIntoPickFace(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1") // 25/day, high/A
	current := reserveLocation("l-reserve", 80)
	target := pickFaceLocation("l-pick", 10)

	got, ok := rec.Recommend(p, &current, []domain.StorageLocation{target})
	if !ok {
		t.Fatal("expected a recommendation for a fast mover parked 80m out")
	}

	if got.RecommendedLocation.ID != target.ID {
		t.Errorf("recommended location = %s, want %s", got.RecommendedLocation.ID, target.ID)
	}
	if got.Impact.TravelDistanceReduction != 70 {
		t.Errorf("travel reduction = %v, want 70", got.Impact.TravelDistanceReduction)
	}
	if got.Priority < 80 {
		t.Errorf("priority = %d, want >= 80 for a high-velocity A-class move", got.Priority)
	}
	if got.Priority > 100 {
		t.Errorf("priority = %d, want capped at 100", got.Priority)
	}
	if !got.ROI.HasPayback {
		t.Error("expected the move to pay back")
	}
	if got.ROI.NetBenefit <= 0 {
		t.Errorf("net benefit = %v, want > 0", got.ROI.NetBenefit)
	}
}

func TestRecommendNeverMovesToCurrentSlot(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1")
	current := pickFaceLocation("l-pick", 10)

	if _, ok := rec.Recommend(p, &current, []domain.StorageLocation{current}); ok {
		t.Fatal("recommended the slot the product already occupies")
	}
}

func TestRecommendRequiresStrictImprovement(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1")
	current := pickFaceLocation("l-a", 10)
	twin := pickFaceLocation("l-b", 10) // scores identically to current

	if _, ok := rec.Recommend(p, &current, []domain.StorageLocation{twin}); ok {
		t.Fatal("recommended a lateral move with no score improvement")
	}
}

func TestRecommendSkipsIncompatibleCandidates(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1")
	p.StorageReq = &domain.StorageRequirements{Hazmat: true}
	current := reserveLocation("l-reserve", 80)
	target := pickFaceLocation("l-pick", 10) // not hazmat-designated

	if _, ok := rec.Recommend(p, &current, []domain.StorageLocation{target}); ok {
		t.Fatal("recommended a hazmat product into a non-hazmat slot")
	}
}

func TestRecommendUnslottedProduct(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1")
	target := pickFaceLocation("l-pick", 10)

	got, ok := rec.Recommend(p, nil, []domain.StorageLocation{target})
	if !ok {
		t.Fatal("expected a recommendation for an unslotted product")
	}
	if got.CurrentLocation != nil {
		t.Error("current location should stay nil for unslotted stock")
	}
	if got.Reason == "" {
		t.Error("reason must explain the placement")
	}
}

func TestRecommendTieBreaksOnLocationID(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1")
	current := reserveLocation("l-reserve", 80)
	// Two candidates with identical scores; the lower ID must win every run.
	a := pickFaceLocation("l-a", 10)
	b := pickFaceLocation("l-b", 10)

	for i := 0; i < 50; i++ {
		got, ok := rec.Recommend(p, &current, []domain.StorageLocation{b, a})
		if !ok {
			t.Fatal("expected a recommendation")
		}
		if got.RecommendedLocation.ID != "l-a" {
			t.Fatalf("tie broken to %s, want l-a", got.RecommendedLocation.ID)
		}
	}
}

func TestEstimateROIMoveEconomics(t *testing.T) {
	rec := testRecommender(t)
	p := fastProduct("p1") // 25/day

	effort := domain.Effort{MoveQty: 1, EstimatedMinutes: 50}
	roi := rec.EstimateROI(p, 70, effort)

	// 70m saved per pick at 0.02 min/m, 25 picks/day over a year at $25/h.
	wantSavings := 25.0 * 365 * (70 * 0.02) / 60 * 25
	if math.Abs(roi.AnnualSavings-wantSavings) > 1e-6 {
		t.Errorf("annual savings = %v, want %v", roi.AnnualSavings, wantSavings)
	}

	// 50 minutes of forklift at $45/h plus one pallet at $12.50.
	wantCost := 50.0/60*45 + 12.5
	if math.Abs(roi.CostToMove-wantCost) > 1e-6 {
		t.Errorf("cost to move = %v, want %v", roi.CostToMove, wantCost)
	}

	if !roi.HasPayback {
		t.Fatal("expected payback")
	}
	wantPayback := wantCost / (wantSavings / 365)
	if math.Abs(roi.PaybackDays-wantPayback) > 1e-6 {
		t.Errorf("payback days = %v, want %v", roi.PaybackDays, wantPayback)
	}
}

func TestEstimateROIZeroSavingsHasNoPayback(t *testing.T) {
	rec := testRecommender(t)
	p := fastProduct("p1")

	effort := domain.Effort{MoveQty: 1, EstimatedMinutes: 50}
	roi := rec.EstimateROI(p, 0, effort)

	if roi.HasPayback {
		t.Error("a move that saves nothing must not report payback")
	}
	if roi.PaybackDays != -1 {
		t.Errorf("payback days = %v, want -1 sentinel", roi.PaybackDays)
	}
	if roi.AnnualSavings != 0 {
		t.Errorf("annual savings = %v, want 0", roi.AnnualSavings)
	}
	if roi.NetBenefit >= 0 {
		t.Errorf("net benefit = %v, want negative (move cost only)", roi.NetBenefit)
	}
	if math.IsNaN(roi.PaybackDays) || math.IsInf(roi.PaybackDays, 0) {
		t.Error("payback days must stay finite")
	}
}

func TestRecommendHazmatNeedsCertifiedOperator(t *testing.T) {
	rec := testRecommender(t)

	p := fastProduct("p1")
	p.StorageReq = &domain.StorageRequirements{Hazmat: true}
	current := reserveLocation("l-reserve", 80)
	target := pickFaceLocation("l-pick", 10)
	target.HazmatOnly = true

	got, ok := rec.Recommend(p, &current, []domain.StorageLocation{target})
	if !ok {
		t.Fatal("expected a recommendation into the hazmat slot")
	}

	found := false
	for _, r := range got.Effort.Resources {
		if r == "hazmat_certified_operator" {
			found = true
		}
	}
	if !found {
		t.Errorf("resources = %v, want hazmat_certified_operator included", got.Effort.Resources)
	}
}

func TestSortRecommendationsOrdering(t *testing.T) {
	recs := []domain.SlottingRecommendation{
		{ProductID: "p3", Priority: 70, ROI: domain.ROI{NetBenefit: 500}},
		{ProductID: "p2", Priority: 90, ROI: domain.ROI{NetBenefit: 100}},
		{ProductID: "p4", Priority: 90, ROI: domain.ROI{NetBenefit: 100}},
		{ProductID: "p1", Priority: 90, ROI: domain.ROI{NetBenefit: 900}},
		{ProductID: "p5", Priority: 70, ROI: domain.ROI{NetBenefit: -50}},
	}

	SortRecommendations(recs)

	want := []string{"p1", "p2", "p4", "p3", "p5"}
	for i, id := range want {
		if recs[i].ProductID != id {
			t.Fatalf("position %d = %s, want %s", i, recs[i].ProductID, id)
		}
	}
}
