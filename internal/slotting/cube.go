package slotting

import (
	"fmt"
	"sort"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

const (
	consolidationFillThreshold = 30.0 // slots below this fill are consolidation sources
	reRackZoneFillThreshold    = 40.0 // zones below this fill are re-rack candidates
	moveToHeightLevel          = 3    // levels at or above this count as height storage
)

// CubeAction is a proposed space-recovery action from the cube analyzer.
type CubeAction struct {
	Type            string  `json:"type"` // consolidation, move_to_height, re_racking
	Zone            string  `json:"zone,omitempty"`
	LocationID      string  `json:"location_id,omitempty"`
	Description     string  `json:"description"`
	EstimatedGainM3 float64 `json:"estimated_cube_gain_m3"`
}

// CubeReport is the cube-utilization analysis output. Consolidation moves are
// also expressed as regular slotting recommendations.
type CubeReport struct {
	TotalCapacityM3 float64                         `json:"total_capacity_m3"`
	UsedM3          float64                         `json:"used_m3"`
	UtilizationRate float64                         `json:"utilization_rate"`
	Actions         []CubeAction                    `json:"actions"`
	Recommendations []domain.SlottingRecommendation `json:"recommendations"`
}

// CubeUtilizationAnalyzer measures used versus total cube and proposes
// consolidation, move-to-height and re-racking actions.
type CubeUtilizationAnalyzer struct {
	rec *Recommender
}

// NewCubeUtilizationAnalyzer creates a cube-utilization analyzer.
func NewCubeUtilizationAnalyzer(rec *Recommender) *CubeUtilizationAnalyzer {
	return &CubeUtilizationAnalyzer{rec: rec}
}

// Analyze computes the warehouse cube ratio and derives actions:
// near-empty occupied slots become consolidation moves into better-fitting
// slots, slow stock in low ground-level slots is pushed to height, and zones
// far under the re-rack threshold get a re-racking advisory.
func (c *CubeUtilizationAnalyzer) Analyze(products []domain.Product, assignments map[string]domain.StorageLocation, available []domain.StorageLocation) CubeReport {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	report := CubeReport{}
	zoneCapacity := make(map[string]float64)
	zoneUsed := make(map[string]float64)

	seen := make(map[string]struct{})
	tally := func(loc domain.StorageLocation) {
		if _, ok := seen[loc.ID]; ok {
			return
		}
		seen[loc.ID] = struct{}{}
		used := loc.CapacityM3 * loc.CurrentOccupancy / 100
		report.TotalCapacityM3 += loc.CapacityM3
		report.UsedM3 += used
		zoneCapacity[loc.Zone] += loc.CapacityM3
		zoneUsed[loc.Zone] += used
	}
	for _, loc := range assignments {
		tally(loc)
	}
	for _, loc := range available {
		tally(loc)
	}
	if report.TotalCapacityM3 > 0 {
		report.UtilizationRate = report.UsedM3 / report.TotalCapacityM3 * 100
	}

	// Consolidation: occupied slots far below the fill band.
	ids := make([]string, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		loc := assignments[id]
		if loc.CurrentOccupancy >= consolidationFillThreshold || loc.CurrentOccupancy <= 0 {
			continue
		}
		p, ok := byID[id]
		if !ok {
			continue
		}

		gain := loc.CapacityM3 * (1 - loc.CurrentOccupancy/100)
		current := loc
		if rec, ok := c.rec.Recommend(p, &current, available); ok {
			rec.Reason = fmt.Sprintf("slot %s is %.0f%% full; consolidating %s into %s reclaims %.1fm³",
				loc.Code, loc.CurrentOccupancy, p.SKU, rec.RecommendedLocation.Code, gain)
			report.Recommendations = append(report.Recommendations, *rec)
		}
		report.Actions = append(report.Actions, CubeAction{
			Type:            "consolidation",
			Zone:            loc.Zone,
			LocationID:      loc.ID,
			Description:     fmt.Sprintf("consolidate %s out of underfilled slot %s", p.SKU, loc.Code),
			EstimatedGainM3: gain,
		})

		// Slow stock parked in prime ground-level slots can move up.
		if (p.Velocity == domain.VelocityLow || p.Velocity == domain.VelocityDead) && loc.Level < moveToHeightLevel {
			if target, ok := highestAvailableLevel(available); ok {
				report.Actions = append(report.Actions, CubeAction{
					Type:            "move_to_height",
					Zone:            loc.Zone,
					LocationID:      loc.ID,
					Description:     fmt.Sprintf("move slow stock %s from level %d to level %d slot %s", p.SKU, loc.Level, target.Level, target.Code),
					EstimatedGainM3: loc.CapacityM3 * loc.CurrentOccupancy / 100,
				})
			}
		}
	}

	// Re-racking advisories for chronically underfilled zones.
	zones := make([]string, 0, len(zoneCapacity))
	for zone := range zoneCapacity {
		zones = append(zones, zone)
	}
	sort.Strings(zones)
	for _, zone := range zones {
		if zoneCapacity[zone] <= 0 {
			continue
		}
		fill := zoneUsed[zone] / zoneCapacity[zone] * 100
		if fill >= reRackZoneFillThreshold {
			continue
		}
		report.Actions = append(report.Actions, CubeAction{
			Type:            "re_racking",
			Zone:            zone,
			Description:     fmt.Sprintf("zone %s runs at %.0f%% cube; narrower beam profiles would add slots", zone, fill),
			EstimatedGainM3: zoneCapacity[zone] - zoneUsed[zone],
		})
	}

	SortRecommendations(report.Recommendations)
	return report
}

func highestAvailableLevel(available []domain.StorageLocation) (domain.StorageLocation, bool) {
	var best domain.StorageLocation
	found := false
	for _, loc := range available {
		if loc.Level < moveToHeightLevel || loc.CurrentProductID != "" {
			continue
		}
		if !found || loc.Level > best.Level || (loc.Level == best.Level && loc.ID < best.ID) {
			best = loc
			found = true
		}
	}
	return best, found
}
