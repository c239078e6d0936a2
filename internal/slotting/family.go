package slotting

import (
	"fmt"
	"sort"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
)

// Minimum number of shared order references before two products count as a
// family.
const defaultMinCoOccurrence = 3

// FamilyGroupingAnalyzer detects products that are picked together and
// recommends co-locating them to shorten multi-zone pick tours.
type FamilyGroupingAnalyzer struct {
	rec             *Recommender
	minCoOccurrence int
}

// NewFamilyGroupingAnalyzer creates a family-grouping analyzer. minCoOccurrence
// below 1 falls back to the default.
func NewFamilyGroupingAnalyzer(rec *Recommender, minCoOccurrence int) *FamilyGroupingAnalyzer {
	if minCoOccurrence < 1 {
		minCoOccurrence = defaultMinCoOccurrence
	}
	return &FamilyGroupingAnalyzer{rec: rec, minCoOccurrence: minCoOccurrence}
}

// pairKey is an unordered product pair.
type pairKey struct {
	a, b string
}

func makePairKey(x, y string) pairKey {
	if x < y {
		return pairKey{a: x, b: y}
	}
	return pairKey{a: y, b: x}
}

// Families derives product families from outbound movement co-occurrence
// within the same order reference. Families are connected components over
// pairs seen together at least minCoOccurrence times, returned sorted for
// reproducibility.
func (f *FamilyGroupingAnalyzer) Families(movements []domain.MovementRecord) [][]string {
	byReference := make(map[string]map[string]struct{})
	for _, m := range movements {
		if m.Type != domain.MovementOut || m.Reference == "" {
			continue
		}
		set, ok := byReference[m.Reference]
		if !ok {
			set = make(map[string]struct{})
			byReference[m.Reference] = set
		}
		set[m.ProductID] = struct{}{}
	}

	counts := make(map[pairKey]int)
	for _, set := range byReference {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				counts[makePairKey(ids[i], ids[j])]++
			}
		}
	}

	// Union-find over qualifying pairs.
	parent := make(map[string]string)
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(x, y string) {
		if _, ok := parent[x]; !ok {
			parent[x] = x
		}
		if _, ok := parent[y]; !ok {
			parent[y] = y
		}
		rx, ry := find(x), find(y)
		if rx != ry {
			if rx < ry {
				parent[ry] = rx
			} else {
				parent[rx] = ry
			}
		}
	}
	for pair, n := range counts {
		if n >= f.minCoOccurrence {
			union(pair.a, pair.b)
		}
	}

	groups := make(map[string][]string)
	for id := range parent {
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	families := make([][]string, 0, len(groups))
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		families = append(families, members)
	}
	sort.Slice(families, func(i, j int) bool { return families[i][0] < families[j][0] })

	return families
}

// Analyze recommends moving family members that live outside the family's
// anchor zone into compatible slots in that zone. The anchor is the member
// with the highest demand; its zone hosts the family.
func (f *FamilyGroupingAnalyzer) Analyze(movements []domain.MovementRecord, products []domain.Product, assignments map[string]domain.StorageLocation, available []domain.StorageLocation) []domain.SlottingRecommendation {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	recs := make([]domain.SlottingRecommendation, 0)
	for _, family := range f.Families(movements) {
		anchorZone, ok := f.anchorZone(family, byID, assignments)
		if !ok {
			continue
		}

		zoneSlots := make([]domain.StorageLocation, 0)
		for _, loc := range available {
			if loc.Zone == anchorZone {
				zoneSlots = append(zoneSlots, loc)
			}
		}
		if len(zoneSlots) == 0 {
			continue
		}

		for _, id := range family {
			p, ok := byID[id]
			if !ok {
				continue
			}
			current, assigned := assignments[id]
			if assigned && current.Zone == anchorZone {
				continue
			}
			var currentPtr *domain.StorageLocation
			if assigned {
				currentPtr = &current
			}
			rec, ok := f.rec.Recommend(p, currentPtr, zoneSlots)
			if !ok {
				continue
			}
			rec.Reason = fmt.Sprintf("%s is picked together with %d other products slotted in zone %s; co-locating shortens multi-zone pick tours",
				p.SKU, len(family)-1, anchorZone)
			recs = append(recs, *rec)
		}
	}

	SortRecommendations(recs)
	return recs
}

func (f *FamilyGroupingAnalyzer) anchorZone(family []string, byID map[string]domain.Product, assignments map[string]domain.StorageLocation) (string, bool) {
	bestZone := ""
	bestDemand := -1.0
	for _, id := range family {
		loc, ok := assignments[id]
		if !ok {
			continue
		}
		p, ok := byID[id]
		if !ok {
			continue
		}
		if p.AverageDailyDemand > bestDemand {
			bestDemand = p.AverageDailyDemand
			bestZone = loc.Zone
		}
	}
	return bestZone, bestZone != ""
}
