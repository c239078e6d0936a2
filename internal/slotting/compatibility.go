package slotting

import "github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"

// IsCompatible reports whether a product may legally occupy a location. It is
// pure and side-effect-free; every rule must hold:
//
//  1. if both declare a temperature class, they must match exactly
//  2. hazmat products only go to hazmat-designated locations
//  3. the location's max weight, when declared, is honored
//  4. the product cube must fit the location capacity
//
// A location already holding a different product is never compatible; the
// analyzer does not displace occupants.
func IsCompatible(p domain.Product, loc domain.StorageLocation) bool {
	if loc.CurrentProductID != "" && loc.CurrentProductID != p.ID {
		return false
	}

	if p.StorageReq != nil {
		if p.StorageReq.Temperature != "" && loc.Temperature != "" &&
			p.StorageReq.Temperature != loc.Temperature {
			return false
		}
		if p.StorageReq.Hazmat && !loc.HazmatOnly {
			return false
		}
	}

	if loc.MaxWeightKg > 0 && p.WeightKg > loc.MaxWeightKg {
		return false
	}

	if p.CubeM3() > loc.CapacityM3 {
		return false
	}

	return true
}
