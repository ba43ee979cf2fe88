package vehicles

import (
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// RetailMaxWeightKG is the payload ceiling for retail deliveries. Vehicles
// above it (or without a ceiling at all) are reserved for agricultural loads.
const RetailMaxWeightKG = 100

// FallbackVehicleKeys is the hardcoded candidate set used when the catalog
// cannot be read. These keys are also seeded by migrations.
var FallbackVehicleKeys = []string{"foot", "bike", "motorbike"}

// RetailEligible reports whether the vehicle may carry retail orders.
func RetailEligible(vt models.VehicleType) bool {
	return vt.Active && vt.MaxWeightKG != nil && *vt.MaxWeightKG <= RetailMaxWeightKG
}

// AgriculturalEligible reports whether the vehicle may carry agricultural
// orders. A nil weight means unlimited payload.
func AgriculturalEligible(vt models.VehicleType) bool {
	return vt.Active && (vt.MaxWeightKG == nil || *vt.MaxWeightKG > RetailMaxWeightKG)
}

// EligibleForShopType filters the catalog down to the vehicles allowed to
// deliver for the given shop classification.
func EligibleForShopType(catalog []models.VehicleType, shopType enums.ShopType) []models.VehicleType {
	eligible := make([]models.VehicleType, 0, len(catalog))
	for _, vt := range catalog {
		switch shopType {
		case enums.ShopTypeAgricultural:
			if AgriculturalEligible(vt) {
				eligible = append(eligible, vt)
			}
		default:
			// Retail, "all", and unclassified shops use retail rules.
			if RetailEligible(vt) {
				eligible = append(eligible, vt)
			}
		}
	}
	return eligible
}

// Keys projects a vehicle slice down to its catalog keys.
func Keys(catalog []models.VehicleType) []string {
	keys := make([]string, 0, len(catalog))
	for _, vt := range catalog {
		keys = append(keys, vt.Key)
	}
	return keys
}
