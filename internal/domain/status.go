package domain

import "strings"

// Velocity is the demand-rate tier of a product.
type Velocity string

const (
	VelocityHigh   Velocity = "high"
	VelocityMedium Velocity = "medium"
	VelocityLow    Velocity = "low"
	VelocityDead   Velocity = "dead"
)

// ABCClass is the demand/value tier of a product, A highest.
type ABCClass string

const (
	ABCClassA ABCClass = "A"
	ABCClassB ABCClass = "B"
	ABCClassC ABCClass = "C"
)

// LocationType is the functional role of a storage location.
type LocationType string

const (
	LocationPickFace  LocationType = "pick_face"
	LocationReserve   LocationType = "reserve"
	LocationBulk      LocationType = "bulk"
	LocationForward   LocationType = "forward"
	LocationOverstock LocationType = "overstock"
)

// ErgonomicLevel grades how comfortable a location is to pick from.
type ErgonomicLevel string

const (
	ErgonomicGolden    ErgonomicLevel = "golden"
	ErgonomicStandard  ErgonomicLevel = "standard"
	ErgonomicDifficult ErgonomicLevel = "difficult"
)

// MovementType classifies an inventory movement.
type MovementType string

const (
	MovementIn       MovementType = "IN"
	MovementOut      MovementType = "OUT"
	MovementTransfer MovementType = "TRANSFER"
	MovementAdjust   MovementType = "ADJUST"
)

var velocityValues = map[string]Velocity{
	"high":   VelocityHigh,
	"medium": VelocityMedium,
	"low":    VelocityLow,
	"dead":   VelocityDead,
}

var locationTypeValues = map[string]LocationType{
	"pick_face": LocationPickFace,
	"reserve":   LocationReserve,
	"bulk":      LocationBulk,
	"forward":   LocationForward,
	"overstock": LocationOverstock,
}

// ParseVelocity returns the velocity tier for a label (case-insensitive).
func ParseVelocity(label string) (Velocity, bool) {
	v, ok := velocityValues[strings.ToLower(strings.TrimSpace(label))]

	return v, ok
}

// ParseLocationType returns the location type for a label (case-insensitive).
func ParseLocationType(label string) (LocationType, bool) {
	t, ok := locationTypeValues[strings.ToLower(strings.TrimSpace(label))]

	return t, ok
}

// PreferredLocationType maps a velocity tier to the location type it should
// ideally occupy. Dead stock has no preference.
func (v Velocity) PreferredLocationType() (LocationType, bool) {
	switch v {
	case VelocityHigh:
		return LocationPickFace, true
	case VelocityMedium:
		return LocationForward, true
	case VelocityLow:
		return LocationReserve, true
	}

	return "", false
}
