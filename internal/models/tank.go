package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelKind identifies the kind of fuel stored in a tank.
type FuelKind string

const (
	FuelDiesel FuelKind = "diesel"
	FuelAdBlue FuelKind = "adblue"
)

// IsValidFuelKind checks if a fuel kind is valid
func IsValidFuelKind(kind FuelKind) bool {
	switch kind {
	case FuelDiesel, FuelAdBlue:
		return true
	default:
		return false
	}
}

// FuelTank represents a depot storage tank for one kind of fuel.
// Invariant: 0 <= CurrentLevel <= Capacity and
// TotalValue == CurrentLevel * PricePerLiter after every mutation.
type FuelTank struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FuelKind      FuelKind           `json:"fuel_kind" bson:"fuel_kind"`
	Capacity      float64            `json:"capacity" bson:"capacity"`           // in liters
	CurrentLevel  float64            `json:"current_level" bson:"current_level"` // in liters
	PricePerLiter float64            `json:"price_per_liter" bson:"price_per_liter"`
	LastRefill    time.Time          `json:"last_refill" bson:"last_refill"`
	TotalValue    float64            `json:"total_value" bson:"total_value"`
}
