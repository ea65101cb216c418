package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Truck represents a fleet truck that fuel consumption is attributed to.
// Trucks are immutable once created; there is no update path.
type Truck struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlateNumber  string             `json:"plate_number" bson:"plate_number"`
	Model        string             `json:"model" bson:"model"`
	Year         int                `json:"year" bson:"year"`
	TankCapacity float64            `json:"tank_capacity" bson:"tank_capacity"` // in liters
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
