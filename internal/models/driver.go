package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver represents a driver authorized to consume fuel from the depot.
// Drivers are immutable once created; there is no update path.
type Driver struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	LicenseNumber string             `json:"license_number" bson:"license_number"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
