package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionKind identifies the direction of a fuel transaction.
type TransactionKind string

const (
	TransactionRefill      TransactionKind = "refill"
	TransactionConsumption TransactionKind = "consumption"
)

// IsValidTransactionKind checks if a transaction kind is valid
func IsValidTransactionKind(kind TransactionKind) bool {
	switch kind {
	case TransactionRefill, TransactionConsumption:
		return true
	default:
		return false
	}
}

// FuelTransaction represents one entry of the append-only fuel ledger.
// Transactions are never edited or deleted once recorded.
type FuelTransaction struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind          TransactionKind    `json:"kind" bson:"kind"`
	FuelKind      FuelKind           `json:"fuel_kind" bson:"fuel_kind"`
	Amount        float64            `json:"amount" bson:"amount"` // requested liters, before clamping
	PricePerLiter float64            `json:"price_per_liter" bson:"price_per_liter"`
	TotalCost     float64            `json:"total_cost" bson:"total_cost"` // liters actually moved * price
	DriverID      string             `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	TruckID       string             `json:"truck_id,omitempty" bson:"truck_id,omitempty"`
	Date          time.Time          `json:"date" bson:"date"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
}
