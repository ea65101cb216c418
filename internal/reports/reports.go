// Package reports derives summary statistics from the fuel ledger.
// Everything here is a pure projection over the transaction slice;
// nothing is persisted and every call recomputes from scratch, which
// is fine at single-depot transaction volumes.
package reports

import (
	"time"

	"github.com/fueldesk/fuel-manager/internal/models"
)

// Summary aggregates ledger totals over a date range.
type Summary struct {
	TotalConsumptionCost  float64                    `json:"total_consumption_cost"`
	TotalRefillCost       float64                    `json:"total_refill_cost"`
	ConsumptionByFuelKind map[models.FuelKind]float64 `json:"consumption_by_fuel_kind"`
}

// EntityStats aggregates the ledger entries attributed to one driver
// or truck.
type EntityStats struct {
	Count       int     `json:"count"`
	TotalLiters float64 `json:"total_liters"`
	TotalCost   float64 `json:"total_cost"`
}

// InRange reports whether a transaction date falls inside [start, end],
// inclusive and compared by calendar date (UTC).
func InRange(date, start, end time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(start)) && !d.After(truncateToDay(end))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Summarize computes overall cost and consumption totals for the
// transactions inside the date range.
func Summarize(txns []models.FuelTransaction, start, end time.Time) Summary {
	summary := Summary{
		ConsumptionByFuelKind: map[models.FuelKind]float64{
			models.FuelDiesel: 0,
			models.FuelAdBlue: 0,
		},
	}
	for _, t := range txns {
		if !InRange(t.Date, start, end) {
			continue
		}
		switch t.Kind {
		case models.TransactionConsumption:
			summary.TotalConsumptionCost += t.TotalCost
			summary.ConsumptionByFuelKind[t.FuelKind] += t.Amount
		case models.TransactionRefill:
			summary.TotalRefillCost += t.TotalCost
		}
	}
	return summary
}

// PerDriverStats aggregates transactions per driver. Drivers with no
// matching transaction in range are absent from the result.
func PerDriverStats(txns []models.FuelTransaction, start, end time.Time) map[string]EntityStats {
	return perEntityStats(txns, start, end, func(t models.FuelTransaction) string { return t.DriverID })
}

// PerTruckStats aggregates transactions per truck. Trucks with no
// matching transaction in range are absent from the result.
func PerTruckStats(txns []models.FuelTransaction, start, end time.Time) map[string]EntityStats {
	return perEntityStats(txns, start, end, func(t models.FuelTransaction) string { return t.TruckID })
}

func perEntityStats(txns []models.FuelTransaction, start, end time.Time, key func(models.FuelTransaction) string) map[string]EntityStats {
	stats := map[string]EntityStats{}
	for _, t := range txns {
		id := key(t)
		if id == "" || !InRange(t.Date, start, end) {
			continue
		}
		s := stats[id]
		s.Count++
		s.TotalLiters += t.Amount
		s.TotalCost += t.TotalCost
		stats[id] = s
	}
	return stats
}
