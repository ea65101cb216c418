package reports

import (
	"testing"
	"time"

	"github.com/fueldesk/fuel-manager/internal/models"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 6, 30)
	txns := []models.FuelTransaction{
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 100, TotalCost: 150, Date: date(2025, 6, 10)},
		{Kind: models.TransactionRefill, FuelKind: models.FuelDiesel, Amount: 500, TotalCost: 600, Date: date(2025, 6, 12)},
	}

	summary := Summarize(txns, start, end)
	assert.InDelta(t, 150.0, summary.TotalConsumptionCost, 1e-9)
	assert.InDelta(t, 600.0, summary.TotalRefillCost, 1e-9)
	assert.InDelta(t, 100.0, summary.ConsumptionByFuelKind[models.FuelDiesel], 1e-9)
	assert.InDelta(t, 0.0, summary.ConsumptionByFuelKind[models.FuelAdBlue], 1e-9)
}

func TestSummarize_FiltersByDateRange(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 6, 30)
	txns := []models.FuelTransaction{
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 100, TotalCost: 100, Date: date(2025, 5, 31)},
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 40, TotalCost: 40, Date: date(2025, 6, 1)},
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 60, TotalCost: 60, Date: date(2025, 6, 30)},
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 100, TotalCost: 100, Date: date(2025, 7, 1)},
	}

	summary := Summarize(txns, start, end)
	// Both range ends are inclusive.
	assert.InDelta(t, 100.0, summary.TotalConsumptionCost, 1e-9)
}

func TestInRange_ComparesCalendarDates(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 6, 30)

	// A transaction late on the end day still counts even though its
	// instant is after midnight of the end date.
	lateOnEndDay := time.Date(2025, 6, 30, 23, 45, 0, 0, time.UTC)
	assert.True(t, InRange(lateOnEndDay, start, end))

	assert.True(t, InRange(date(2025, 6, 1), start, end))
	assert.False(t, InRange(date(2025, 5, 31), start, end))
	assert.False(t, InRange(time.Date(2025, 7, 1, 0, 0, 1, 0, time.UTC), start, end))
}

func TestPerDriverStats(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 6, 30)
	txns := []models.FuelTransaction{
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 100, TotalCost: 150, DriverID: "d1", TruckID: "t1", Date: date(2025, 6, 5)},
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 50, TotalCost: 75, DriverID: "d1", TruckID: "t2", Date: date(2025, 6, 6)},
		{Kind: models.TransactionConsumption, FuelKind: models.FuelAdBlue, Amount: 20, TotalCost: 16, DriverID: "d2", TruckID: "t1", Date: date(2025, 6, 7)},
		// Out of range: must not count for anyone.
		{Kind: models.TransactionConsumption, FuelKind: models.FuelDiesel, Amount: 999, TotalCost: 999, DriverID: "d3", TruckID: "t3", Date: date(2025, 7, 7)},
		// No driver attribution (a refill): must not appear at all.
		{Kind: models.TransactionRefill, FuelKind: models.FuelDiesel, Amount: 4000, TotalCost: 5000, Date: date(2025, 6, 8)},
	}

	byDriver := PerDriverStats(txns, start, end)
	assert.Len(t, byDriver, 2)
	assert.Equal(t, 2, byDriver["d1"].Count)
	assert.InDelta(t, 150.0, byDriver["d1"].TotalLiters, 1e-9)
	assert.InDelta(t, 225.0, byDriver["d1"].TotalCost, 1e-9)
	assert.Equal(t, 1, byDriver["d2"].Count)
	// Drivers with no matching transactions are omitted, not zeroed.
	_, ok := byDriver["d3"]
	assert.False(t, ok)

	byTruck := PerTruckStats(txns, start, end)
	assert.Len(t, byTruck, 2)
	assert.Equal(t, 2, byTruck["t1"].Count)
	assert.InDelta(t, 120.0, byTruck["t1"].TotalLiters, 1e-9)
	assert.InDelta(t, 166.0, byTruck["t1"].TotalCost, 1e-9)
	assert.Equal(t, 1, byTruck["t2"].Count)
}

func TestSummarize_EmptyLedger(t *testing.T) {
	summary := Summarize(nil, date(2025, 6, 1), date(2025, 6, 30))
	assert.Zero(t, summary.TotalConsumptionCost)
	assert.Zero(t, summary.TotalRefillCost)
	assert.NotNil(t, summary.ConsumptionByFuelKind)
}
