package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrInvalidPrice     = errors.New("price per liter must be a positive number")
	ErrInvalidCapacity  = errors.New("capacity must be a positive number")
	ErrUnknownFuelKind  = errors.New("no tank holds this fuel kind")
	ErrPermissionDenied = errors.New("permission denied")
)

// Warning reports that a transaction was clamped against tank bounds.
type Warning string

const (
	WarningNone      Warning = ""
	WarningOverflow  Warning = "overflow"  // refill exceeded remaining capacity
	WarningUnderflow Warning = "underflow" // consumption exceeded available stock
)

// TransactionInput carries a refill or consumption request into the
// ledger. PricePerLiter is only read for refills; consumption is
// always priced at the tank's current price.
type TransactionInput struct {
	Kind          models.TransactionKind `json:"kind"`
	FuelKind      models.FuelKind        `json:"fuel_kind"`
	Amount        float64                `json:"amount"`
	PricePerLiter float64                `json:"price_per_liter"`
	DriverID      string                 `json:"driver_id,omitempty"`
	TruckID       string                 `json:"truck_id,omitempty"`
	Date          time.Time              `json:"date,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
}

// ApplyResult is what a successful ApplyTransaction produces: the
// appended ledger entry, the tank state after the mutation, and a
// warning when the requested amount was clamped.
type ApplyResult struct {
	Transaction models.FuelTransaction `json:"transaction"`
	Tank        models.FuelTank        `json:"tank"`
	Warning     Warning                `json:"warning,omitempty"`
}

// Service is the ledger engine. It owns the tank entities, applies
// transactions to them and keeps the level/value invariants. All role
// checks happen here rather than in the HTTP layer only, so a
// different front-end cannot bypass them.
type Service struct {
	tanks        db.TankCollection
	transactions db.TransactionCollection
	mu           map[models.FuelKind]*sync.Mutex
}

// NewService creates a new ledger service.
func NewService(tanks db.TankCollection, transactions db.TransactionCollection) *Service {
	return &Service{
		tanks:        tanks,
		transactions: transactions,
		mu: map[models.FuelKind]*sync.Mutex{
			models.FuelDiesel: {},
			models.FuelAdBlue: {},
		},
	}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}

func (s *Service) validate(in TransactionInput) error {
	if !models.IsValidTransactionKind(in.Kind) {
		return ErrInvalidKind
	}
	if !models.IsValidFuelKind(in.FuelKind) {
		return ErrUnknownFuelKind
	}
	if !positiveFinite(in.Amount) {
		return ErrInvalidAmount
	}
	if in.Kind == models.TransactionRefill && !positiveFinite(in.PricePerLiter) {
		return ErrInvalidPrice
	}
	return nil
}

func (s *Service) authorize(claims *models.Claims, action string) error {
	if claims == nil || !claims.Role.HasPermission(action) {
		return ErrPermissionDenied
	}
	return nil
}

// ApplyTransaction validates and applies one refill or consumption
// against the matching tank and appends exactly one ledger entry.
// The tank mutation and the append behave as a single unit: if the
// append fails, the previous tank state is written back and the
// persistence error is returned.
func (s *Service) ApplyTransaction(ctx context.Context, claims *models.Claims, in TransactionInput) (*ApplyResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	action := "record_consumption"
	if in.Kind == models.TransactionRefill {
		action = "record_refill"
	}
	if err := s.authorize(claims, action); err != nil {
		return nil, err
	}

	// One transaction in flight per fuel kind; keeps the level/value
	// invariant under concurrent requests.
	mu := s.mu[in.FuelKind]
	mu.Lock()
	defer mu.Unlock()

	tank, err := s.tanks.FindTankByFuelKind(ctx, in.FuelKind)
	if err != nil {
		if errors.Is(err, db.ErrTankNotFound) {
			return nil, ErrUnknownFuelKind
		}
		return nil, fmt.Errorf("load %s tank: %w", in.FuelKind, err)
	}
	prev := *tank

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var applied, price float64
	warning := WarningNone
	switch in.Kind {
	case models.TransactionRefill:
		applied = math.Min(in.Amount, tank.Capacity-tank.CurrentLevel)
		if applied < in.Amount {
			warning = WarningOverflow
		}
		price = in.PricePerLiter
		tank.CurrentLevel += applied
		tank.PricePerLiter = price
		tank.LastRefill = date
	case models.TransactionConsumption:
		applied = math.Min(in.Amount, tank.CurrentLevel)
		if applied < in.Amount {
			warning = WarningUnderflow
		}
		price = tank.PricePerLiter
		tank.CurrentLevel -= applied
	}
	tank.TotalValue = tank.CurrentLevel * tank.PricePerLiter

	if err := s.tanks.UpdateTank(ctx, tank.ID.Hex(), *tank); err != nil {
		return nil, fmt.Errorf("update %s tank: %w", in.FuelKind, err)
	}

	txn := models.FuelTransaction{
		ID:            primitive.NewObjectID(),
		Kind:          in.Kind,
		FuelKind:      in.FuelKind,
		Amount:        in.Amount,
		PricePerLiter: price,
		TotalCost:     applied * price,
		DriverID:      in.DriverID,
		TruckID:       in.TruckID,
		Date:          date,
		Notes:         in.Notes,
	}
	if err := s.transactions.InsertTransaction(ctx, txn); err != nil {
		// Put the tank back so the caller observes all-or-nothing.
		if rbErr := s.tanks.UpdateTank(ctx, prev.ID.Hex(), prev); rbErr != nil {
			log.WithError(rbErr).Errorf("failed to restore %s tank after append failure", in.FuelKind)
		}
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	if warning != WarningNone {
		log.WithFields(log.Fields{
			"fuel_kind": in.FuelKind,
			"kind":      in.Kind,
			"requested": in.Amount,
			"applied":   applied,
		}).Warnf("transaction clamped: %s", warning)
	}

	return &ApplyResult{Transaction: txn, Tank: *tank, Warning: warning}, nil
}

// UpdateTankCapacity resizes a tank. Shrinking below the current level
// clamps the level down and recomputes the stock value; no ledger
// entry is produced for the adjustment.
func (s *Service) UpdateTankCapacity(ctx context.Context, claims *models.Claims, tankID string, newCapacity float64) (*models.FuelTank, error) {
	if !positiveFinite(newCapacity) {
		return nil, ErrInvalidCapacity
	}
	if err := s.authorize(claims, "manage_tanks"); err != nil {
		return nil, err
	}

	tank, err := s.tanks.FindTankByID(ctx, tankID)
	if err != nil {
		return nil, err
	}

	mu, ok := s.mu[tank.FuelKind]
	if !ok {
		return nil, ErrUnknownFuelKind
	}
	mu.Lock()
	defer mu.Unlock()

	// Reload under the lock; the tank may have changed since the
	// unlocked lookup.
	tank, err = s.tanks.FindTankByID(ctx, tankID)
	if err != nil {
		return nil, err
	}

	tank.Capacity = newCapacity
	if tank.CurrentLevel > newCapacity {
		tank.CurrentLevel = newCapacity
	}
	tank.TotalValue = tank.CurrentLevel * tank.PricePerLiter

	if err := s.tanks.UpdateTank(ctx, tank.ID.Hex(), *tank); err != nil {
		return nil, fmt.Errorf("update %s tank: %w", tank.FuelKind, err)
	}
	return tank, nil
}
