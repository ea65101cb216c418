package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fueldesk/fuel-manager/internal/models"
)

// Backup is a point-in-time snapshot of all four collections. Nil
// slices in an imported document mean "leave that collection alone".
type Backup struct {
	Drivers      []models.Driver          `json:"drivers,omitempty"`
	Trucks       []models.Truck           `json:"trucks,omitempty"`
	FuelTanks    []models.FuelTank        `json:"fuelTanks,omitempty"`
	Transactions []models.FuelTransaction `json:"transactions,omitempty"`
	ExportDate   time.Time                `json:"exportDate"`
}

// Export captures a snapshot of the whole store.
func Export(ctx context.Context, store *Store) (*Backup, error) {
	drivers, err := store.Drivers.FindDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("export drivers: %w", err)
	}
	trucks, err := store.Trucks.FindTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("export trucks: %w", err)
	}
	tanks, err := store.Tanks.FindTanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("export tanks: %w", err)
	}
	txns, err := store.Transactions.FindTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("export transactions: %w", err)
	}
	return &Backup{
		Drivers:      drivers,
		Trucks:       trucks,
		FuelTanks:    tanks,
		Transactions: txns,
		ExportDate:   time.Now().UTC(),
	}, nil
}

// Import replaces each collection present in the backup document.
// Collections absent from the document retain their current contents.
func Import(ctx context.Context, store *Store, backup *Backup) error {
	if backup.Drivers != nil {
		if err := store.Drivers.ReplaceAll(ctx, backup.Drivers); err != nil {
			return fmt.Errorf("import drivers: %w", err)
		}
	}
	if backup.Trucks != nil {
		if err := store.Trucks.ReplaceAll(ctx, backup.Trucks); err != nil {
			return fmt.Errorf("import trucks: %w", err)
		}
	}
	if backup.FuelTanks != nil {
		if err := store.Tanks.ReplaceAll(ctx, backup.FuelTanks); err != nil {
			return fmt.Errorf("import tanks: %w", err)
		}
	}
	if backup.Transactions != nil {
		if err := store.Transactions.ReplaceAll(ctx, backup.Transactions); err != nil {
			return fmt.Errorf("import transactions: %w", err)
		}
	}
	return nil
}
