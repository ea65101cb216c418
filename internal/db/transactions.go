package db

import (
	"context"
	"fmt"

	"github.com/fueldesk/fuel-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionCollection defines the interface for fuel transaction
// database operations. The ledger is append-only: there is no update
// or single-record delete.
type TransactionCollection interface {
	InsertTransaction(ctx context.Context, txn models.FuelTransaction) error
	FindTransactions(ctx context.Context) ([]models.FuelTransaction, error)
	FindRecentTransactions(ctx context.Context, limit int64) ([]models.FuelTransaction, error)
	CountByDriver(ctx context.Context, driverID string) (int64, error)
	CountByTruck(ctx context.Context, truckID string) (int64, error)
	ReplaceAll(ctx context.Context, txns []models.FuelTransaction) error
}

// MongoTransactionCollection implements TransactionCollection for MongoDB
type MongoTransactionCollection struct {
	Collection *mongo.Collection
}

// InsertTransaction appends a transaction to the ledger.
func (c *MongoTransactionCollection) InsertTransaction(ctx context.Context, txn models.FuelTransaction) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, txn)
	return err
}

// FindTransactions returns the whole ledger, oldest first.
func (c *MongoTransactionCollection) FindTransactions(ctx context.Context) ([]models.FuelTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	txns := []models.FuelTransaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// FindRecentTransactions returns the newest transactions, newest first.
func (c *MongoTransactionCollection) FindRecentTransactions(ctx context.Context, limit int64) ([]models.FuelTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	txns := []models.FuelTransaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CountByDriver counts ledger entries attributed to a driver.
func (c *MongoTransactionCollection) CountByDriver(ctx context.Context, driverID string) (int64, error) {
	return c.Collection.CountDocuments(ctx, bson.M{"driver_id": driverID})
}

// CountByTruck counts ledger entries attributed to a truck.
func (c *MongoTransactionCollection) CountByTruck(ctx context.Context, truckID string) (int64, error) {
	return c.Collection.CountDocuments(ctx, bson.M{"truck_id": truckID})
}

// ReplaceAll replaces the whole ledger with the given transactions.
// Only backup restore is allowed to do this.
func (c *MongoTransactionCollection) ReplaceAll(ctx context.Context, txns []models.FuelTransaction) error {
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(txns) == 0 {
		return nil
	}
	docs := make([]interface{}, len(txns))
	for i, t := range txns {
		docs[i] = t
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}
