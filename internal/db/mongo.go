package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used in the database.
const (
	DriversCollection      = "drivers"
	TrucksCollection       = "trucks"
	TanksCollection        = "fuel_tanks"
	TransactionsCollection = "transactions"
)

// ConnectMongo connects to MongoDB using the MONGO_URI environment variable.
func ConnectMongo() (*mongo.Client, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store bundles the collections the application works with.
type Store struct {
	Drivers      DriverCollection
	Trucks       TruckCollection
	Tanks        TankCollection
	Transactions TransactionCollection
}

// NewStore builds a Store backed by the named Mongo database.
func NewStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	return &Store{
		Drivers:      &MongoDriverCollection{Collection: database.Collection(DriversCollection)},
		Trucks:       &MongoTruckCollection{Collection: database.Collection(TrucksCollection)},
		Tanks:        &MongoTankCollection{Collection: database.Collection(TanksCollection)},
		Transactions: &MongoTransactionCollection{Collection: database.Collection(TransactionsCollection)},
	}
}
