package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fueldesk/fuel-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TruckCollection defines the interface for truck database operations
type TruckCollection interface {
	InsertTruck(ctx context.Context, truck models.Truck) error
	FindTrucks(ctx context.Context) ([]models.Truck, error)
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	DeleteTruck(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, trucks []models.Truck) error
}

// MongoTruckCollection implements TruckCollection for MongoDB
type MongoTruckCollection struct {
	Collection *mongo.Collection
}

// InsertTruck inserts a new truck into the database
func (c *MongoTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if truck.CreatedAt.IsZero() {
		truck.CreatedAt = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, truck)
	return err
}

// FindTrucks returns all trucks, oldest first.
func (c *MongoTruckCollection) FindTrucks(ctx context.Context) ([]models.Truck, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	trucks := []models.Truck{}
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

// FindTruckByID finds a truck by its ID.
func (c *MongoTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid truck ID: %w", err)
	}
	var truck models.Truck
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&truck)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("truck not found")
		}
		return nil, err
	}
	return &truck, nil
}

// DeleteTruck deletes a truck by its ID.
func (c *MongoTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid truck ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("truck not found")
	}
	return nil
}

// ReplaceAll replaces the whole collection with the given trucks.
func (c *MongoTruckCollection) ReplaceAll(ctx context.Context, trucks []models.Truck) error {
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(trucks) == 0 {
		return nil
	}
	docs := make([]interface{}, len(trucks))
	for i, t := range trucks {
		docs[i] = t
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}
