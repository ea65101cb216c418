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

// DriverCollection defines the interface for driver database operations
type DriverCollection interface {
	InsertDriver(ctx context.Context, driver models.Driver) error
	FindDrivers(ctx context.Context) ([]models.Driver, error)
	FindDriverByID(ctx context.Context, id string) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, drivers []models.Driver) error
}

// MongoDriverCollection implements DriverCollection for MongoDB
type MongoDriverCollection struct {
	Collection *mongo.Collection
}

// InsertDriver inserts a new driver into the database
func (c *MongoDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, driver)
	return err
}

// FindDrivers returns all drivers, oldest first. An empty database
// yields an empty slice, not an error.
func (c *MongoDriverCollection) FindDrivers(ctx context.Context) ([]models.Driver, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	drivers := []models.Driver{}
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// FindDriverByID finds a driver by its ID.
func (c *MongoDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid driver ID: %w", err)
	}
	var driver models.Driver
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("driver not found")
		}
		return nil, err
	}
	return &driver, nil
}

// DeleteDriver deletes a driver by its ID.
func (c *MongoDriverCollection) DeleteDriver(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid driver ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("driver not found")
	}
	return nil
}

// ReplaceAll replaces the whole collection with the given drivers.
func (c *MongoDriverCollection) ReplaceAll(ctx context.Context, drivers []models.Driver) error {
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(drivers) == 0 {
		return nil
	}
	docs := make([]interface{}, len(drivers))
	for i, d := range drivers {
		docs[i] = d
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}
