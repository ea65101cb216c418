package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fueldesk/fuel-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTankNotFound is returned when no tank matches the lookup.
var ErrTankNotFound = errors.New("tank not found")

// TankCollection defines the interface for fuel tank database operations
type TankCollection interface {
	InsertTank(ctx context.Context, tank models.FuelTank) error
	FindTanks(ctx context.Context) ([]models.FuelTank, error)
	FindTankByID(ctx context.Context, id string) (*models.FuelTank, error)
	FindTankByFuelKind(ctx context.Context, kind models.FuelKind) (*models.FuelTank, error)
	UpdateTank(ctx context.Context, id string, tank models.FuelTank) error
	CountTanks(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, tanks []models.FuelTank) error
}

// MongoTankCollection implements TankCollection for MongoDB
type MongoTankCollection struct {
	Collection *mongo.Collection
}

// InsertTank inserts a new fuel tank into the database
func (c *MongoTankCollection) InsertTank(ctx context.Context, tank models.FuelTank) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, tank)
	return err
}

// FindTanks returns all fuel tanks.
func (c *MongoTankCollection) FindTanks(ctx context.Context) ([]models.FuelTank, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	tanks := []models.FuelTank{}
	if err := cursor.All(ctx, &tanks); err != nil {
		return nil, err
	}
	return tanks, nil
}

// FindTankByID finds a tank by its ID.
func (c *MongoTankCollection) FindTankByID(ctx context.Context, id string) (*models.FuelTank, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid tank ID: %w", err)
	}
	var tank models.FuelTank
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tank)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTankNotFound
		}
		return nil, err
	}
	return &tank, nil
}

// FindTankByFuelKind finds the tank holding the given fuel kind. The
// depot is expected to hold exactly one tank per kind.
func (c *MongoTankCollection) FindTankByFuelKind(ctx context.Context, kind models.FuelKind) (*models.FuelTank, error) {
	var tank models.FuelTank
	err := c.Collection.FindOne(ctx, bson.M{"fuel_kind": kind}).Decode(&tank)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTankNotFound
		}
		return nil, err
	}
	return &tank, nil
}

// UpdateTank replaces a tank document by its ID.
func (c *MongoTankCollection) UpdateTank(ctx context.Context, id string, tank models.FuelTank) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid tank ID: %w", err)
	}
	tank.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, tank)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTankNotFound
	}
	return nil
}

// CountTanks returns the number of tanks in the collection.
func (c *MongoTankCollection) CountTanks(ctx context.Context) (int64, error) {
	return c.Collection.CountDocuments(ctx, bson.M{})
}

// ReplaceAll replaces the whole collection with the given tanks.
func (c *MongoTankCollection) ReplaceAll(ctx context.Context, tanks []models.FuelTank) error {
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(tanks) == 0 {
		return nil
	}
	docs := make([]interface{}, len(tanks))
	for i, t := range tanks {
		docs[i] = t
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}

// EnsureDefaultTanks seeds the depot's two tanks (diesel and AdBlue)
// when the collection is empty. Existing tanks are left untouched.
func EnsureDefaultTanks(ctx context.Context, tanks TankCollection) error {
	count, err := tanks.CountTanks(ctx)
	if err != nil {
		return fmt.Errorf("count tanks: %w", err)
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	seed := []models.FuelTank{
		{
			ID:            primitive.NewObjectID(),
			FuelKind:      models.FuelDiesel,
			Capacity:      5000,
			CurrentLevel:  0,
			PricePerLiter: 1.0,
			LastRefill:    now,
			TotalValue:    0,
		},
		{
			ID:            primitive.NewObjectID(),
			FuelKind:      models.FuelAdBlue,
			Capacity:      1000,
			CurrentLevel:  0,
			PricePerLiter: 0.8,
			LastRefill:    now,
			TotalValue:    0,
		},
	}
	for _, tank := range seed {
		if err := tanks.InsertTank(ctx, tank); err != nil {
			return fmt.Errorf("seed %s tank: %w", tank.FuelKind, err)
		}
	}
	return nil
}
