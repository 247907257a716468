package venueRepo

import (
	"context"
	"fmt"
	"time"

	"dineslot/database/repository"
	"dineslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVenueRepo implements VenueRepository using MongoDB.
type MongoVenueRepo struct {
	spaceColl      *mongo.Collection
	restaurantColl *mongo.Collection
}

// NewMongoVenueRepo creates a new instance of VenueRepository using MongoDB.
func NewMongoVenueRepo(db *mongo.Database) VenueRepository {
	return &MongoVenueRepo{
		spaceColl:      db.Collection("spaces"),
		restaurantColl: db.Collection("restaurants"),
	}
}

func (r *MongoVenueRepo) FindSpaceByID(ctx context.Context, id string) (*models.Space, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var space models.Space
	if err := r.spaceColl.FindOne(ctx, bson.M{"id": id}).Decode(&space); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch space with id %s: %w", id, err)
	}
	return &space, nil
}

func (r *MongoVenueRepo) FindRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var restaurant models.Restaurant
	if err := r.restaurantColl.FindOne(ctx, bson.M{"id": id}).Decode(&restaurant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch restaurant with id %s: %w", id, err)
	}
	return &restaurant, nil
}

func (r *MongoVenueRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}
	if _, err := r.spaceColl.Indexes().CreateOne(ctx, unique); err != nil {
		return fmt.Errorf("failed to create space indexes: %w", err)
	}
	if _, err := r.spaceColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "restaurantId", Value: 1}},
		Options: options.Index().SetName("restaurant_idx"),
	}); err != nil {
		return fmt.Errorf("failed to create space indexes: %w", err)
	}
	if _, err := r.restaurantColl.Indexes().CreateOne(ctx, unique); err != nil {
		return fmt.Errorf("failed to create restaurant indexes: %w", err)
	}
	return nil
}
