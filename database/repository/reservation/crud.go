// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"dineslot/database/repository"
	"dineslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Save inserts a new reservation document.
func (repo *MongoReservationRepo) Save(ctx context.Context, r *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("error creating reservation %s: %w", r.ID, repository.ClassifyWriteError(err))
	}
	return nil
}

// Update writes the reservation back using optimistic concurrency on its version.
// A concurrent writer that got there first surfaces as repository.ErrWriteConflict.
func (repo *MongoReservationRepo) Update(ctx context.Context, r *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expected := r.Version
	next := *r
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": r.ID, "version": expected}
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": next})
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", r.ID, repository.ClassifyWriteError(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("reservation %s changed concurrently (version %d): %w", r.ID, expected, repository.ErrWriteConflict)
	}
	r.Version = next.Version
	r.UpdatedAt = next.UpdatedAt
	return nil
}

// FindByID retrieves a reservation by its ID.
func (repo *MongoReservationRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var r models.Reservation
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &r, nil
}

// DeleteVersion removes the reservation only if it still carries r.Version.
// It reports false when the document is gone or was changed by another writer.
func (repo *MongoReservationRepo) DeleteVersion(ctx context.Context, r *models.Reservation) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": r.ID, "version": r.Version})
	if err != nil {
		return false, fmt.Errorf("error deleting reservation %s: %w", r.ID, repository.ClassifyWriteError(err))
	}
	return res.DeletedCount > 0, nil
}
