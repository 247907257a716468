// File: database/repository/capacity/crud.go
package capacityRepo

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

// EnsureRecord creates the counter for a slot if it does not exist yet.
// Every field is written with $setOnInsert, so a concurrent creator or an
// in-flight increment on an existing record is never overwritten.
func (r *mongoSlotCapacityRepo) EnsureRecord(ctx context.Context, rec models.SlotCapacityRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"_id": rec.Key}
	update := bson.M{
		"$setOnInsert": bson.M{
			"spaceId":        rec.SpaceID,
			"date":           rec.Date,
			"startTime":      rec.StartTime,
			"endTime":        rec.EndTime,
			"bookedCapacity": 0,
			"maxCapacity":    rec.MaxCapacity,
			"createdAt":      now,
			"updatedAt":      now,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// Two upserts racing on the same _id: the loser gets a duplicate key error,
		// which means the record now exists.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to ensure slot capacity record %s: %w", rec.Key, err)
	}
	return nil
}

// Find returns the counter for a slot or repository.ErrNotFound.
func (r *mongoSlotCapacityRepo) Find(ctx context.Context, key string) (*models.SlotCapacityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.SlotCapacityRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch slot capacity record %s: %w", key, err)
	}
	return &rec, nil
}

func (r *mongoSlotCapacityRepo) FindBySpaceAndDate(ctx context.Context, spaceID, date string) ([]models.SlotCapacityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"spaceId": spaceID, "date": date}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot capacity records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.SlotCapacityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding slot capacity records: %w", err)
	}
	return records, nil
}

// DeleteBefore removes counters for dates strictly before the given date.
func (r *mongoSlotCapacityRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": date}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale slot capacity records: %w", err)
	}
	return res.DeletedCount, nil
}
