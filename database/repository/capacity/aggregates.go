// File: database/repository/capacity/aggregates.go
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

// IncrementIfFits adds partySize to the counter only when the result stays
// within the record's own maxCapacity. Condition and increment are a single
// document update, so concurrent callers can never push the counter past the ceiling.
func (r *mongoSlotCapacityRepo) IncrementIfFits(ctx context.Context, key string, partySize int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id": key,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{"$bookedCapacity", partySize}},
				"$maxCapacity",
			},
		},
	}
	update := bson.M{
		"$inc": bson.M{"bookedCapacity": partySize},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to increment slot capacity %s: %w", key, err)
	}
	return res.MatchedCount == 1, nil
}

// Decrement subtracts partySize unconditionally and returns the record after the update.
func (r *mongoSlotCapacityRepo) Decrement(ctx context.Context, key string, partySize int) (*models.SlotCapacityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"bookedCapacity": -partySize},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec models.SlotCapacityRecord
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to decrement slot capacity %s: %w", key, err)
	}
	return &rec, nil
}

// ClampNegative resets a counter that went below zero back to zero.
func (r *mongoSlotCapacityRepo) ClampNegative(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": key, "bookedCapacity": bson.M{"$lt": 0}}
	update := bson.M{"$set": bson.M{"bookedCapacity": 0, "updatedAt": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to clamp slot capacity %s: %w", key, err)
	}
	return res.ModifiedCount == 1, nil
}

// CompareAndSetBooked overwrites the counter only if it still holds the expected value.
// Used by reconciliation; admission never goes through this path.
func (r *mongoSlotCapacityRepo) CompareAndSetBooked(ctx context.Context, key string, expected, value int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": key, "bookedCapacity": expected}
	update := bson.M{"$set": bson.M{"bookedCapacity": value, "updatedAt": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reset slot capacity %s: %w", key, err)
	}
	return res.MatchedCount == 1, nil
}
