// FILE: database/repository/capacity/indexes.go
package capacityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the secondary indexes on the slot capacity collection.
// The slot key is the _id, which is already unique.
func (r *mongoSlotCapacityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "spaceId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("space_date_idx"),
		},
		// Housekeeping deletes by date range.
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot capacity indexes: %w", err)
	}
	return nil
}
