// File: database/repository/capacity/interface.go
package capacityRepo

import (
	"context"

	"dineslot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotCapacityRepository is the only mutation surface of the slot counters.
type SlotCapacityRepository interface {
	EnsureRecord(ctx context.Context, rec models.SlotCapacityRecord) error
	IncrementIfFits(ctx context.Context, key string, partySize int) (bool, error)
	Decrement(ctx context.Context, key string, partySize int) (*models.SlotCapacityRecord, error)
	ClampNegative(ctx context.Context, key string) (bool, error)
	Find(ctx context.Context, key string) (*models.SlotCapacityRecord, error)
	FindBySpaceAndDate(ctx context.Context, spaceID, date string) ([]models.SlotCapacityRecord, error)
	CompareAndSetBooked(ctx context.Context, key string, expected, value int) (bool, error)
	DeleteBefore(ctx context.Context, date string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotCapacityRepo struct {
	coll *mongo.Collection
}

const CollectionName = "slot_capacity"

// NewMongoSlotCapacityRepo constructs a MongoDB SlotCapacityRepository.
func NewMongoSlotCapacityRepo(db *mongo.Database) SlotCapacityRepository {
	return &mongoSlotCapacityRepo{
		coll: db.Collection(CollectionName),
	}
}
