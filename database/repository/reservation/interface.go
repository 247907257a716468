// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"dineslot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationRepository interface {
	Save(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	DeleteVersion(ctx context.Context, r *models.Reservation) (bool, error)
	FindConfirmedBySpaceAndDate(ctx context.Context, spaceID, date string) ([]models.Reservation, error)
	SumConfirmedBySlotKey(ctx context.Context, spaceID, date string) (map[string]int, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

const CollectionName = "reservations"

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo(db *mongo.Database) ReservationRepository {
	return &MongoReservationRepo{coll: db.Collection(CollectionName)}
}
