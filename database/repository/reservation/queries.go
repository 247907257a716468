// File: database/repository/reservation/queries.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"dineslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindConfirmedBySpaceAndDate returns all CONFIRMED reservations of a space on a date, ordered by start time.
func (repo *MongoReservationRepo) FindConfirmedBySpaceAndDate(ctx context.Context, spaceID, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"spaceId":         spaceID,
		"reservationDate": date,
		"status":          models.StatusConfirmed,
	}
	cursor, err := repo.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding confirmed reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return reservations, nil
}

// SumConfirmedBySlotKey aggregates CONFIRMED party sizes per slot key for a space and date.
func (repo *MongoReservationRepo) SumConfirmedBySlotKey(ctx context.Context, spaceID, date string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"spaceId":         spaceID,
			"reservationDate": date,
			"status":          models.StatusConfirmed,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$slotKey",
			"total": bson.M{"$sum": "$partySize"},
		}}},
	}

	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate confirmed party sizes: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SlotKey string `bson:"_id"`
		Total   int    `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	sums := make(map[string]int, len(rows))
	for _, row := range rows {
		sums[row.SlotKey] = row.Total
	}
	return sums, nil
}
