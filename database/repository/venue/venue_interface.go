package venueRepo

import (
	"context"

	"dineslot/models"
)

// SpaceRepository is the read-only view of spaces used by the booking engine.
type SpaceRepository interface {
	FindSpaceByID(ctx context.Context, id string) (*models.Space, error)
}

// RestaurantRepository is the read-only view of restaurants and their operating hours.
type RestaurantRepository interface {
	FindRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error)
}

// VenueRepository combines both lookups; the Mongo implementation serves both.
type VenueRepository interface {
	SpaceRepository
	RestaurantRepository
	EnsureIndexes(ctx context.Context) error
}
