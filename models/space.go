package models

import "time"

// Space is a bookable private-dining room owned by a restaurant.
type Space struct {
	ID                  string    `bson:"id" json:"id"`
	RestaurantID        string    `bson:"restaurantId" json:"restaurantId"`
	Name                string    `bson:"name" json:"name"`
	MinCapacity         int       `bson:"minCapacity" json:"minCapacity"`
	MaxCapacity         int       `bson:"maxCapacity" json:"maxCapacity"`                 // hard ceiling for one slot's total headcount
	SlotDurationMinutes int       `bson:"slotDurationMinutes" json:"slotDurationMinutes"` // booking granularity
	BufferMinutes       int       `bson:"bufferMinutes" json:"bufferMinutes"`             // informational, not enforced
	IsActive            bool      `bson:"isActive" json:"isActive"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}
