package models

import (
	"time"
	_ "time/tzdata"
)

// OperatingHours is the opening window of a restaurant for one day of the week.
// DayOfWeek follows time.Weekday (0 = Sunday).
type OperatingHours struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"`
	OpenTime  string `bson:"openTime,omitempty" json:"openTime,omitempty"`   // "HH:mm"
	CloseTime string `bson:"closeTime,omitempty" json:"closeTime,omitempty"` // "HH:mm"
	IsClosed  bool   `bson:"isClosed" json:"isClosed"`
}

type Restaurant struct {
	ID             string           `bson:"id" json:"id"`
	Name           string           `bson:"name" json:"name"`
	Timezone       string           `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "Europe/Paris"
	OperatingHours []OperatingHours `bson:"operatingHours" json:"operatingHours"`
	IsActive       bool             `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// HoursFor returns the operating hours configured for the given weekday.
// A day without an entry is treated as closed.
func (r *Restaurant) HoursFor(day time.Weekday) OperatingHours {
	for _, h := range r.OperatingHours {
		if h.DayOfWeek == int(day) {
			return h
		}
	}
	return OperatingHours{DayOfWeek: int(day), IsClosed: true}
}

// Location resolves the restaurant's timezone. An empty or unknown name
// yields fallback.
func (r *Restaurant) Location(fallback *time.Location) *time.Location {
	if r.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
