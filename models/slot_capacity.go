package models

import "time"

// SlotCapacityRecord is the atomic accounting document for one slot.
// MaxCapacity is copied from the space when the record is first created and
// is not updated afterwards; later space edits only affect new records.
type SlotCapacityRecord struct {
	Key            string    `bson:"_id" json:"key"`
	SpaceID        string    `bson:"spaceId" json:"spaceId"`
	Date           string    `bson:"date" json:"date"`
	StartTime      string    `bson:"startTime" json:"startTime"`
	EndTime        string    `bson:"endTime" json:"endTime"`
	BookedCapacity int       `bson:"bookedCapacity" json:"bookedCapacity"`
	MaxCapacity    int       `bson:"maxCapacity" json:"maxCapacity"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Available returns the remaining seats, never below zero.
func (r SlotCapacityRecord) Available() int {
	if r.BookedCapacity >= r.MaxCapacity {
		return 0
	}
	return r.MaxCapacity - r.BookedCapacity
}
