package models

type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotLimited   SlotStatus = "LIMITED"
	SlotFull      SlotStatus = "FULL"
)

// AvailabilitySlot is one displayable time slot with live capacity numbers.
type AvailabilitySlot struct {
	StartTime                string     `json:"startTime"`
	EndTime                  string     `json:"endTime"`
	AvailableCapacity        int        `json:"availableCapacity"`
	BookedCapacity           int        `json:"bookedCapacity"`
	Status                   SlotStatus `json:"status"`
	ExistingReservationCount int        `json:"existingReservationCount"`
}

type AvailabilityResponse struct {
	SpaceID                   string             `json:"spaceId"`
	SpaceName                 string             `json:"spaceName"`
	Date                      string             `json:"date"`
	MaxCapacity               int                `json:"maxCapacity"`
	IsOpen                    bool               `json:"isOpen"`
	OperatingHoursDescription string             `json:"operatingHoursDescription"`
	Slots                     []AvailabilitySlot `json:"slots"`
}
