package models

// ReconcilePayload is the task payload for a capacity reconciliation run.
type ReconcilePayload struct {
	SpaceID string `json:"spaceId"`
	Date    string `json:"date"`
	Repair  bool   `json:"repair"`
}

// ReapPayload is the task payload for deleting stale capacity records.
type ReapPayload struct {
	Before string `json:"before,omitempty"` // empty means "today minus retention"
}

// Drift describes a slot whose counter disagrees with its confirmed reservations.
type Drift struct {
	SlotKey   string `json:"slotKey"`
	Counter   int    `json:"counter"`
	Confirmed int    `json:"confirmed"`
	Repaired  bool   `json:"repaired"`
}
