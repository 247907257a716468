package capacity

// SlotKey is the canonical identity of a slot: "{spaceId}:{date}:{startTime}".
// date and startTime must already be in canonical "2006-01-02" and "HH:mm" form;
// the fixed-width suffix keeps keys collision-free even if a space id contains ':'.
func SlotKey(spaceID, date, startTime string) string {
	return spaceID + ":" + date + ":" + startTime
}
