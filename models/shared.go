package models

// ReminderScanPayload is the body of a queued reminder scan task.
type ReminderScanPayload struct {
	Kind ItemKind `json:"kind"`
}
