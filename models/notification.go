package models

import "time"

type NotificationType string

const (
	NotificationAppointment NotificationType = "appointment"
	NotificationRoutine     NotificationType = "routine"
	NotificationChat        NotificationType = "chat"
)

type Notification struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"userId" json:"userId"`
	Type      NotificationType `bson:"type" json:"type"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Data      map[string]any   `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool             `bson:"read" json:"read"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}
