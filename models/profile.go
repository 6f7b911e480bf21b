package models

import "time"

const (
	RoleCaretaker = "caretaker"
	RolePatient   = "patient"
)

// Profile carries the contact details used for external reminders.
type Profile struct {
	UserID            string    `bson:"userId" json:"userId"`
	Email             string    `bson:"email" json:"email"`
	FullName          string    `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Role              string    `bson:"role" json:"role"`
	PhoneNumber       string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	IsProfileComplete bool      `bson:"isProfileComplete" json:"isProfileComplete"`
	FCMToken          string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate is the PUT /api/profiles payload. Omitted fields are left
// unchanged.
type ProfileUpdate struct {
	FullName          *string `json:"fullName"`
	Role              *string `json:"role" binding:"omitempty,oneof=caretaker patient"`
	IsProfileComplete *bool   `json:"isProfileComplete"`
	PhoneNumber       *string `json:"phoneNumber"`
}

type DeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
