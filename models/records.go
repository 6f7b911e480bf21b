package models

import "time"

// MedicalRecord is a dated entry in a user's medical history, optionally with
// an attached document.
type MedicalRecord struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"userId" json:"userId"`
	Date           string    `bson:"date" json:"date"`
	Type           string    `bson:"type" json:"type"`
	Description    string    `bson:"description" json:"description"`
	AttachmentName string    `bson:"attachmentName,omitempty" json:"attachmentName,omitempty"`
	AttachmentKey  string    `bson:"attachmentKey,omitempty" json:"-"`
	AttachmentURL  string    `bson:"attachmentUrl,omitempty" json:"attachmentUrl,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

type MedicalRecordInput struct {
	Date           string `json:"date" form:"date" binding:"required,isodate"`
	Type           string `json:"type" form:"type" binding:"required"`
	Description    string `json:"description" form:"description" binding:"required"`
	AttachmentName string `json:"attachmentName" form:"attachmentName"`
}
