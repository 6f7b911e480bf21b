package models

import "time"

type SupportGroup struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Schedule    string    `bson:"schedule" json:"schedule"`
	CreatedBy   string    `bson:"createdBy" json:"createdBy"`
	Members     []string  `bson:"members" json:"members"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// GroupSummary is the list view of a group for one viewer.
type GroupSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Schedule     string `json:"schedule"`
	Participants int    `json:"participants"`
	IsMember     bool   `json:"isMember"`
}

type GroupInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Schedule    string `json:"schedule" binding:"required"`
}

type GroupMessage struct {
	ID        string    `bson:"id" json:"id"`
	GroupID   string    `bson:"groupId" json:"groupId"`
	UserID    string    `bson:"userId" json:"userId"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// GroupMessageView is a message joined with its author's profile.
type GroupMessageView struct {
	GroupMessage
	UserProfile *Profile `json:"userProfile"`
}
