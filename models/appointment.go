package models

// Appointment is a one-off scheduled visit.
type Appointment struct {
	Schedule    `bson:",inline"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	PhoneNumber string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
}

// AppointmentInput is the create/update payload.
type AppointmentInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,isodate"`
	Time        string `json:"time" binding:"required,hhmm"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phoneNumber"`
}
