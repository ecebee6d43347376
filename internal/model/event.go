package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is an alumni event listing with an optional poster image
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventTitle  string             `bson:"event_title" json:"event_title"`
	Description string             `bson:"description" json:"description"`
	DateTime    time.Time          `bson:"dateTime" json:"dateTime"`
	Location    string             `bson:"location" json:"location"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EventForm carries the multipart create/update form. DateTime arrives as
// an RFC 3339 string and is parsed in the service.
type EventForm struct {
	EventTitle  string `form:"event_title"`
	Description string `form:"description"`
	DateTime    string `form:"dateTime"`
	Location    string `form:"location"`
}
