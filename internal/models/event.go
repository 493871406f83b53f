package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a community event
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	EventDate   time.Time          `bson:"eventDate" json:"eventDate"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// EventCreateRequest is the payload for POST /api/events
type EventCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"eventDate"`
	Location    string     `json:"location"`
	Link        string     `json:"link"`
	CreatedBy   string     `json:"createdBy"`
}

// EventUpdateRequest is the payload for PUT /api/events/:id.
// Only the fields present in the request are applied.
type EventUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"eventDate"`
	Location    *string    `json:"location"`
	Link        *string    `json:"link"`
	CreatedBy   *string    `json:"createdBy"`
}
