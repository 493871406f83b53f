package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket defaults
const (
	DefaultTicketPriority = "Medium"
	DefaultTicketStatus   = "Open"
	DefaultTicketCategory = "General"
)

// ValidPriorities defines the allowed ticket priorities
var ValidPriorities = map[string]bool{
	"Low":      true,
	"Medium":   true,
	"High":     true,
	"Critical": true,
}

// ValidTicketStatuses defines the allowed ticket statuses
var ValidTicketStatuses = map[string]bool{
	"Open":        true,
	"In Progress": true,
	"Resolved":    true,
	"Closed":      true,
}

// ValidTicketCategories defines the allowed ticket categories
var ValidTicketCategories = map[string]bool{
	"Technical":       true,
	"Billing":         true,
	"General":         true,
	"Feature Request": true,
	"Bug Report":      true,
	"Delivery Issue":  true,
	"Meal Quality":    true,
	"Packaging Issue": true,
	"Order Issue":     true,
	"Payment Issue":   true,
}

// Ticket represents a support ticket
type Ticket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description" json:"description"`
	Priority    string             `bson:"priority" json:"priority"`
	Status      string             `bson:"status" json:"status"`
	Category    string             `bson:"category" json:"category"`
	AssignedTo  *string            `bson:"assignedTo" json:"assignedTo"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	ResolvedAt  *time.Time         `bson:"resolvedAt" json:"resolvedAt"`
}

// TicketCreateRequest is the payload for POST /api/tickets
type TicketCreateRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	CreatedBy   string `json:"createdBy"`
}

// TicketUpdateRequest is the payload for PUT /api/tickets/:id.
// Only the fields present in the request are applied.
type TicketUpdateRequest struct {
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Category    *string `json:"category"`
	AssignedTo  *string `json:"assignedTo"`
}

// TicketFilter enumerates the recognized ticket listing filters
type TicketFilter struct {
	Status   string
	Priority string
	Category string
}

// TicketListOptions enumerates the recognized ticket sort options
type TicketListOptions struct {
	SortBy string
	Order  string
}

// TicketStatusCounts breaks down tickets by status
type TicketStatusCounts struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// TicketStats is the summary returned by GET /api/tickets/stats/summary
type TicketStats struct {
	Total            int64              `json:"total"`
	ByStatus         TicketStatusCounts `json:"byStatus"`
	HighPriority     int64              `json:"highPriority"`
	CriticalPriority int64              `json:"criticalPriority"`
}
