package repository

import (
	"context"
	"errors"
	"time"

	"github.com/community-forum-api/internal/database"
	"github.com/community-forum-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an identity does not resolve to a document
var ErrNotFound = errors.New("document not found")

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	Insert(ctx context.Context, topic *models.Topic) error
	Find(ctx context.Context, filter models.TopicFilter, opts models.TopicListOptions) ([]*models.Topic, error)
	Count(ctx context.Context, filter models.TopicFilter) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)
	GetAndIncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Save(ctx context.Context, topic *models.Topic) error
	Update(ctx context.Context, id primitive.ObjectID, update models.TopicUpdate) (*models.Topic, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Featured(ctx context.Context, limit int64) ([]*models.Topic, error)
	TrendingSince(ctx context.Context, since time.Time, limit int64) ([]*models.Topic, error)
	Stats(ctx context.Context) (*models.TopicStats, error)
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Insert(ctx context.Context, event *models.Event) error
	FindAll(ctx context.Context) ([]*models.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.EventUpdateRequest) (*models.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Insert(ctx context.Context, ticket *models.Ticket) error
	Find(ctx context.Context, filter models.TicketFilter, opts models.TicketListOptions) ([]*models.Ticket, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	Update(ctx context.Context, id primitive.ObjectID, update TicketUpdate) (*models.Ticket, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Stats(ctx context.Context) (*models.TicketStats, error)
}

// TicketUpdate carries the fields a ticket update writes to storage.
// Nil fields are skipped.
type TicketUpdate struct {
	Subject     *string
	Description *string
	Priority    *string
	Status      *string
	Category    *string
	AssignedTo  *string
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic  TopicRepository
	Event  EventRepository
	Ticket TicketRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:  NewTopicRepo(db),
		Event:  NewEventRepo(db),
		Ticket: NewTicketRepo(db),
	}
}
