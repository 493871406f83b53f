package service

import (
	"context"
	"errors"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrInvalidID is returned when an identity string is not a valid
// document reference. Handlers report it as a 400, distinct from
// not-found.
var ErrInvalidID = errors.New("invalid id format")

// ErrCommentNotFound is returned when a topic resolves but the comment
// id does not exist within it
var ErrCommentNotFound = errors.New("comment not found")

// TopicService defines the topic aggregate operations
type TopicService interface {
	Create(ctx context.Context, req *models.TopicCreateRequest) (*models.Topic, error)
	List(ctx context.Context, filter models.TopicFilter, opts models.TopicListOptions) ([]*models.Topic, *models.Pagination, error)
	Featured(ctx context.Context) ([]*models.Topic, error)
	Trending(ctx context.Context) ([]*models.Topic, error)
	Get(ctx context.Context, id string) (*models.Topic, error)
	Update(ctx context.Context, id string, req *models.TopicUpdateRequest) (*models.Topic, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id, userID string) (*models.LikeResult, error)
	AddComment(ctx context.Context, id string, req *models.CommentRequest) (*models.Comment, error)
	LikeComment(ctx context.Context, topicID, commentID string) (*models.Comment, error)
	Stats(ctx context.Context) (*models.TopicStats, error)
	Search(ctx context.Context, query string) ([]*models.Topic, error)
}

// EventService defines the event operations
type EventService interface {
	Create(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, req *models.EventUpdateRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// TicketService defines the support ticket operations
type TicketService interface {
	Create(ctx context.Context, req *models.TicketCreateRequest) (*models.Ticket, error)
	List(ctx context.Context, filter models.TicketFilter, opts models.TicketListOptions) ([]*models.Ticket, error)
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Update(ctx context.Context, id string, req *models.TicketUpdateRequest) (*models.Ticket, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.TicketStats, error)
}

// Services holds all service interfaces
type Services struct {
	Topic  TopicService
	Event  EventService
	Ticket TicketService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Topic:  newTopicService(repos.Topic, log),
		Event:  newEventService(repos.Event, log),
		Ticket: newTicketService(repos.Ticket, log),
	}
}
