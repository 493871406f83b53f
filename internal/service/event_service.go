package service

import (
	"context"
	"time"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/rs/zerolog"
)

// eventService is the concrete implementation of EventService
type eventService struct {
	repo repository.EventRepository
	log  zerolog.Logger
	now  func() time.Time
}

func newEventService(repo repository.EventRepository, log zerolog.Logger) *eventService {
	return &eventService{
		repo: repo,
		log:  log.With().Str("service", "events").Logger(),
		now:  time.Now,
	}
}

// Create persists a new event
func (s *eventService) Create(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   *req.EventDate,
		Location:    req.Location,
		Link:        req.Link,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns all events, upcoming first
func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	return s.repo.FindAll(ctx)
}

// Get fetches an event by identity
func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

// Update applies the provided fields only
func (s *eventService) Update(ctx context.Context, id string, req *models.EventUpdateRequest) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, oid, req)
}

// Delete removes an event
func (s *eventService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}
