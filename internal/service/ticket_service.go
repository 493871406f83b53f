package service

import (
	"context"
	"strings"
	"time"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/validation"
	"github.com/rs/zerolog"
)

// ticketService is the concrete implementation of TicketService
type ticketService struct {
	repo repository.TicketRepository
	log  zerolog.Logger
	now  func() time.Time
}

func newTicketService(repo repository.TicketRepository, log zerolog.Logger) *ticketService {
	return &ticketService{
		repo: repo,
		log:  log.With().Str("service", "tickets").Logger(),
		now:  time.Now,
	}
}

// Create validates the payload, applies defaults and persists the ticket
func (s *ticketService) Create(ctx context.Context, req *models.TicketCreateRequest) (*models.Ticket, error) {
	if errs := validation.ValidateTicketCreate(req); len(errs) > 0 {
		return nil, errs
	}

	now := s.now().UTC()

	priority := req.Priority
	if priority == "" {
		priority = models.DefaultTicketPriority
	}
	category := req.Category
	if category == "" {
		category = models.DefaultTicketCategory
	}
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = models.DefaultAuthor
	}

	ticket := &models.Ticket{
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      models.DefaultTicketStatus,
		Category:    category,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns tickets matching the filter in the requested order
func (s *ticketService) List(ctx context.Context, filter models.TicketFilter, opts models.TicketListOptions) ([]*models.Ticket, error) {
	return s.repo.Find(ctx, filter, opts)
}

// Get fetches a ticket by identity
func (s *ticketService) Get(ctx context.Context, id string) (*models.Ticket, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

// Update applies the provided fields, refreshing updatedAt. Moving the
// status to Resolved or Closed stamps resolvedAt.
func (s *ticketService) Update(ctx context.Context, id string, req *models.TicketUpdateRequest) (*models.Ticket, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateTicketUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	now := s.now().UTC()
	update := repository.TicketUpdate{
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Category:    req.Category,
		AssignedTo:  req.AssignedTo,
		UpdatedAt:   now,
	}
	if req.Status != nil && (*req.Status == "Resolved" || *req.Status == "Closed") {
		update.ResolvedAt = &now
	}

	return s.repo.Update(ctx, oid, update)
}

// Delete removes a ticket
func (s *ticketService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// Stats returns ticket counts by status and priority
func (s *ticketService) Stats(ctx context.Context) (*models.TicketStats, error) {
	return s.repo.Stats(ctx)
}
