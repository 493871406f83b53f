package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/community-forum-api/internal/mocks"
	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/service"
	"github.com/community-forum-api/internal/validation"
	"github.com/rs/zerolog"
)

func newTicketTestServices(repo *mocks.MockTicketRepository) *service.Services {
	repos := &repository.Repositories{
		Topic:  mocks.NewMockTopicRepository(),
		Event:  mocks.NewMockEventRepository(),
		Ticket: repo,
	}
	return service.NewServices(repos, zerolog.Nop())
}

func TestTicketCreateDefaults(t *testing.T) {
	repo := mocks.NewMockTicketRepository()
	svc := newTicketTestServices(repo)

	ticket, err := svc.Ticket.Create(context.Background(), &models.TicketCreateRequest{
		Subject:     "  Order arrived cold  ",
		Description: "The delivery took two hours",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if ticket.Subject != "Order arrived cold" {
		t.Errorf("subject should be trimmed, got %q", ticket.Subject)
	}
	if ticket.Priority != "Medium" {
		t.Errorf("expected default priority Medium, got %q", ticket.Priority)
	}
	if ticket.Status != "Open" {
		t.Errorf("expected status Open, got %q", ticket.Status)
	}
	if ticket.Category != "General" {
		t.Errorf("expected default category General, got %q", ticket.Category)
	}
	if ticket.CreatedBy != "Anonymous" {
		t.Errorf("expected default creator, got %q", ticket.CreatedBy)
	}
	if ticket.ResolvedAt != nil {
		t.Error("a new ticket must not carry resolvedAt")
	}
}

func TestTicketCreateValidation(t *testing.T) {
	svc := newTicketTestServices(mocks.NewMockTicketRepository())

	_, err := svc.Ticket.Create(context.Background(), &models.TicketCreateRequest{
		Subject:     "s",
		Description: "d",
		Priority:    "Urgent",
	})

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
}

func TestTicketUpdateStampsResolvedAt(t *testing.T) {
	repo := mocks.NewMockTicketRepository()
	svc := newTicketTestServices(repo)

	ticket, err := svc.Ticket.Create(context.Background(), &models.TicketCreateRequest{
		Subject:     "s",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inProgress := "In Progress"
	updated, err := svc.Ticket.Update(context.Background(), ticket.ID.Hex(), &models.TicketUpdateRequest{
		Status: &inProgress,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ResolvedAt != nil {
		t.Error("moving to In Progress must not stamp resolvedAt")
	}

	resolved := "Resolved"
	updated, err = svc.Ticket.Update(context.Background(), ticket.ID.Hex(), &models.TicketUpdateRequest{
		Status: &resolved,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ResolvedAt == nil {
		t.Error("resolving a ticket must stamp resolvedAt")
	}
	if updated.Status != "Resolved" {
		t.Errorf("expected status Resolved, got %q", updated.Status)
	}
}

func TestTicketListFilter(t *testing.T) {
	repo := mocks.NewMockTicketRepository()
	svc := newTicketTestServices(repo)

	high := []string{"High", "Low", "High"}
	for _, p := range high {
		if _, err := svc.Ticket.Create(context.Background(), &models.TicketCreateRequest{
			Subject:     "s",
			Description: "d",
			Priority:    p,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	tickets, err := svc.Ticket.List(context.Background(),
		models.TicketFilter{Priority: "High"}, models.TicketListOptions{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tickets) != 2 {
		t.Errorf("expected 2 high-priority tickets, got %d", len(tickets))
	}
}

func TestTicketStats(t *testing.T) {
	repo := mocks.NewMockTicketRepository()
	svc := newTicketTestServices(repo)

	priorities := []string{"High", "Critical", "Low"}
	ids := make([]string, 0, len(priorities))
	for _, p := range priorities {
		ticket, err := svc.Ticket.Create(context.Background(), &models.TicketCreateRequest{
			Subject:     "s",
			Description: "d",
			Priority:    p,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids = append(ids, ticket.ID.Hex())
	}

	closed := "Closed"
	if _, err := svc.Ticket.Update(context.Background(), ids[2], &models.TicketUpdateRequest{Status: &closed}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stats, err := svc.Ticket.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.ByStatus.Open != 2 || stats.ByStatus.Closed != 1 {
		t.Errorf("unexpected status counts: %+v", stats.ByStatus)
	}
	if stats.HighPriority != 1 || stats.CriticalPriority != 1 {
		t.Errorf("unexpected priority counts: high=%d critical=%d", stats.HighPriority, stats.CriticalPriority)
	}
}

func TestTicketGetNotFound(t *testing.T) {
	svc := newTicketTestServices(mocks.NewMockTicketRepository())

	if _, err := svc.Ticket.Get(context.Background(), "bogus"); !errors.Is(err, service.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
