package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTopicRepository is an in-memory implementation of
// TopicRepository mirroring the document store's query semantics
type MockTopicRepository struct {
	mu     sync.RWMutex
	Topics map[primitive.ObjectID]*models.Topic

	InsertErr error
	FindErr   error
	SaveErr   error
}

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{
		Topics: make(map[primitive.ObjectID]*models.Topic),
	}
}

// copyTopic clones a topic so callers mutate their own view, the way a
// decoded document would behave
func copyTopic(t *models.Topic) *models.Topic {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	c.LikedBy = append([]string(nil), t.LikedBy...)
	c.Comments = append([]models.Comment(nil), t.Comments...)
	return &c
}

func (m *MockTopicRepository) Insert(ctx context.Context, topic *models.Topic) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if topic.ID.IsZero() {
		topic.ID = primitive.NewObjectID()
	}
	m.Topics[topic.ID] = copyTopic(topic)
	return nil
}

func matchesTopic(t *models.Topic, f models.TopicFilter) bool {
	if f.Category != "" && f.Category != models.AllTopicsSentinel && t.Category != f.Category {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		found := strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
		if !found {
			for _, tag := range t.Tags {
				if strings.Contains(strings.ToLower(tag), needle) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Tags) > 0 {
		found := false
		for _, frag := range f.Tags {
			needle := strings.ToLower(strings.TrimSpace(frag))
			for _, tag := range t.Tags {
				if strings.Contains(strings.ToLower(tag), needle) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortTopics(topics []*models.Topic, sortBy, order string) {
	desc := order != "asc"
	sort.SliceStable(topics, func(i, j int) bool {
		a, b := topics[i], topics[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "likes":
			return a.Likes < b.Likes
		case "views":
			return a.Views < b.Views
		case "comments.length":
			return len(a.Comments) < len(b.Comments)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

func (m *MockTopicRepository) Find(ctx context.Context, filter models.TopicFilter, opts models.TopicListOptions) ([]*models.Topic, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := []*models.Topic{}
	for _, t := range m.Topics {
		if matchesTopic(t, filter) {
			matched = append(matched, copyTopic(t))
		}
	}

	sortTopics(matched, opts.SortBy, opts.Order)

	skip := 0
	if opts.Page > 1 {
		skip = (opts.Page - 1) * opts.Limit
	}
	if skip >= len(matched) {
		return []*models.Topic{}, nil
	}
	matched = matched[skip:]
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (m *MockTopicRepository) Count(ctx context.Context, filter models.TopicFilter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, t := range m.Topics {
		if matchesTopic(t, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MockTopicRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.Topics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTopic(t), nil
}

func (m *MockTopicRepository) GetAndIncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Topics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Views++
	return copyTopic(t), nil
}

func (m *MockTopicRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.Topics[id]; ok {
		t.Views++
	}
	return nil
}

func (m *MockTopicRepository) Save(ctx context.Context, topic *models.Topic) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Topics[topic.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Topics[topic.ID] = copyTopic(topic)
	return nil
}

func (m *MockTopicRepository) Update(ctx context.Context, id primitive.ObjectID, update models.TopicUpdate) (*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Topics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Title = update.Title
	t.Description = update.Description
	t.Category = update.Category
	t.Type = update.Type
	t.UpdatedAt = update.UpdatedAt
	if update.Tags != nil {
		t.Tags = append([]string(nil), update.Tags...)
	}
	if update.Status != "" {
		t.Status = update.Status
	}
	if update.Attachment != nil {
		t.Attachment = *update.Attachment
	}
	return copyTopic(t), nil
}

func (m *MockTopicRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Topics[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Topics, id)
	return nil
}

func (m *MockTopicRepository) Featured(ctx context.Context, limit int64) ([]*models.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	featured := []*models.Topic{}
	for _, t := range m.Topics {
		if t.IsFeatured {
			featured = append(featured, copyTopic(t))
		}
	}
	sortTopics(featured, "createdAt", "desc")
	if int64(len(featured)) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (m *MockTopicRepository) TrendingSince(ctx context.Context, since time.Time, limit int64) ([]*models.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trending := []*models.Topic{}
	for _, t := range m.Topics {
		if !t.CreatedAt.Before(since) {
			trending = append(trending, copyTopic(t))
		}
	}
	sortTopics(trending, "likes", "desc")
	if int64(len(trending)) > limit {
		trending = trending[:limit]
	}
	return trending, nil
}

func (m *MockTopicRepository) Stats(ctx context.Context) (*models.TopicStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.TopicStats{
		TotalTopics:     int64(len(m.Topics)),
		PopularCategory: "N/A",
	}

	categories := map[string]int64{}
	for _, t := range m.Topics {
		stats.TotalComments += int64(len(t.Comments))
		categories[t.Category]++
	}

	// Deterministic tie-break: iterate categories in name order
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var best int64
	for _, name := range names {
		if categories[name] > best {
			best = categories[name]
			stats.PopularCategory = name
		}
	}

	return stats, nil
}

// MockEventRepository is an in-memory implementation of EventRepository
type MockEventRepository struct {
	mu     sync.RWMutex
	Events map[primitive.ObjectID]*models.Event

	InsertErr error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[primitive.ObjectID]*models.Event),
	}
}

func (m *MockEventRepository) Insert(ctx context.Context, event *models.Event) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	stored := *event
	m.Events[event.ID] = &stored
	return nil
}

func (m *MockEventRepository) FindAll(ctx context.Context) ([]*models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := []*models.Event{}
	for _, e := range m.Events {
		copied := *e
		events = append(events, &copied)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
	return events, nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.Events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *MockEventRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.EventUpdateRequest) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.Events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.EventDate != nil {
		e.EventDate = *req.EventDate
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Link != nil {
		e.Link = *req.Link
	}
	if req.CreatedBy != nil {
		e.CreatedBy = *req.CreatedBy
	}
	copied := *e
	return &copied, nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Events, id)
	return nil
}

// MockTicketRepository is an in-memory implementation of TicketRepository
type MockTicketRepository struct {
	mu      sync.RWMutex
	Tickets map[primitive.ObjectID]*models.Ticket

	InsertErr error
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{
		Tickets: make(map[primitive.ObjectID]*models.Ticket),
	}
}

func (m *MockTicketRepository) Insert(ctx context.Context, ticket *models.Ticket) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if ticket.ID.IsZero() {
		ticket.ID = primitive.NewObjectID()
	}
	stored := *ticket
	m.Tickets[ticket.ID] = &stored
	return nil
}

func (m *MockTicketRepository) Find(ctx context.Context, filter models.TicketFilter, opts models.TicketListOptions) ([]*models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tickets := []*models.Ticket{}
	for _, t := range m.Tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		copied := *t
		tickets = append(tickets, &copied)
	}

	desc := opts.Order != "asc"
	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := tickets[i], tickets[j]
		if desc {
			a, b = b, a
		}
		if opts.SortBy == "updatedAt" {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return tickets, nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.Tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockTicketRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.TicketUpdate) (*models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Subject != nil {
		t.Subject = *update.Subject
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Category != nil {
		t.Category = *update.Category
	}
	if update.AssignedTo != nil {
		t.AssignedTo = update.AssignedTo
	}
	if update.ResolvedAt != nil {
		t.ResolvedAt = update.ResolvedAt
	}
	t.UpdatedAt = update.UpdatedAt
	copied := *t
	return &copied, nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Tickets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Tickets, id)
	return nil
}

func (m *MockTicketRepository) Stats(ctx context.Context) (*models.TicketStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.TicketStats{Total: int64(len(m.Tickets))}
	for _, t := range m.Tickets {
		switch t.Status {
		case "Open":
			stats.ByStatus.Open++
		case "In Progress":
			stats.ByStatus.InProgress++
		case "Resolved":
			stats.ByStatus.Resolved++
		case "Closed":
			stats.ByStatus.Closed++
		}
		switch t.Priority {
		case "High":
			stats.HighPriority++
		case "Critical":
			stats.CriticalPriority++
		}
	}
	return stats, nil
}
