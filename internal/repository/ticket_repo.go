package repository

import (
	"context"
	"errors"

	"github.com/community-forum-api/internal/database"
	"github.com/community-forum-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ticketRepo is the concrete implementation of TicketRepository
type ticketRepo struct {
	col *mongo.Collection
}

// NewTicketRepo creates a new ticket repository
func NewTicketRepo(db *database.DB) TicketRepository {
	return &ticketRepo{col: db.Collection("tickets")}
}

// Insert persists a new ticket and assigns its identity
func (r *ticketRepo) Insert(ctx context.Context, ticket *models.Ticket) error {
	res, err := r.col.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ticket.ID = oid
	}
	return nil
}

// Find returns tickets matching the filter in the requested order
func (r *ticketRepo) Find(ctx context.Context, filter models.TicketFilter, opts models.TicketListOptions) ([]*models.Ticket, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	sortField := opts.SortBy
	if sortField == "" {
		sortField = "createdAt"
	}
	dir := -1
	if opts.Order == "asc" {
		dir = 1
	}

	findOpts := options.Find().SetSort(bson.D{{Key: sortField, Value: dir}})

	cursor, err := r.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tickets := []*models.Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetByID retrieves a ticket by identity
func (r *ticketRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Update applies the provided fields and returns the resulting ticket
func (r *ticketRepo) Update(ctx context.Context, id primitive.ObjectID, update TicketUpdate) (*models.Ticket, error) {
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Subject != nil {
		set["subject"] = *update.Subject
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.AssignedTo != nil {
		set["assignedTo"] = *update.AssignedTo
	}
	if update.ResolvedAt != nil {
		set["resolvedAt"] = *update.ResolvedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ticket models.Ticket
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Delete removes a ticket
func (r *ticketRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats computes ticket counts by status and priority
func (r *ticketRepo) Stats(ctx context.Context) (*models.TicketStats, error) {
	stats := &models.TicketStats{}

	type countTarget struct {
		query bson.M
		dest  *int64
	}
	counts := []countTarget{
		{bson.M{}, &stats.Total},
		{bson.M{"status": "Open"}, &stats.ByStatus.Open},
		{bson.M{"status": "In Progress"}, &stats.ByStatus.InProgress},
		{bson.M{"status": "Resolved"}, &stats.ByStatus.Resolved},
		{bson.M{"status": "Closed"}, &stats.ByStatus.Closed},
		{bson.M{"priority": "High"}, &stats.HighPriority},
		{bson.M{"priority": "Critical"}, &stats.CriticalPriority},
	}

	for _, c := range counts {
		n, err := r.col.CountDocuments(ctx, c.query)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	return stats, nil
}
