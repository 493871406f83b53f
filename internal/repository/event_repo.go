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

// eventRepo is the concrete implementation of EventRepository
type eventRepo struct {
	col *mongo.Collection
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *database.DB) EventRepository {
	return &eventRepo{col: db.Collection("events")}
}

// Insert persists a new event and assigns its identity
func (r *eventRepo) Insert(ctx context.Context, event *models.Event) error {
	res, err := r.col.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return nil
}

// FindAll returns every event, upcoming first
func (r *eventRepo) FindAll(ctx context.Context) ([]*models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "eventDate", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID retrieves an event by identity
func (r *eventRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update applies the provided fields and returns the resulting event
func (r *eventRepo) Update(ctx context.Context, id primitive.ObjectID, req *models.EventUpdateRequest) (*models.Event, error) {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.EventDate != nil {
		set["eventDate"] = *req.EventDate
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Link != nil {
		set["link"] = *req.Link
	}
	if req.CreatedBy != nil {
		set["createdBy"] = *req.CreatedBy
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event models.Event
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Delete removes an event
func (r *eventRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
