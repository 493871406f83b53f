package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/community-forum-api/internal/database"
	"github.com/community-forum-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// topicRepo is the concrete implementation of TopicRepository
type topicRepo struct {
	col *mongo.Collection
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{col: db.Collection("topics")}
}

// Insert persists a new topic and assigns its identity
func (r *topicRepo) Insert(ctx context.Context, topic *models.Topic) error {
	res, err := r.col.InsertOne(ctx, topic)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		topic.ID = oid
	}
	return nil
}

// buildQuery translates the typed filter into a MongoDB query document.
// Search and tag fragments match as case-insensitive substrings.
func buildQuery(filter models.TopicFilter) bson.M {
	query := bson.M{}

	if filter.Category != "" && filter.Category != models.AllTopicsSentinel {
		query["category"] = filter.Category
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"tags": re},
		}
	}
	if len(filter.Tags) > 0 {
		patterns := make([]primitive.Regex, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			patterns = append(patterns, primitive.Regex{
				Pattern: regexp.QuoteMeta(strings.TrimSpace(tag)),
				Options: "i",
			})
		}
		query["tags"] = bson.M{"$in": patterns}
	}

	return query
}

// Find returns the topics matching the filter, sorted and paginated.
// Sorting by comment count requires a computed field, so that sort key
// goes through an aggregation pipeline; everything else is a plain find.
func (r *topicRepo) Find(ctx context.Context, filter models.TopicFilter, opts models.TopicListOptions) ([]*models.Topic, error) {
	query := buildQuery(filter)

	dir := -1
	if opts.Order == "asc" {
		dir = 1
	}
	skip := int64(0)
	if opts.Page > 1 {
		skip = int64(opts.Page-1) * int64(opts.Limit)
	}

	if opts.SortBy == "comments.length" {
		return r.findByCommentCount(ctx, query, dir, skip, int64(opts.Limit))
	}

	sortField := opts.SortBy
	if sortField == "" {
		sortField = "createdAt"
	}

	findOpts := options.Find().SetSort(bson.D{{Key: sortField, Value: dir}})
	if skip > 0 {
		findOpts.SetSkip(skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cursor, err := r.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []*models.Topic{}
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepo) findByCommentCount(ctx context.Context, query bson.M, dir int, skip, limit int64) ([]*models.Topic, error) {
	pipeline := []bson.M{
		{"$match": query},
		{"$addFields": bson.M{"commentCount": bson.M{"$size": "$comments"}}},
		{"$sort": bson.M{"commentCount": dir}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.M{"$skip": skip})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": limit})
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []*models.Topic{}
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Count returns the number of topics matching the filter, independent
// of any page slice
func (r *topicRepo) Count(ctx context.Context, filter models.TopicFilter) (int64, error) {
	return r.col.CountDocuments(ctx, buildQuery(filter))
}

// GetByID retrieves a topic without side effects
func (r *topicRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	var topic models.Topic
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&topic)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// GetAndIncrementViews bumps the view counter and returns the topic
// with the increment already applied
func (r *topicRepo) GetAndIncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var topic models.Topic
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&topic)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// IncrementViews bumps the view counter without reading the document
func (r *topicRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// Save writes the whole topic document back. This is the single-document
// write unit for like toggles and comment mutations; concurrent writers
// race on a last-write-wins basis.
func (r *topicRepo) Save(ctx context.Context, topic *models.Topic) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": topic.ID}, topic)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Update applies the update fields and returns the resulting topic
func (r *topicRepo) Update(ctx context.Context, id primitive.ObjectID, update models.TopicUpdate) (*models.Topic, error) {
	set := bson.M{
		"title":       update.Title,
		"description": update.Description,
		"category":    update.Category,
		"type":        update.Type,
		"updatedAt":   update.UpdatedAt,
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.Status != "" {
		set["status"] = update.Status
	}
	if update.Attachment != nil {
		set["attachment"] = update.Attachment
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var topic models.Topic
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&topic)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Delete removes a topic and, by containment, all of its comments
func (r *topicRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Featured returns the newest featured topics
func (r *topicRepo) Featured(ctx context.Context, limit int64) ([]*models.Topic, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []*models.Topic{}
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// TrendingSince returns the most liked topics created at or after the
// cutoff. Topics older than the cutoff never appear regardless of likes.
func (r *topicRepo) TrendingSince(ctx context.Context, since time.Time, limit int64) ([]*models.Topic, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []*models.Topic{}
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Stats computes collection-wide topic statistics
func (r *topicRepo) Stats(ctx context.Context) (*models.TopicStats, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &models.TopicStats{
		TotalTopics:     total,
		PopularCategory: "N/A",
	}

	// Total comment count across all topics
	commentCursor, err := r.col.Aggregate(ctx, []bson.M{
		{"$unwind": "$comments"},
		{"$count": "totalComments"},
	})
	if err != nil {
		return nil, err
	}
	defer commentCursor.Close(ctx)

	var commentCount []struct {
		TotalComments int64 `bson:"totalComments"`
	}
	if err := commentCursor.All(ctx, &commentCount); err != nil {
		return nil, err
	}
	if len(commentCount) > 0 {
		stats.TotalComments = commentCount[0].TotalComments
	}

	// Most frequent category; ties resolve by the sort's document order
	categoryCursor, err := r.col.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 1},
	})
	if err != nil {
		return nil, err
	}
	defer categoryCursor.Close(ctx)

	var popular []struct {
		Category string `bson:"_id"`
	}
	if err := categoryCursor.All(ctx, &popular); err != nil {
		return nil, err
	}
	if len(popular) > 0 {
		stats.PopularCategory = popular[0].Category
	}

	return stats, nil
}
