package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/validation"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage       = 1
	defaultLimit      = 20
	featuredLimit     = 5
	trendingLimit     = 5
	trendingWindowDay = 7
)

// topicService is the concrete implementation of TopicService
type topicService struct {
	repo repository.TopicRepository
	log  zerolog.Logger
	now  func() time.Time
}

func newTopicService(repo repository.TopicRepository, log zerolog.Logger) *topicService {
	return &topicService{
		repo: repo,
		log:  log.With().Str("service", "topics").Logger(),
		now:  time.Now,
	}
}

// parseID converts an identity string into an ObjectID, mapping any
// malformed token to ErrInvalidID
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// Create validates the payload, applies defaults and persists the topic.
// CreatedAt and UpdatedAt are equal at creation time.
func (s *topicService) Create(ctx context.Context, req *models.TopicCreateRequest) (*models.Topic, error) {
	if errs := validation.ValidateTopicCreate(req); len(errs) > 0 {
		return nil, errs
	}

	now := s.now().UTC()

	author := req.Author
	if author == "" {
		author = models.DefaultAuthor
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	attachment := models.Attachment{Type: "none"}
	if req.Attachment != nil {
		attachment = *req.Attachment
	}

	topic := &models.Topic{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Tags:        tags,
		Type:        req.Type,
		Author:      author,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []models.Comment{},
		LikedBy:     []string{},
		Status:      "active",
		Attachment:  attachment,
	}

	if err := s.repo.Insert(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// normalizeListOptions applies the sort allow-list and pagination
// defaults. Unrecognized sort keys or order values silently fall back
// to createdAt descending rather than failing the request.
func normalizeListOptions(opts models.TopicListOptions) models.TopicListOptions {
	if !models.ValidSortFields[opts.SortBy] || (opts.Order != "asc" && opts.Order != "desc") {
		opts.SortBy = "createdAt"
		opts.Order = "desc"
	}
	if opts.Page < 1 {
		opts.Page = defaultPage
	}
	if opts.Limit < 1 {
		opts.Limit = defaultLimit
	}
	return opts
}

// List returns the matching page with pagination metadata. Sorting by
// views bumps the view counter of every topic on the returned page as a
// side effect, mirroring the popular-sort behavior clients depend on.
func (s *topicService) List(ctx context.Context, filter models.TopicFilter, opts models.TopicListOptions) ([]*models.Topic, *models.Pagination, error) {
	opts = normalizeListOptions(opts)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	topics, err := s.repo.Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, err
	}

	if opts.SortBy == "views" {
		for _, topic := range topics {
			if err := s.repo.IncrementViews(ctx, topic.ID); err != nil {
				return nil, nil, err
			}
		}
	}

	pagination := &models.Pagination{
		Page:  opts.Page,
		Limit: opts.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(opts.Limit))),
	}

	return topics, pagination, nil
}

// Featured returns the newest featured topics, capped at five
func (s *topicService) Featured(ctx context.Context) ([]*models.Topic, error) {
	return s.repo.Featured(ctx, featuredLimit)
}

// Trending returns the most liked topics from the last seven days. The
// cutoff is hard: an older topic never appears regardless of likes.
func (s *topicService) Trending(ctx context.Context) ([]*models.Topic, error) {
	since := s.now().AddDate(0, 0, -trendingWindowDay)
	return s.repo.TrendingSince(ctx, since, trendingLimit)
}

// Get fetches a topic by identity. Every fetch increments the view
// counter, and the returned topic reflects the increment.
func (s *topicService) Get(ctx context.Context, id string) (*models.Topic, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAndIncrementViews(ctx, oid)
}

// Update replaces the four core fields and applies the optional ones,
// refreshing updatedAt
func (s *topicService) Update(ctx context.Context, id string, req *models.TopicUpdateRequest) (*models.Topic, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateTopicUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	update := models.TopicUpdate{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Type:        req.Type,
		Tags:        req.Tags,
		Status:      req.Status,
		Attachment:  req.Attachment,
		UpdatedAt:   s.now().UTC(),
	}

	return s.repo.Update(ctx, oid, update)
}

// Delete destroys the topic and its embedded comments
func (s *topicService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// ToggleLike flips the acting user's like on the topic. The read and
// write are separate round trips, so two concurrent toggles on the same
// topic race last-write-wins; acceptable for this domain.
func (s *topicService) ToggleLike(ctx context.Context, id, userID string) (*models.LikeResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	topic, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	hasLiked := false
	for _, liker := range topic.LikedBy {
		if liker == userID {
			hasLiked = true
			break
		}
	}

	if hasLiked {
		if topic.Likes > 0 {
			topic.Likes--
		}
		likedBy := topic.LikedBy[:0]
		for _, liker := range topic.LikedBy {
			if liker != userID {
				likedBy = append(likedBy, liker)
			}
		}
		topic.LikedBy = likedBy
	} else {
		topic.Likes++
		topic.LikedBy = append(topic.LikedBy, userID)
	}
	topic.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, topic); err != nil {
		return nil, err
	}

	return &models.LikeResult{Likes: topic.Likes, HasLiked: !hasLiked}, nil
}

// AddComment appends a comment with a fresh identity and refreshes the
// parent's updatedAt
func (s *topicService) AddComment(ctx context.Context, id string, req *models.CommentRequest) (*models.Comment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	topic, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      req.User,
		Content:   req.Content,
		CreatedAt: now,
	}

	topic.Comments = append(topic.Comments, comment)
	topic.UpdatedAt = now

	if err := s.repo.Save(ctx, topic); err != nil {
		return nil, err
	}
	return &comment, nil
}

// LikeComment increments a comment's like counter. Unlike topic likes
// there is no per-user tracking and no unlike path; the asymmetry is
// part of the contract.
func (s *topicService) LikeComment(ctx context.Context, topicID, commentID string) (*models.Comment, error) {
	oid, err := parseID(topicID)
	if err != nil {
		return nil, err
	}

	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		// A malformed comment id can never match an embedded comment
		return nil, ErrCommentNotFound
	}

	topic, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	var comment *models.Comment
	for i := range topic.Comments {
		if topic.Comments[i].ID == cid {
			comment = &topic.Comments[i]
			break
		}
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	comment.Likes++
	topic.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, topic); err != nil {
		return nil, err
	}

	result := *comment
	return &result, nil
}

// Stats returns collection-wide topic statistics
func (s *topicService) Stats(ctx context.Context) (*models.TopicStats, error) {
	return s.repo.Stats(ctx)
}

// Search matches the query against title, description and tags as a
// case-insensitive substring, newest first, without pagination
func (s *topicService) Search(ctx context.Context, query string) ([]*models.Topic, error) {
	return s.repo.Find(ctx,
		models.TopicFilter{Search: query},
		models.TopicListOptions{SortBy: "createdAt", Order: "desc"},
	)
}
