package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topic field limits
const (
	MaxTitleLength = 200
	MaxTags        = 10
)

// Defaults applied at creation time
const (
	DefaultTopicType = "Conversation"
	DefaultAuthor    = "Anonymous"
)

// AllTopicsSentinel is the category value that means "no category filter"
const AllTopicsSentinel = "All Topics"

// ValidCategories defines the allowed topic categories
var ValidCategories = map[string]bool{
	"Announcements":     true,
	"Recipe Requests":   true,
	"Food Delivery":     true,
	"Reviews":           true,
	"Cooking Tips":      true,
	"Kitchen Equipment": true,
	"Meal Planning":     true,
	"Special Diets":     true,
}

// ValidTopicTypes defines the allowed topic types
var ValidTopicTypes = map[string]bool{
	"Question":     true,
	"Conversation": true,
	"Tip":          true,
	"Recipe":       true,
	"Review":       true,
	"Discussion":   true,
}

// ValidTopicStatuses defines the allowed topic statuses
var ValidTopicStatuses = map[string]bool{
	"active":   true,
	"closed":   true,
	"archived": true,
}

// ValidAttachmentTypes defines the allowed attachment variants
var ValidAttachmentTypes = map[string]bool{
	"none":  true,
	"image": true,
	"video": true,
	"link":  true,
}

// ValidSortFields defines the sort keys accepted by topic listing.
// Anything else silently falls back to createdAt descending.
var ValidSortFields = map[string]bool{
	"createdAt":       true,
	"updatedAt":       true,
	"likes":           true,
	"views":           true,
	"comments.length": true,
}

// Comment is owned by exactly one Topic and is only addressable
// through its parent document.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      string             `bson:"user" json:"user"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Likes     int                `bson:"likes" json:"likes"`
}

// Attachment is a tagged variant: the Type discriminant selects which
// of the optional fields are meaningful.
type Attachment struct {
	Type      string `bson:"type" json:"type"`
	URL       string `bson:"url,omitempty" json:"url,omitempty"`
	Thumbnail string `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
}

// Topic is a discussion unit. Comments are embedded, so topic and
// comments always persist as a single document.
// Invariant: Likes == len(LikedBy) and len(Tags) <= MaxTags.
type Topic struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags" json:"tags"`
	Type        string             `bson:"type" json:"type"`
	Author      string             `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	Likes       int                `bson:"likes" json:"likes"`
	Views       int                `bson:"views" json:"views"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	LikedBy     []string           `bson:"likedBy" json:"likedBy"`
	Status      string             `bson:"status" json:"status"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	Attachment  Attachment         `bson:"attachment" json:"attachment"`
}

// TopicCreateRequest is the payload for POST /api/topics
type TopicCreateRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Type        string      `json:"type"`
	Tags        []string    `json:"tags"`
	Author      string      `json:"author"`
	Attachment  *Attachment `json:"attachment"`
}

// TopicUpdateRequest is the payload for PUT /api/topics/:id.
// Title, description, category and type are all required; the rest
// apply only when present.
type TopicUpdateRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Type        string      `json:"type"`
	Tags        []string    `json:"tags"`
	Status      string      `json:"status"`
	Attachment  *Attachment `json:"attachment"`
}

// TopicUpdate carries the fields a topic update writes to storage.
// Nil/empty optional fields are skipped.
type TopicUpdate struct {
	Title       string
	Description string
	Category    string
	Type        string
	Tags        []string
	Status      string
	Attachment  *Attachment
	UpdatedAt   time.Time
}

// TopicFilter enumerates the recognized listing filters
type TopicFilter struct {
	Category string
	Type     string
	Search   string
	Tags     []string
}

// TopicListOptions enumerates the recognized sort/pagination options
type TopicListOptions struct {
	SortBy string
	Order  string
	Page   int
	Limit  int
}

// Pagination is the listing metadata block
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// LikeRequest is the payload for like endpoints
type LikeRequest struct {
	UserID string `json:"userId"`
}

// LikeResult reports the like state from the acting user's perspective
type LikeResult struct {
	Likes    int  `json:"likes"`
	HasLiked bool `json:"hasLiked"`
}

// CommentRequest is the payload for POST /api/topics/:id/comments
type CommentRequest struct {
	User    string `json:"user"`
	Content string `json:"content"`
}

// TopicStats is the summary returned by GET /api/topics/stats/summary
type TopicStats struct {
	TotalTopics     int64  `json:"totalTopics"`
	TotalComments   int64  `json:"totalComments"`
	PopularCategory string `json:"popularCategory"`
}
