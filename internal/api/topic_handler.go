package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/service"
	"github.com/community-forum-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(services *service.Services, log zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		services: services,
		log:      log.With().Str("handler", "topics").Logger(),
	}
}

// Create handles POST /api/topics
func (h *TopicHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.TopicCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Description == "" || req.Category == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields (title, description, category, type) are required.",
		})
		return
	}

	topic, err := h.services.Topic.Create(ctx, &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Validation error",
				"errors":  verrs.Messages(),
			})
			return
		}
		h.log.Error().Err(err).Msg("Failed to create topic")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while creating topic.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Topic created successfully",
		"data":    topic,
	})
}

// List handles GET /api/topics
func (h *TopicHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := models.TopicFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	opts := models.TopicListOptions{
		SortBy: c.DefaultQuery("sortBy", "createdAt"),
		Order:  c.DefaultQuery("order", "desc"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	topics, pagination, err := h.services.Topic.List(ctx, filter, opts)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch topics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while fetching topics.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       topics,
		"pagination": pagination,
	})
}

// Featured handles GET /api/topics/featured
func (h *TopicHandler) Featured(c *gin.Context) {
	topics, err := h.services.Topic.Featured(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch featured topics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while fetching featured topics.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": topics})
}

// Trending handles GET /api/topics/trending
func (h *TopicHandler) Trending(c *gin.Context) {
	topics, err := h.services.Topic.Trending(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch trending topics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while fetching trending topics.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": topics})
}

// Get handles GET /api/topics/:id
func (h *TopicHandler) Get(c *gin.Context) {
	topic, err := h.services.Topic.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid topic ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Topic not found.",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to fetch topic")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error while fetching topic.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": topic})
}

// Update handles PUT /api/topics/:id
func (h *TopicHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.TopicUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Description == "" || req.Category == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields (title, description, category, type) are required.",
		})
		return
	}

	topic, err := h.services.Topic.Update(ctx, c.Param("id"), &req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Validation error",
				"errors":  verrs.Messages(),
			})
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid topic ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Topic not found.",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to update topic")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error while updating topic.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Topic updated successfully",
		"data":    topic,
	})
}

// Delete handles DELETE /api/topics/:id
func (h *TopicHandler) Delete(c *gin.Context) {
	err := h.services.Topic.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid topic ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Topic not found.",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to delete topic")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error while deleting topic.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Topic deleted successfully",
	})
}

// Like handles POST /api/topics/:id/like
func (h *TopicHandler) Like(c *gin.Context) {
	var req models.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User ID is required.",
		})
		return
	}

	result, err := h.services.Topic.ToggleLike(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid topic ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Topic not found.",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to like topic")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error while liking topic.",
			})
		}
		return
	}

	message := "Topic unliked successfully"
	if result.HasLiked {
		message = "Topic liked successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    result,
	})
}

// AddComment handles POST /api/topics/:id/comments
func (h *TopicHandler) AddComment(c *gin.Context) {
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.User == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User and content are required for comments.",
		})
		return
	}

	comment, err := h.services.Topic.AddComment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid topic ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Topic not found.",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to add comment")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error while adding comment.",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"data":    comment,
	})
}

// LikeComment handles POST /api/topics/:id/comments/:commentId/like
func (h *TopicHandler) LikeComment(c *gin.Context) {
	var req models.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User ID is required.",
		})
		return
	}

	comment, err := h.services.Topic.LikeComment(c.Request.Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid topic ID format.",
			})
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Comment not found.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Topic not found.",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to like comment")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error while liking comment.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment liked successfully",
		"data":    comment,
	})
}

// Stats handles GET /api/topics/stats/summary
func (h *TopicHandler) Stats(c *gin.Context) {
	stats, err := h.services.Topic.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch statistics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while fetching statistics.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// Search handles GET /api/topics/search/:query
func (h *TopicHandler) Search(c *gin.Context) {
	topics, err := h.services.Topic.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to search topics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while searching topics.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": topics})
}

// queryInt parses an integer query parameter, falling back to the
// default on anything unparseable
func queryInt(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
