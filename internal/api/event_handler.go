package api

import (
	"errors"
	"net/http"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EventHandler handles event endpoints. Event responses are bare
// bodies without the success envelope; that inconsistency is part of
// the published contract.
type EventHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(services *service.Services, log zerolog.Logger) *EventHandler {
	return &EventHandler{
		services: services,
		log:      log.With().Str("handler", "events").Logger(),
	}
}

// Create handles POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Description == "" || req.EventDate == nil || req.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields."})
		return
	}

	event, err := h.services.Event.Create(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while creating event."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": event})
}

// List handles GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.services.Event.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while fetching events."})
		return
	}

	c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.services.Event.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event ID format."})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		default:
			h.log.Error().Err(err).Msg("Failed to fetch event")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while fetching event."})
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// Update handles PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	event, err := h.services.Event.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event ID format."})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		default:
			h.log.Error().Err(err).Msg("Failed to update event")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while updating event."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "event": event})
}

// Delete handles DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	err := h.services.Event.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event ID format."})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		default:
			h.log.Error().Err(err).Msg("Failed to delete event")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while deleting event."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
