package api

import (
	"errors"
	"net/http"

	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/service"
	"github.com/community-forum-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TicketHandler handles support ticket endpoints
type TicketHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(services *service.Services, log zerolog.Logger) *TicketHandler {
	return &TicketHandler{
		services: services,
		log:      log.With().Str("handler", "tickets").Logger(),
	}
}

// Create handles POST /api/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req models.TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Subject == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Subject and description are required",
		})
		return
	}

	ticket, err := h.services.Ticket.Create(c.Request.Context(), &req)
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
		h.log.Error().Err(err).Msg("Failed to create ticket")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error while creating ticket",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ticket created successfully",
		"data":    ticket,
	})
}

// List handles GET /api/tickets
func (h *TicketHandler) List(c *gin.Context) {
	filter := models.TicketFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}
	opts := models.TicketListOptions{
		SortBy: c.DefaultQuery("sortBy", "createdAt"),
		Order:  c.DefaultQuery("order", "desc"),
	}

	tickets, err := h.services.Ticket.List(c.Request.Context(), filter, opts)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch tickets")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error while fetching tickets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tickets,
		"count":   len(tickets),
	})
}

// Get handles GET /api/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.services.Ticket.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid ticket ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Ticket not found",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to fetch ticket")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error while fetching ticket",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": ticket})
}

// Update handles PUT /api/tickets/:id
func (h *TicketHandler) Update(c *gin.Context) {
	var req models.TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	ticket, err := h.services.Ticket.Update(c.Request.Context(), c.Param("id"), &req)
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
				"message": "Invalid ticket ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Ticket not found",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to update ticket")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error while updating ticket",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ticket updated successfully",
		"data":    ticket,
	})
}

// Delete handles DELETE /api/tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	err := h.services.Ticket.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid ticket ID format.",
			})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Ticket not found",
			})
		default:
			h.log.Error().Err(err).Msg("Failed to delete ticket")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error while deleting ticket",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ticket deleted successfully",
	})
}

// Stats handles GET /api/tickets/stats/summary
func (h *TicketHandler) Stats(c *gin.Context) {
	stats, err := h.services.Ticket.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch ticket stats")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error while fetching ticket statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
