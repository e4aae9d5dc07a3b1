package websocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/repositories"
)

// EventLookup finds events. *repositories.EventRepository implements it.
type EventLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub    *Hub
	events EventLookup
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, events EventLookup, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		events: events,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to sync notices of an event
// @Description Upgrades the connection to a WebSocket that receives "event_synced" and "guests_synced" notices
// @Tags events, websocket
// @Param id path string true "Event ID" Format(uuid)
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal Server Error"
// @Router /events/{id}/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID").WithField("id")))
		return
	}

	if _, err := h.events.GetByID(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")))
			return
		}
		h.logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Failed to look up event")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		eventID: eventID,
		logger:  h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("eventID", eventID.String()).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket subscriber connected")
}
