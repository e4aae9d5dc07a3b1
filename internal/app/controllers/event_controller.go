package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/services"
	"github.com/eventvault/backend/internal/middleware"
	"github.com/eventvault/backend/internal/pkg/auth"
	"github.com/eventvault/backend/internal/pkg/helpers"
)

// EventController handles event and participant endpoints
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// CreateEvent handles event creation
// @Summary Create a new event
// @Description Creates an event owned by the caller
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// ListEvents lists events
// @Summary List events
// @Description Lists events newest first. mine=true restricts the list to events organized by the caller.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param mine query bool false "Only my events"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	reqCtx := ctx.Request.Context()
	var organizerFilter *uuid.UUID
	if ctx.Query("mine") == "true" {
		if id, ok := auth.UserIDFromContext(reqCtx); ok {
			organizerFilter = &id
		}
	}

	events, total, err := c.eventService.ListEvents(reqCtx, organizerFilter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EventListResponse{
		Events:     events,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}))
}

// GetEvent retrieves an event by ID
// @Summary Get event details
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEvent updates an event
// @Summary Update an event
// @Description Updates the fields present in the body
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent deletes an event
// @Summary Delete an event
// @Description Deletes an event with its participants and file records
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event deleted successfully"}))
}

// ListParticipants lists the participants of an event
// @Summary List event participants
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantListResponse} "Participants retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants [get]
func (c *EventController) ListParticipants(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	participants, err := c.eventService.ListParticipants(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ParticipantListResponse{
		Participants: participants,
		Total:        len(participants),
	}))
}

// UpdateParticipant changes a participant's role and permissions
// @Summary Update a participant
// @Description Assigns a role by hand. Imported participants keep it across later guest syncs.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Param participantId path string true "Participant ID" Format(uuid)
// @Param request body dto.UpdateParticipantRequest true "Role and permissions"
// @Success 200 {object} dto.APIResponse{data=models.Participant} "Participant updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants/{participantId} [put]
func (c *EventController) UpdateParticipant(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	participantID, ok := parseUUIDParam(ctx, "participantId")
	if !ok {
		return
	}

	var req dto.UpdateParticipantRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	participant, err := c.eventService.UpdateParticipant(ctx.Request.Context(), eventID, participantID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participant))
}
