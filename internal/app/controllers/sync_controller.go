package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/services"
	"github.com/eventvault/backend/internal/middleware"
	"github.com/eventvault/backend/internal/pkg/metrics"
)

// SyncController serves the Luma sync endpoint
type SyncController struct {
	syncService services.SyncService
	logger      zerolog.Logger
}

// NewSyncController creates a new SyncController
func NewSyncController(syncService services.SyncService, logger zerolog.Logger) *SyncController {
	return &SyncController{
		syncService: syncService,
		logger:      logger,
	}
}

// Sync runs one sync action
// @Summary Sync an event or its guests from Luma
// @Description Action "sync_event" imports or refreshes the event. Action "sync_guests" upserts its guest list.
// @Description eventId is an event UUID, or "new" (or any value containing "demo") to resolve the event by lumaEventId.
// @Tags luma
// @Accept json
// @Produce json
// @Param request body dto.SyncRequest true "Sync request"
// @Success 200 {object} dto.SyncResponse "Sync succeeded"
// @Failure 400 {object} dto.SyncResponse "Invalid action or lumaEventId"
// @Failure 404 {object} dto.SyncResponse "Event not found"
// @Failure 409 {object} dto.SyncResponse "Luma event linked to another event"
// @Failure 500 {object} dto.SyncResponse "Database error"
// @Failure 502 {object} dto.SyncResponse "Luma API error"
// @Router /luma/sync [post]
func (c *SyncController) Sync(ctx *gin.Context) {
	var req dto.SyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewSyncErrorResponse("Invalid request body: "+err.Error()))
		return
	}

	switch req.Action {
	case dto.SyncActionEvent:
		result, err := c.syncService.SyncEvent(ctx.Request.Context(), req.EventID, req.LumaEventID)
		if err != nil {
			c.fail(ctx, req, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.SyncResponse{
			Success: true,
			EventID: result.EventID.String(),
			Message: result.Message,
			Data:    dto.NewSyncedEventData(result.Event),
		})

	case dto.SyncActionGuests:
		count, err := c.syncService.SyncGuests(ctx.Request.Context(), req.EventID, req.LumaEventID)
		if err != nil {
			c.fail(ctx, req, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.SyncResponse{Success: true, Count: &count})

	default:
		metrics.RecordSync("unknown", metrics.OutcomeFailure)
		ctx.JSON(http.StatusBadRequest, dto.NewSyncErrorResponse("Invalid action"))
	}
}

func (c *SyncController) fail(ctx *gin.Context, req dto.SyncRequest, err error) {
	status := middleware.ErrorStatus(err)

	var syncErr *services.SyncError
	if errors.As(err, &syncErr) {
		status = http.StatusBadGateway
	}

	c.logger.Error().
		Err(err).
		Str("action", req.Action).
		Str("eventId", req.EventID).
		Str("lumaEventId", req.LumaEventID).
		Int("status", status).
		Msg("Luma sync failed")

	ctx.JSON(status, dto.NewSyncErrorResponse(err.Error()))
}
