package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventvault/backend/internal/app/controllers"
	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/middleware"
	"github.com/eventvault/backend/internal/pkg/websocket"
)

// LumaFunctionPath is the path existing frontends call for Luma sync
const LumaFunctionPath = "/functions/v1/luma-api-integration"

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Sync       *controllers.SyncController
	Event      *controllers.EventController
	File       *controllers.FileController
	Generation *controllers.GenerationController
	WebSocket  *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group. Auth is optional unless configured otherwise;
	// the middleware only identifies the caller.
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.JWTAuth())

	// --- Luma sync ---
	v1.POST("/luma/sync", c.Sync.Sync)
	router.POST(LumaFunctionPath, authMiddleware.JWTAuth(), c.Sync.Sync)

	// --- Events and participants ---
	events := v1.Group("/events")
	{
		events.POST("", c.Event.CreateEvent)
		events.GET("", c.Event.ListEvents)
		events.GET("/:id", c.Event.GetEvent)
		events.PUT("/:id", c.Event.UpdateEvent)
		events.DELETE("/:id", c.Event.DeleteEvent)

		events.GET("/:id/participants", c.Event.ListParticipants)
		events.PUT("/:id/participants/:participantId", c.Event.UpdateParticipant)

		// Media library
		events.POST("/:id/files", c.File.UploadFile)
		events.GET("/:id/files", c.File.ListFiles)
		events.DELETE("/:id/files/:fileId", c.File.DeleteFile)

		// Sync notices
		events.GET("/:id/ws", c.WebSocket.HandleConnection)
	}

	// --- Texel generation ---
	generate := v1.Group("/generate")
	{
		generate.GET("/presets", c.Generation.ListPresets)
		generate.POST("/image", c.Generation.GenerateImage)
		generate.POST("/video", c.Generation.GenerateVideo)
		generate.GET("/jobs/:jobId", c.Generation.GetJobStatus)
	}

	// Health check endpoint (public)
	router.GET("/api/v1/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
