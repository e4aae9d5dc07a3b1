package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/services"
	"github.com/eventvault/backend/internal/middleware"
)

// GenerationController proxies AI image and video generation
type GenerationController struct {
	generationService services.GenerationService
}

// NewGenerationController creates a new GenerationController
func NewGenerationController(generationService services.GenerationService) *GenerationController {
	return &GenerationController{
		generationService: generationService,
	}
}

// GenerateImage generates an image
// @Summary Generate an image
// @Description Generates an image from a prompt or a preset. Temporary failures are retried with backoff.
// @Tags generation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateImageRequest true "Generation request"
// @Success 200 {object} dto.APIResponse{data=texel.ImageResult} "Image generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 502 {object} dto.ErrorResponse "Texel API error"
// @Failure 503 {object} dto.ErrorResponse "Texel API key not configured"
// @Router /generate/image [post]
func (c *GenerationController) GenerateImage(ctx *gin.Context) {
	var req dto.GenerateImageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.generationService.GenerateImage(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GenerateVideo submits a video generation
// @Summary Generate a video
// @Description Queues a video generation. Poll the returned job id.
// @Tags generation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateVideoRequest true "Generation request"
// @Success 202 {object} dto.APIResponse{data=texel.VideoResult} "Video queued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 502 {object} dto.ErrorResponse "Texel API error"
// @Failure 503 {object} dto.ErrorResponse "Texel API key not configured"
// @Router /generate/video [post]
func (c *GenerationController) GenerateVideo(ctx *gin.Context) {
	var req dto.GenerateVideoRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.generationService.GenerateVideo(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse(result))
}

// GetJobStatus returns the status of a generation job
// @Summary Get generation job status
// @Tags generation
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} dto.APIResponse{data=texel.JobStatus} "Job status"
// @Failure 502 {object} dto.ErrorResponse "Texel API error"
// @Failure 503 {object} dto.ErrorResponse "Texel API key not configured"
// @Router /generate/jobs/{jobId} [get]
func (c *GenerationController) GetJobStatus(ctx *gin.Context) {
	status, err := c.generationService.GetJobStatus(ctx.Request.Context(), ctx.Param("jobId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// ListPresets lists the prompt presets
// @Summary List generation presets
// @Tags generation
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]texel.Preset} "Presets"
// @Router /generate/presets [get]
func (c *GenerationController) ListPresets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.generationService.Presets()))
}
