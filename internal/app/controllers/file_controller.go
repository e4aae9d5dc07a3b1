package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/services"
	"github.com/eventvault/backend/internal/middleware"
)

// FileController handles media files of an event
type FileController struct {
	fileService   services.FileService
	maxUploadSize int64
}

// NewFileController creates a new FileController. Uploads larger than
// maxUploadSize bytes are rejected.
func NewFileController(fileService services.FileService, maxUploadSize int64) *FileController {
	return &FileController{
		fileService:   fileService,
		maxUploadSize: maxUploadSize,
	}
}

// UploadFile uploads a media file
// @Summary Upload a file to an event
// @Description Stores the file under the event's folder. The file type is derived from the MIME type.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Param file formData file true "File to upload"
// @Param folder formData string false "Folder name" default(general)
// @Param tags formData string false "Comma separated tags"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse} "File uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid file or folder"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/files [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").
			WithField("file").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if c.maxUploadSize > 0 && fileHeader.Size > c.maxUploadSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is too large").
			WithField("file").
			WithDetails(map[string]int64{"maxBytes": c.maxUploadSize, "size": fileHeader.Size})
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := c.fileService.UploadFile(ctx.Request.Context(), services.UploadInput{
		EventID: eventID,
		File:    fileHeader,
		Folder:  ctx.PostForm("folder"),
		Tags:    splitTags(ctx.PostForm("tags")),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewFileResponse(file, c.fileService.FileURL(file))))
}

// ListFiles lists the files of an event
// @Summary List event files
// @Description Lists completed uploads newest first, optionally filtered by type
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Param type query string false "File type" Enums(image, video, document)
// @Success 200 {object} dto.APIResponse{data=dto.FilesResponse} "Files retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID or type"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/files [get]
func (c *FileController) ListFiles(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var fileType *models.FileType
	if t := ctx.Query("type"); t != "" {
		ft := models.FileType(t)
		fileType = &ft
	}

	files, err := c.fileService.ListFiles(ctx.Request.Context(), eventID, fileType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.FilesResponse{Files: make([]dto.FileResponse, 0, len(files))}
	for _, f := range files {
		resp.Files = append(resp.Files, dto.NewFileResponse(f, c.fileService.FileURL(f)))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteFile deletes a file
// @Summary Delete an event file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" Format(uuid)
// @Param fileId path string true "File ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "File deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/files/{fileId} [delete]
func (c *FileController) DeleteFile(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	fileID, ok := parseUUIDParam(ctx, "fileId")
	if !ok {
		return
	}

	if err := c.fileService.DeleteFile(ctx.Request.Context(), eventID, fileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "File deleted successfully"}))
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
