package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// FileController proxies uploads and downloads to object storage
type FileController struct {
	fileService *services.FileService
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// Upload stores a multipart file and returns its storage key
// @Summary Upload a file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param prefix formData string false "Storage prefix" default(uploads)
// @Success 201 {object} dto.APIResponse{data=dto.FileUploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 413 {object} dto.ErrorResponse "File exceeds the size limit"
// @Router /files [post]
func (c *FileController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("file field is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrStorageFailure)
		return
	}
	defer src.Close()

	prefix := ctx.DefaultPostForm("prefix", "uploads")
	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := c.fileService.Upload(ctx, prefix, fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "File stored"))
}

// Download redirects to a short-lived presigned URL for a stored object.
// Pass redirect=false to receive the URL as JSON instead.
// @Summary Download a file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param key query string true "Storage key"
// @Param redirect query bool false "Redirect to the presigned URL" default(true)
// @Success 302 "Redirect to the presigned URL"
// @Success 200 {object} dto.APIResponse{data=dto.FileDownloadResponse} "Presigned URL"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/download [get]
func (c *FileController) Download(ctx *gin.Context) {
	key := ctx.Query("key")
	if key == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("key is required"))
		return
	}
	resp, err := c.fileService.DownloadURL(ctx, key)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if ctx.DefaultQuery("redirect", "true") == "true" {
		ctx.Redirect(http.StatusFound, resp.URL)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Delete removes a stored object
// @Summary Delete a file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param key query string true "Storage key"
// @Success 200 {object} dto.APIResponse "File deleted"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files [delete]
func (c *FileController) Delete(ctx *gin.Context) {
	key := ctx.Query("key")
	if key == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("key is required"))
		return
	}
	if err := c.fileService.Delete(ctx, key); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "File deleted"))
}
