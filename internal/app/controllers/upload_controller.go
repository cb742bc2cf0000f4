package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/middleware"
	"github.com/educompact/school-records/internal/pkg/filestorage"
)

// UploadController handles document upload and deletion
type UploadController struct {
	storage filestorage.FileStorage
}

// NewUploadController creates a new UploadController
func NewUploadController(storage filestorage.FileStorage) *UploadController {
	return &UploadController{storage: storage}
}

// UploadFile stores a document attachment
// @Summary Upload a file
// @Description Stores a pdf/jpg/jpeg/png document (max 10MB) under the students or staff folder
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document to upload"
// @Param folder formData string true "Target folder: students or staff"
// @Success 200 {object} dto.UploadResponse "File uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing file, bad folder, bad extension or file too large"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /upload [post]
func (c *UploadController) UploadFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No file provided"})
		return
	}

	folder := ctx.PostForm("folder")
	if folder == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No folder specified"})
		return
	}

	filePath, err := c.storage.SaveFile(fileHeader, folder)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadResponse{
		FilePath: filePath,
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
		Message:  "File uploaded successfully",
	})
}

// DeleteFile removes a previously uploaded document
// @Summary Delete a file
// @Description Removes an uploaded document by its public path; a missing file counts as deleted
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteFileRequest true "Public path of the file"
// @Success 200 {object} dto.MessageResponse "File deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /upload [delete]
func (c *UploadController) DeleteFile(ctx *gin.Context) {
	var req dto.DeleteFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No file path provided", Details: err.Error()})
		return
	}

	if err := c.storage.DeleteFile(req.FilePath); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "File deleted successfully"})
}
