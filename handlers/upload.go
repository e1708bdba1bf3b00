package handlers

import (
	"errors"
	"net/http"

	"hoardify/models"
	"hoardify/services/storage"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadSize = 50 << 20

// allowedFolders defines the media destinations the admin screens upload to.
var allowedFolders = map[string]bool{
	"hero":      true,
	"hoardings": true,
	"workers":   true,
}

// UploadHandler accepts media uploads for hero slides, hoardings and workers.
type UploadHandler struct {
	Storage storage.StorageService
}

func NewUploadHandler(svc storage.StorageService) *UploadHandler {
	return &UploadHandler{Storage: svc}
}

// UploadFileHandler handles POST /api/admin/uploads/:folder with a multipart "file" field.
func (h *UploadHandler) UploadFileHandler(c *gin.Context) {
	folder := c.Param("folder")
	if !allowedFolders[folder] {
		utils.JSONError(c, http.StatusBadRequest, "Invalid upload folder", "allowed values are hero, hoardings and workers")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "File not provided", err.Error())
		return
	}
	if fileHeader.Size > maxUploadSize {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large", "maximum upload size is 50 MB")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read file", err.Error())
		return
	}
	defer f.Close()

	res, err := h.Storage.Upload(c.Request.Context(), f, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), folder)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedMedia) {
			utils.JSONError(c, http.StatusUnsupportedMediaType, "Unsupported media type", "only images and videos can be uploaded")
			return
		}
		getLogger(c).Error("Upload failed", zap.String("folder", folder), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to upload file", "The upload could not be completed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteFileHandler handles DELETE /api/admin/uploads?publicId=&resourceType=.
func (h *UploadHandler) DeleteFileHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing publicId", "")
		return
	}
	rt := c.DefaultQuery("resourceType", storage.ResourceImage)
	if err := h.Storage.Delete(c.Request.Context(), publicID, rt); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(c, "Failed to delete file", err)
			return
		}
		getLogger(c).Error("Media delete failed", zap.String("publicId", publicID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to delete file", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
