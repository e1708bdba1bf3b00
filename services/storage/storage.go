package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"hoardify/models"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Media kinds accepted by the upload endpoint.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

// ErrUnsupportedMedia is returned for anything other than an image or a video.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// StorageService defines the interface for media storage operations.
type StorageService interface {
	// Upload stores the media under folder and returns its public URL.
	Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (*models.UploadResult, error)
	// Delete removes media by public ID.
	Delete(ctx context.Context, publicID, resourceType string) error
}

// CloudinaryUploader is the part of the Cloudinary upload API the service uses.
type CloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// StorageServiceImpl stores media on Cloudinary.
type StorageServiceImpl struct {
	api        CloudinaryUploader
	rootFolder string
	logger     *zap.Logger
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(api CloudinaryUploader, rootFolder string, logger *zap.Logger) StorageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageServiceImpl{api: api, rootFolder: rootFolder, logger: logger}
}

// ResourceType maps a MIME type to the Cloudinary resource type.
func ResourceType(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return ResourceImage, nil
	case strings.HasPrefix(ct, "video/"):
		return ResourceVideo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMedia, contentType)
}

// Upload uploads a file to Cloudinary into the specified folder.
func (s *StorageServiceImpl) Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (*models.UploadResult, error) {
	resourceType, err := ResourceType(contentType)
	if err != nil {
		return nil, err
	}

	dest := s.rootFolder
	if folder != "" {
		dest = path.Join(s.rootFolder, folder)
	}
	uploadParams := uploader.UploadParams{
		Folder:       dest,
		ResourceType: resourceType,
	}

	result, err := s.api.Upload(ctx, r, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("StorageServiceImpl: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" || result.SecureURL == "" {
		return nil, fmt.Errorf("StorageServiceImpl: no public ID returned")
	}

	s.logger.Info("Media uploaded", zap.String("file", filename), zap.String("publicID", result.PublicID), zap.String("resourceType", resourceType))
	return &models.UploadResult{
		URL:          result.SecureURL,
		PublicID:     result.PublicID,
		ResourceType: resourceType,
	}, nil
}

// Delete deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = ResourceImage
	}
	result, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	if result != nil && result.Result == "not found" {
		return fmt.Errorf("media %s: %w", publicID, models.ErrNotFound)
	}
	return nil
}
