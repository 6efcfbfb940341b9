package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kendall-kelly/table-orders-api/utils"
)

// ImageService handles menu item photos: upload, URL resolution and deletion
type ImageService interface {
	// UploadMenuImage validates and stores a photo for the menu item, returning its storage key
	UploadMenuImage(ctx context.Context, menuID uint, fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL returns a URL the client can fetch the image from
	GetImageURL(ctx context.Context, imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(ctx context.Context, imageKey string) error
}

// S3ImageService implements ImageService on top of an S3 bucket
type S3ImageService struct {
	storage S3Interface
}

// NewS3ImageService creates an image service backed by storage
func NewS3ImageService(storage S3Interface) *S3ImageService {
	return &S3ImageService{storage: storage}
}

// MenuImageKey returns the storage key for a new photo of the menu item
func MenuImageKey(menuID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("menu-items/%d/%s%s", menuID, uuid.NewString(), ext)
}

// UploadMenuImage validates the file and uploads it to S3
func (s *S3ImageService) UploadMenuImage(ctx context.Context, menuID uint, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	key := MenuImageKey(menuID, fileHeader.Filename)
	if err := s.storage.PutObject(ctx, key, utils.ImageContentType(fileHeader.Filename), file); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, nil
}

// GetImageURL generates a presigned URL for an image
func (s *S3ImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.storage.GetPresignedURL(ctx, imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(ctx context.Context, imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.storage.DeleteObject(ctx, imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
