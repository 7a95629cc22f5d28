package services

import (
	"fmt"
	"mime/multipart"

	"github.com/tablebird/tablebird-console/utils"
)

// MediaService handles restaurant media (logo, menu photos): upload,
// retrieval and deletion.
type MediaService interface {
	// UploadImage validates and stores an image, returning its storage key.
	UploadImage(fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL generates a URL for accessing a stored image.
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage.
	DeleteImage(imageKey string) error
}

// S3MediaService implements MediaService on S3.
type S3MediaService struct {
	s3Service S3Interface
}

var mediaServiceInstance MediaService

// InitMediaService initializes the media service with the S3 backend
func InitMediaService(s3Service S3Interface) MediaService {
	mediaServiceInstance = &S3MediaService{s3Service: s3Service}
	return mediaServiceInstance
}

// GetMediaService returns the initialized media service instance
func GetMediaService() MediaService {
	return mediaServiceInstance
}

// SetMediaService sets the media service instance (primarily for testing)
func SetMediaService(service MediaService) {
	mediaServiceInstance = service
}

// UploadImage validates the file and stores it in S3
func (s *S3MediaService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, nil
}

// GetImageURL returns a presigned URL for the stored image
func (s *S3MediaService) GetImageURL(imageKey string) (string, error) {
	return s.s3Service.GetPresignedURL(imageKey)
}

// DeleteImage removes the stored image
func (s *S3MediaService) DeleteImage(imageKey string) error {
	return s.s3Service.DeleteFile(imageKey)
}
