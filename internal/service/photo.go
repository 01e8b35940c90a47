package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/masspath/masspath/backend/internal/types"
)

// PhotoURLExpiry is the lifetime of presigned photo URLs
const PhotoURLExpiry = 15 * time.Minute

// Presigner creates presigned object URLs. config.S3Config implements it.
type Presigner interface {
	PresignPut(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// PhotoStore hands out presigned URLs for meal photos
type PhotoStore struct {
	presigner Presigner
}

var _ IPhotoStore = (*PhotoStore)(nil)

// NewPhotoStore creates a PhotoStore. A nil presigner disables photos.
func NewPhotoStore(presigner Presigner) *PhotoStore {
	return &PhotoStore{presigner: presigner}
}

// PhotoKey is the object key of a meal's photo
func PhotoKey(userID string, mealID uuid.UUID) string {
	return fmt.Sprintf("meals/%s/%s.jpg", userID, mealID)
}

// PresignUpload implements IPhotoStore
func (s *PhotoStore) PresignUpload(ctx context.Context, userID string, mealID uuid.UUID) (*types.PhotoUploadResponse, error) {
	if s.presigner == nil {
		return nil, ErrPhotosDisabled
	}
	key := PhotoKey(userID, mealID)
	url, err := s.presigner.PresignPut(ctx, key, "image/jpeg", PhotoURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign photo upload: %w", err)
	}
	return &types.PhotoUploadResponse{
		UploadURL: url,
		Key:       key,
		ExpiresIn: int(PhotoURLExpiry.Seconds()),
	}, nil
}

// PresignDownload implements IPhotoStore
func (s *PhotoStore) PresignDownload(ctx context.Context, key string) (string, error) {
	if s.presigner == nil {
		return "", ErrPhotosDisabled
	}
	url, err := s.presigner.GeneratePresignedURL(ctx, key, PhotoURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign photo download: %w", err)
	}
	return url, nil
}
