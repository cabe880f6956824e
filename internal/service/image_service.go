package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/port"
)

// ImageUploadInput is the DTO for image upload requests.
type ImageUploadInput struct {
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// ImageService defines the image management contract.
type ImageService interface {
	Upload(ctx context.Context, input ImageUploadInput) (*domain.Image, error)
	GetByID(ctx context.Context, imageID uuid.UUID) (*domain.Image, error)
	List(ctx context.Context, offset, limit int) ([]domain.Image, int, error)
	GetDownloadURL(ctx context.Context, imageID uuid.UUID) (string, error)
	Delete(ctx context.Context, imageID uuid.UUID) error
}

type imageService struct {
	repo    port.ImageRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
	log     *zap.Logger
}

// NewImageService creates a new ImageService implementation.
func NewImageService(
	repo port.ImageRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *zap.Logger,
) ImageService {
	return &imageService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		log:     log,
	}
}

func (s *imageService) Upload(ctx context.Context, input ImageUploadInput) (*domain.Image, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	contentType, ok := domain.AllowedImageExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// magic-byte check, the extension alone is not trusted
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if !domain.AllowedImageContentTypes[http.DetectContentType(buf[:n])] {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	imageID := uuid.New()
	fileName := imageID.String() + "." + ext
	image := &domain.Image{
		ID:           imageID,
		UploadedBy:   input.UploadedBy,
		FileName:     fileName,
		OriginalName: input.Header.Filename,
		ContentType:  contentType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        "images/" + fileName,
		Status:       domain.ImageStatusPending,
	}

	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("creating image metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      image.S3Bucket,
		Key:         image.S3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		s.log.Error("image upload failed", zap.String("image_id", imageID.String()), zap.Error(err))
		if serr := s.repo.UpdateStatus(ctx, imageID, domain.ImageStatusFailed); serr != nil {
			s.log.Warn("marking image failed", zap.String("image_id", imageID.String()), zap.Error(serr))
		}
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.UpdateStatus(ctx, imageID, domain.ImageStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating image status: %w", err)
	}
	image.Status = domain.ImageStatusUploaded

	s.log.Info("image uploaded",
		zap.String("image_id", imageID.String()),
		zap.String("content_type", contentType),
		zap.Int64("size", image.FileSize),
	)
	return image, nil
}

func (s *imageService) GetByID(ctx context.Context, imageID uuid.UUID) (*domain.Image, error) {
	return s.repo.GetByID(ctx, imageID)
}

func (s *imageService) List(ctx context.Context, offset, limit int) ([]domain.Image, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *imageService) GetDownloadURL(ctx context.Context, imageID uuid.UUID) (string, error) {
	image, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, image.S3Bucket, image.S3Key, s.cfg.PresignExpiry)
}

func (s *imageService) Delete(ctx context.Context, imageID uuid.UUID) error {
	image, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, image.S3Bucket, image.S3Key); err != nil {
		return fmt.Errorf("deleting from storage: %w", err)
	}
	if err := s.repo.Delete(ctx, imageID); err != nil {
		return err
	}
	s.log.Info("image deleted", zap.String("image_id", imageID.String()))
	return nil
}
