package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/port"
)

// BrandInput is the DTO for creating or replacing a brand.
type BrandInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	LogoID      *uuid.UUID `json:"logo_id"`
}

// BrandService defines the brand management contract.
type BrandService interface {
	Create(ctx context.Context, input BrandInput) (*domain.Brand, error)
	GetByID(ctx context.Context, brandID uuid.UUID) (*domain.Brand, error)
	List(ctx context.Context, offset, limit int) ([]domain.Brand, int, error)
	Update(ctx context.Context, brandID uuid.UUID, input BrandInput) (*domain.Brand, error)
	Delete(ctx context.Context, brandID uuid.UUID) error
}

type brandService struct {
	repo port.BrandRepository
	log  *zap.Logger
}

// NewBrandService creates a new BrandService implementation.
func NewBrandService(repo port.BrandRepository, log *zap.Logger) BrandService {
	return &brandService{repo: repo, log: log}
}

func (s *brandService) Create(ctx context.Context, input BrandInput) (*domain.Brand, error) {
	brand := &domain.Brand{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		LogoID:      input.LogoID,
	}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	s.log.Info("brand created", zap.String("brand_id", brand.ID.String()))
	return brand, nil
}

func (s *brandService) GetByID(ctx context.Context, brandID uuid.UUID) (*domain.Brand, error) {
	return s.repo.GetByID(ctx, brandID)
}

func (s *brandService) List(ctx context.Context, offset, limit int) ([]domain.Brand, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *brandService) Update(ctx context.Context, brandID uuid.UUID, input BrandInput) (*domain.Brand, error) {
	brand, err := s.repo.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	brand.Name = strings.TrimSpace(input.Name)
	brand.Description = input.Description
	brand.LogoID = input.LogoID
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Delete(ctx context.Context, brandID uuid.UUID) error {
	if err := s.repo.Delete(ctx, brandID); err != nil {
		return err
	}
	s.log.Info("brand deleted", zap.String("brand_id", brandID.String()))
	return nil
}
