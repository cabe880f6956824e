package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/port"
	"backoffice/internal/pricing"
)

// CampaignInput is the DTO for creating or replacing a campaign.
type CampaignInput struct {
	Name               string      `json:"name" binding:"required"`
	Description        string      `json:"description"`
	DiscountPercentage string      `json:"discount_percentage" binding:"required,money"`
	StartDate          time.Time   `json:"start_date" binding:"required"`
	EndDate            time.Time   `json:"end_date" binding:"required"`
	IsActive           *bool       `json:"is_active"`
	ProductIDs         []uuid.UUID `json:"product_ids"`
}

var hundredPercent = decimal.NewFromInt(100)

// CampaignService defines the campaign management contract.
type CampaignService interface {
	Create(ctx context.Context, input CampaignInput) (*domain.Campaign, error)
	GetByID(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error)
	List(ctx context.Context, offset, limit int) ([]domain.Campaign, int, error)
	Update(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, input CampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, campaignID uuid.UUID) error
}

type campaignService struct {
	repo port.CampaignRepository
	log  *zap.Logger
}

// NewCampaignService creates a new CampaignService implementation.
func NewCampaignService(repo port.CampaignRepository, log *zap.Logger) CampaignService {
	return &campaignService{repo: repo, log: log}
}

func validateCampaign(input CampaignInput) error {
	if !pricing.ValidAmount(input.DiscountPercentage) {
		return domain.ErrInvalidAmount
	}
	if pricing.ParseAmount(input.DiscountPercentage).GreaterThan(hundredPercent) {
		return domain.ErrInvalidAmount
	}
	if input.EndDate.Before(input.StartDate) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func (s *campaignService) Create(ctx context.Context, input CampaignInput) (*domain.Campaign, error) {
	if err := validateCampaign(input); err != nil {
		return nil, err
	}
	campaign := &domain.Campaign{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		DiscountPercentage: pricing.FormatAmount(pricing.ParseAmount(input.DiscountPercentage)),
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		IsActive:           true,
		ProductIDs:         input.ProductIDs,
	}
	if input.IsActive != nil {
		campaign.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	s.log.Info("campaign created", zap.String("campaign_id", campaign.ID.String()))
	return campaign, nil
}

func (s *campaignService) GetByID(ctx context.Context, campaignID uuid.UUID) (*domain.Campaign, error) {
	return s.repo.GetByID(ctx, campaignID)
}

func (s *campaignService) List(ctx context.Context, offset, limit int) ([]domain.Campaign, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *campaignService) Update(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, input CampaignInput) (*domain.Campaign, error) {
	if err := validateCampaign(input); err != nil {
		return nil, err
	}
	campaign, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if input.IsActive != nil && *input.IsActive != campaign.IsActive && !actor.Can(domain.CapToggleActive) {
		return nil, domain.ErrForbidden
	}

	campaign.Name = strings.TrimSpace(input.Name)
	campaign.Description = input.Description
	campaign.DiscountPercentage = pricing.FormatAmount(pricing.ParseAmount(input.DiscountPercentage))
	campaign.StartDate = input.StartDate
	campaign.EndDate = input.EndDate
	campaign.ProductIDs = input.ProductIDs
	if input.IsActive != nil {
		campaign.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) Delete(ctx context.Context, campaignID uuid.UUID) error {
	if err := s.repo.Delete(ctx, campaignID); err != nil {
		return err
	}
	s.log.Info("campaign deleted", zap.String("campaign_id", campaignID.String()))
	return nil
}
