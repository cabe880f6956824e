package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/service"
	"backoffice/mocks"
)

func TestCampaignService_Create(t *testing.T) {
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tests := []struct {
		name     string
		discount string
		start    time.Time
		end      time.Time
		wantErr  error
	}{
		{"valid comma discount", "12,5", start, end, nil},
		{"end before start", "10", end, start, domain.ErrInvalidDateRange},
		{"malformed discount", "tien", start, end, domain.ErrInvalidAmount},
		{"discount above 100", "150", start, end, domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCampaignRepo)
			svc := service.NewCampaignService(repo, zap.NewNop())
			repo.On("Create", mock.Anything, mock.Anything).Return(nil)

			c, err := svc.Create(context.Background(), service.CampaignInput{
				Name:               "Black Friday",
				DiscountPercentage: tt.discount,
				StartDate:          tt.start,
				EndDate:            tt.end,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "12.50", c.DiscountPercentage)
			assert.True(t, c.IsActive)
		})
	}
}
