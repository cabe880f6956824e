package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/repository/postgres"
)

func TestCampaignRepo_GetByID_ParsesProductIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCampaignRepo(db)
	id := uuid.New()
	p1, p2 := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM campaigns WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "discount_percentage", "start_date", "end_date",
			"is_active", "product_ids", "created_at", "updated_at",
		}).AddRow(id.String(), "Zomer", "", "15", now, now.AddDate(0, 1, 0), true,
			"{"+p1.String()+","+p2.String()+"}", now, now))

	c, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p1, p2}, c.ProductIDs)
	assert.Equal(t, "15", c.DiscountPercentage)
}
