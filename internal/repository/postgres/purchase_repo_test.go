package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "pgx"), mock
}

func samplePurchase() *domain.Purchase {
	return &domain.Purchase{
		Type:                domain.PurchaseTypePurchase,
		Status:              domain.PurchaseStatusPending,
		SupplierID:          uuid.New(),
		PurchaseInvoiceDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalExcBTW:         "25.50",
		TotalVAT:            "4.20",
		TotalIncBTW:         "29.70",
		CreatedBy:           uuid.New(),
		Items: []domain.PurchaseItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: "10.00", VATRate: 21},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: "5,50", VATRate: 0},
		},
	}
}

var purchaseCols = []string{
	"id", "type", "status", "supplier_id", "purchase_invoice_date", "total_exc_btw",
	"total_vat", "total_inc_btw", "history", "created_by", "created_at", "updated_at",
}

var itemCols = []string{
	"id", "purchase_id", "product_id", "product_title", "product_ean",
	"quantity", "unit_price", "vat_rate", "position",
}

func TestPurchaseRepo_Create_WritesHeaderAndItemsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)
	p := samplePurchase()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO purchases`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO purchase_items`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO purchase_items`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), p))

	assert.NotEqual(t, uuid.Nil, p.ID)
	for i, item := range p.Items {
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, p.ID, item.PurchaseID)
		assert.Equal(t, i, item.Position)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepo_Create_RollsBackWhenAnItemFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO purchases`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO purchase_items`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), samplePurchase())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepo_Save_ReplacesItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)
	p := samplePurchase()
	p.ID = uuid.New()
	p.Items = p.Items[:1]

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE purchases SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM purchase_items WHERE purchase_id = \$1`).
		WithArgs(p.ID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO purchase_items`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepo_Save_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)
	p := samplePurchase()
	p.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE purchases SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM purchases WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(purchaseCols).AddRow(
			id.String(), "purchase", "pending", uuid.NewString(), now, "25.50", "4.20", "29.70",
			[]byte(`[{"action":"create","user":"inkoop@example.nl","changes":{}}]`),
			uuid.NewString(), now, now))
	mock.ExpectQuery(`SELECT \* FROM purchase_items WHERE purchase_id = \$1 ORDER BY position`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(uuid.NewString(), id.String(), uuid.NewString(), "Koffie", "8712345678906", 2, "10.00", 21.0, 0).
			AddRow(uuid.NewString(), id.String(), uuid.NewString(), "Thee", "8712345678913", 1, "5,50", 0.0, 1))

	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseStatusPending, p.Status)
	assert.Equal(t, "29.70", p.TotalIncBTW)
	require.Len(t, p.History, 1)
	assert.Equal(t, domain.HistoryActionCreate, p.History[0].Action)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "5,50", p.Items[1].UnitPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)

	mock.ExpectQuery(`SELECT .* FROM purchases WHERE id = \$1`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseRepo_List_AppliesFiltersAndAttachesItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPurchaseRepo(db)
	supplierID := uuid.New()
	id := uuid.New()
	now := time.Now().UTC()

	filter := domain.PurchaseFilter{Status: domain.PurchaseStatusPending, SupplierID: &supplierID}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM purchases WHERE status = \$1 AND supplier_id = \$2`).
		WithArgs(domain.PurchaseStatusPending, supplierID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM purchases WHERE status = \$1 AND supplier_id = \$2 ORDER BY .* LIMIT \$3 OFFSET \$4`).
		WithArgs(domain.PurchaseStatusPending, supplierID, 20, 0).
		WillReturnRows(sqlmock.NewRows(purchaseCols).AddRow(
			id.String(), "purchase", "pending", supplierID.String(), now, "10.00", "2.10", "12.10",
			[]byte(`[]`), uuid.NewString(), now, now))
	mock.ExpectQuery(`SELECT \* FROM purchase_items WHERE purchase_id = ANY`).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(uuid.NewString(), id.String(), uuid.NewString(), "Koffie", "", 1, "10.00", 21.0, 0))

	purchases, total, err := repo.List(context.Background(), filter, 0, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, purchases, 1)
	assert.Len(t, purchases[0].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
