package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-api/internal/entity"
)

func newMockDB(t *testing.T) (*OrderRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepository(db), mock
}

func TestCreateOrder(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders (order_date, user_id) VALUES (?, ?)`)).
		WithArgs(sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(1, 1))

	order, err := repo.CreateOrder(context.Background(), &entity.Order{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, 7, order.UserID)
	assert.False(t, order.OrderDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID(t *testing.T) {
	repo, mock := newMockDB(t)
	placed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, order_date, user_id FROM orders WHERE id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_date", "user_id"}).AddRow(1, placed, 7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id, p.product_name, p.price FROM products p JOIN order_product op ON op.product_id = p.id WHERE op.order_id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "price"}).AddRow(3, "Widget", 9.99))

	order, err := repo.GetOrderByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, order.UserID)
	assert.Equal(t, placed, order.OrderDate)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "Widget", order.Products[0].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderIDsByUserIDReturnsAll(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM orders WHERE user_id = ? ORDER BY id`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))

	ids, err := repo.GetOrderIDsByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderIDsByUserIDEmpty(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM orders WHERE user_id = ? ORDER BY id`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := repo.GetOrderIDsByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductLinked(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM order_product WHERE order_id = ? AND product_id = ?`)).
		WithArgs(1, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	linked, err := repo.ProductLinked(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, linked)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM order_product WHERE order_id = ? AND product_id = ?`)).
		WithArgs(1, 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	linked, err = repo.ProductLinked(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.False(t, linked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveProductNotLinked(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_product WHERE order_id = ? AND product_id = ?`)).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.RemoveProduct(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveProduct(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_product WHERE order_id = ? AND product_id = ?`)).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.RemoveProduct(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
