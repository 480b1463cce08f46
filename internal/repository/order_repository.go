package repository

import (
	"context"
	"database/sql"
	"time"

	"ecommerce-api/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	query := `INSERT INTO orders (order_date, user_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, order.OrderDate, order.UserID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order.ID = int(id)
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	order := &entity.Order{}
	query := `SELECT id, order_date, user_id FROM orders WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.OrderDate, &order.UserID)
	if err != nil {
		return nil, err
	}

	products, err := r.GetOrderProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Products = products

	return order, nil
}

func (r *OrderRepository) OrderExists(ctx context.Context, id int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetOrderIDsByUserID returns the ids of every order the user has placed.
func (r *OrderRepository) GetOrderIDsByUserID(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}

	query := `SELECT id FROM orders WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		err := rows.Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetOrderProducts returns every product linked to the order.
func (r *OrderRepository) GetOrderProducts(ctx context.Context, orderID int) ([]entity.Product, error) {
	products := []entity.Product{}

	query := `SELECT p.id, p.product_name, p.price FROM products p JOIN order_product op ON op.product_id = p.id WHERE op.order_id = ?`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var product entity.Product
		err := rows.Scan(&product.ID, &product.ProductName, &product.Price)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *OrderRepository) ProductLinked(ctx context.Context, orderID, productID int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM order_product WHERE order_id = ? AND product_id = ?`
	err := r.db.QueryRowContext(ctx, query, orderID, productID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddProduct links a product to an order. The association table's
// composite primary key rejects a second link for the same pair, so a
// concurrent duplicate insert surfaces as a driver error.
func (r *OrderRepository) AddProduct(ctx context.Context, orderID, productID int) error {
	query := `INSERT INTO order_product (order_id, product_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, orderID, productID)
	return err
}

// RemoveProduct unlinks a product from an order. Returns the number of
// rows removed so the caller can tell an absent link apart from success.
func (r *OrderRepository) RemoveProduct(ctx context.Context, orderID, productID int) (int64, error) {
	query := `DELETE FROM order_product WHERE order_id = ? AND product_id = ?`
	res, err := r.db.ExecContext(ctx, query, orderID, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
