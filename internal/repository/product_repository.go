package repository

import (
	"context"
	"database/sql"

	"ecommerce-api/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	query := `SELECT id, product_name, price FROM products`
	rows, err := r.db.QueryContext(ctx, query)
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
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	product := &entity.Product{}
	query := `SELECT id, product_name, price FROM products WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.ProductName, &product.Price)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (product_name, price) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.ProductName, product.Price)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `UPDATE products SET product_name = ?, price = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, product.ProductName, product.Price, product.ID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and any order links pointing at it in
// one transaction. Orders keep existing, the product just drops out of
// their product lists.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	linkQuery := `DELETE FROM order_product WHERE product_id = ?`
	_, err = tx.ExecContext(ctx, linkQuery, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	productQuery := `DELETE FROM products WHERE id = ?`
	_, err = tx.ExecContext(ctx, productQuery, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
