package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			address VARCHAR(200) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE
		);
	`
	return execWithRetry(retries, db, query)
}

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			product_name VARCHAR(50) NOT NULL,
			price DOUBLE NOT NULL
		);
	`
	return execWithRetry(retries, db, query)
}

// AutoMigrateOrders creates the orders table if it does not exist.
// Deleting a user removes their orders via the cascade.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			user_id INT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(retries, db, query)
}

// AutoMigrateOrderProducts creates the order_product association table if
// it does not exist. The composite primary key keeps a product from being
// linked to the same order twice.
func AutoMigrateOrderProducts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS order_product (
			order_id INT NOT NULL,
			product_id INT NOT NULL,
			PRIMARY KEY (order_id, product_id),
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(retries, db, query)
}

func execWithRetry(retries int, db *sql.DB, query string) error {
	_, err := db.Exec(query)
	if err != nil {
		// Retry creating the table
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}
