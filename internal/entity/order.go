package entity

import "time"

type Order struct {
	ID        int       `json:"id"`
	OrderDate time.Time `json:"order_date"`
	UserID    int       `json:"user_id"`
	Products  []Product `json:"products"`
}

/*
Mysql Tables:

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	user_id INT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE order_product (
	order_id INT NOT NULL,
	product_id INT NOT NULL,
	PRIMARY KEY (order_id, product_id),
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);
*/
