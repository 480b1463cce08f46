package entity

type Product struct {
	ID          int     `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

/*
Mysql Schema:

CREATE TABLE products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	product_name VARCHAR(50) NOT NULL,
	price DOUBLE NOT NULL
);
*/
