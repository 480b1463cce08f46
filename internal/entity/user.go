package entity

type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

/*
Mysql Schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(50) NOT NULL,
	address VARCHAR(200) NOT NULL,
	email VARCHAR(100) NOT NULL
);

CREATE UNIQUE INDEX email_idx ON users(email);
*/
