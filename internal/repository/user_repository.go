package repository

import (
	"context"
	"database/sql"

	"ecommerce-api/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User

	query := `SELECT id, name, address, email FROM users`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var user entity.User
		err := rows.Scan(&user.ID, &user.Name, &user.Address, &user.Email)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT id, name, address, email FROM users WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Address, &user.Email)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (name, address, email) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Address, user.Email)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `UPDATE users SET name = ?, address = ?, email = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Address, user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user together with their orders and the order
// links, all in one transaction.
func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	linkQuery := `DELETE FROM order_product WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)`
	_, err = tx.ExecContext(ctx, linkQuery, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	orderQuery := `DELETE FROM orders WHERE user_id = ?`
	_, err = tx.ExecContext(ctx, orderQuery, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	userQuery := `DELETE FROM users WHERE id = ?`
	_, err = tx.ExecContext(ctx, userQuery, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
