package api

import (
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-api/internal/entity"
)

func TestCreateUserReturnsCreated(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, address, email) VALUES (?, ?, ?)`)).
		WithArgs("A", "X", "a@x.com").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := doRequest(e, "POST", "/users", `{"name":"A","address":"X","email":"a@x.com"}`)
	require.Equal(t, 201, rec.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "X", user.Address)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserValidationErrors(t *testing.T) {
	e, mock := newTestServer(t)

	rec := doRequest(e, "POST", "/users", `{"name":"A"}`)
	require.Equal(t, 400, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "address")
	assert.Contains(t, body.Errors, "email")
	assert.NotContains(t, body.Errors, "name")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserBadEmail(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, "POST", "/users", `{"name":"A","address":"X","email":"not-an-email"}`)
	require.Equal(t, 400, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "must be a valid email address", body.Errors["email"])
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, address, email) VALUES (?, ?, ?)`)).
		WithArgs("A", "X", "a@x.com").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'email'"})

	rec := doRequest(e, "POST", "/users", `{"name":"A","address":"X","email":"a@x.com"}`)
	assert.Equal(t, 409, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsers(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, address, email FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "email"}).
			AddRow(1, "A", "X", "a@x.com").
			AddRow(2, "B", "Y", "b@y.com"))

	rec := doRequest(e, "GET", "/users", "")
	require.Equal(t, 200, rec.Code)

	var users []entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDNotFound(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, address, email FROM users WHERE id = ?`)).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	rec := doRequest(e, "GET", "/users/42", "")
	assert.Equal(t, 404, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, address, email FROM users WHERE id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "email"}).AddRow(1, "A", "X", "a@x.com"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET name = ?, address = ?, email = ? WHERE id = ?`)).
		WithArgs("A2", "X2", "a2@x.com", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doRequest(e, "PUT", "/users/1", `{"name":"A2","address":"X2","email":"a2@x.com"}`)
	require.Equal(t, 200, rec.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "A2", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserMissing(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, address, email FROM users WHERE id = ?`)).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	rec := doRequest(e, "PUT", "/users/42", `{"name":"A","address":"X","email":"a@x.com"}`)
	assert.Equal(t, 400, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, address, email FROM users WHERE id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "email"}).AddRow(1, "A", "X", "a@x.com"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_product WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE user_id = ?`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = ?`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := doRequest(e, "DELETE", "/users/1", "")
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "successfully deleted user 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserMissing(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, address, email FROM users WHERE id = ?`)).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	rec := doRequest(e, "DELETE", "/users/42", "")
	assert.Equal(t, 400, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
