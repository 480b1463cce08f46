package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrProductLinked    = errors.New("product already added to order")
	ErrProductNotLinked = errors.New("product not linked to order")
)

const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
