package api

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/service"
)

// newTestServer wires the full handler/service/repository stack over a
// sqlmock database. The redis address is unreachable on purpose: cache
// reads degrade to database reads, so tests drive the SQL path.
func newTestServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	userService := service.NewUserService(*userRepo)
	productService := service.NewProductService(*productRepo, rdb)
	orderService := service.NewOrderService(*orderRepo, *userRepo, *productRepo, nil)

	e := echo.New()
	e.Validator = NewValidator()
	RegisterRoutes(e, NewUserHandler(*userService), NewProductHandler(*productService), NewOrderHandler(*orderService))
	return e, mock
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
