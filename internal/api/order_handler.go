package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"ecommerce-api/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderRequest is the create payload for an order. An order is created
// empty; products are attached through the link endpoints.
type OrderRequest struct {
	UserID int `json:"user_id" validate:"required"`
}

// CreateOrder creates a new order --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	req := OrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(400, map[string]interface{}{"errors": validationMessages(err)})
	}

	createdOrder, err := h.orderService.CreateOrder(c.Request().Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(400, map[string]string{"error": "Invalid user id"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(201, createdOrder)
}

// GetOrderByID retrieves an order with its products --> GET /orders/:order_id
func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.GetOrderByID(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, order)
}

// AddProduct links a product to an order --> POST/PUT /orders/:order_id/products/:product_id
func (h *OrderHandler) AddProduct(c echo.Context) error {
	orderID, productID, err := linkParams(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	err = h.orderService.AddProduct(c.Request().Context(), orderID, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order or product not found"})
		}
		if errors.Is(err, service.ErrProductLinked) {
			return c.JSON(409, map[string]string{"error": "Product already added to order"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": fmt.Sprintf("product %d added to order %d", productID, orderID)})
}

// RemoveProduct unlinks a product from an order --> DELETE /orders/:order_id/products/:product_id
func (h *OrderHandler) RemoveProduct(c echo.Context) error {
	orderID, productID, err := linkParams(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	err = h.orderService.RemoveProduct(c.Request().Context(), orderID, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order or product not found"})
		}
		if errors.Is(err, service.ErrProductNotLinked) {
			return c.JSON(404, map[string]string{"error": "Product not linked to order"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": fmt.Sprintf("product %d removed from order %d", productID, orderID)})
}

// GetOrdersByUser lists the ids of every order a user has placed --> GET /orders/user/:user_id
func (h *OrderHandler) GetOrdersByUser(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	ids, err := h.orderService.GetOrderIDsByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "User not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{"user_id": userID, "order_ids": ids})
}

// GetOrderProducts lists every product linked to an order --> GET /orders/:order_id/products
func (h *OrderHandler) GetOrderProducts(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	products, err := h.orderService.GetOrderProducts(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, products)
}

func linkParams(c echo.Context) (int, int, error) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		return 0, 0, err
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		return 0, 0, err
	}
	return orderID, productID, nil
}
