package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"ecommerce-api/internal/entity"
	"ecommerce-api/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new instance of ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	ProductName string  `json:"product_name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// GetProducts retrieves all products --> GET /products
func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.productService.GetProducts(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, products)
}

// GetProductByID retrieves a product by ID --> GET /products/:id
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	product, err := h.productService.GetProductByID(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Product not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, product)
}

// CreateProduct creates a new product --> POST /products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	req := ProductRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(400, map[string]interface{}{"errors": validationMessages(err)})
	}

	product := entity.Product{ProductName: req.ProductName, Price: req.Price}
	createdProduct, err := h.productService.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(201, createdProduct)
}

// UpdateProduct updates a product by ID --> PUT /products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	req := ProductRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(400, map[string]interface{}{"errors": validationMessages(err)})
	}

	product := entity.Product{ID: idInt, ProductName: req.ProductName, Price: req.Price}
	updatedProduct, err := h.productService.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(400, map[string]string{"error": "Invalid product id"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, updatedProduct)
}

// DeleteProduct deletes a product by ID --> DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	err = h.productService.DeleteProduct(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(400, map[string]string{"error": "Invalid product id"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": fmt.Sprintf("successfully deleted product %d", idInt)})
}
