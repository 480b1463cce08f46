package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	// report field names as they appear in request JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// validationMessages flattens validator errors into per-field messages.
func validationMessages(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = "invalid request payload"
		return fields
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "field is required"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		case "gt":
			fields[fe.Field()] = "must be greater than " + fe.Param()
		default:
			fields[fe.Field()] = "invalid value"
		}
	}
	return fields
}

// RegisterRoutes wires every handler onto the echo instance.
func RegisterRoutes(e *echo.Echo, userHandler *UserHandler, productHandler *ProductHandler, orderHandler *OrderHandler) {
	e.GET("/users", userHandler.GetUsers)
	e.GET("/users/:id", userHandler.GetUserByID)
	e.POST("/users", userHandler.CreateUser)
	e.PUT("/users/:id", userHandler.UpdateUser)
	e.DELETE("/users/:id", userHandler.DeleteUser)

	e.GET("/products", productHandler.GetProducts)
	e.GET("/products/:id", productHandler.GetProductByID)
	e.POST("/products", productHandler.CreateProduct)
	e.PUT("/products/:id", productHandler.UpdateProduct)
	e.DELETE("/products/:id", productHandler.DeleteProduct)

	e.POST("/orders", orderHandler.CreateOrder)
	e.GET("/orders/:order_id", orderHandler.GetOrderByID)
	e.POST("/orders/:order_id/products/:product_id", orderHandler.AddProduct)
	e.PUT("/orders/:order_id/products/:product_id", orderHandler.AddProduct)
	e.DELETE("/orders/:order_id/products/:product_id", orderHandler.RemoveProduct)
	e.GET("/orders/user/:user_id", orderHandler.GetOrdersByUser)
	e.GET("/orders/:order_id/products", orderHandler.GetOrderProducts)
}
