package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go"

	"ecommerce-api/internal/entity"
	"ecommerce-api/internal/repository"
)

// OrderService provides order-related operations, including the
// order-product link management.
type OrderService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	kafkaWriter *kafka.Writer
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, productRepo repository.ProductRepository, kafkaWriter *kafka.Writer) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		kafkaWriter: kafkaWriter,
	}
}

// CreateOrder creates a new order for an existing user. The order date
// defaults to the creation time.
func (s *OrderService) CreateOrder(ctx context.Context, userID int) (*entity.Order, error) {
	_, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, err
	}

	order := &entity.Order{UserID: userID, Products: []entity.Product{}}
	createdOrder, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	err = s.publishOrderEvent(ctx, createdOrder, "created")
	if err != nil {
		return nil, err
	}

	return createdOrder, nil
}

// GetOrderByID retrieves an order with its linked products.
func (s *OrderService) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}

	return order, nil
}

// AddProduct links a product to an order. Linking the same product twice
// is rejected with ErrProductLinked.
func (s *OrderService) AddProduct(ctx context.Context, orderID, productID int) error {
	exists, err := s.orderRepo.OrderExists(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking order %d", orderID)
		return err
	}
	if !exists {
		return ErrNotFound
	}

	_, err = s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", productID)
		return err
	}

	linked, err := s.orderRepo.ProductLinked(ctx, orderID, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking link for order %d product %d", orderID, productID)
		return err
	}
	if linked {
		return ErrProductLinked
	}

	err = s.orderRepo.AddProduct(ctx, orderID, productID)
	if err != nil {
		// A concurrent insert can still hit the composite primary key.
		if isDuplicateEntry(err) {
			return ErrProductLinked
		}
		logger.Error().Err(err).Msgf("Error adding product %d to order %d", productID, orderID)
		return err
	}

	return s.publishLinkEvent(ctx, orderID, productID, "product-added")
}

// RemoveProduct unlinks a product from an order. Removing a product that
// is not linked is rejected with ErrProductNotLinked.
func (s *OrderService) RemoveProduct(ctx context.Context, orderID, productID int) error {
	exists, err := s.orderRepo.OrderExists(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking order %d", orderID)
		return err
	}
	if !exists {
		return ErrNotFound
	}

	_, err = s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", productID)
		return err
	}

	removed, err := s.orderRepo.RemoveProduct(ctx, orderID, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error removing product %d from order %d", productID, orderID)
		return err
	}
	if removed == 0 {
		return ErrProductNotLinked
	}

	return s.publishLinkEvent(ctx, orderID, productID, "product-removed")
}

// GetOrderIDsByUser returns the ids of every order the user has placed.
func (s *OrderService) GetOrderIDsByUser(ctx context.Context, userID int) ([]int, error) {
	_, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, err
	}

	ids, err := s.orderRepo.GetOrderIDsByUserID(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting orders for user %d", userID)
		return nil, err
	}

	return ids, nil
}

// GetOrderProducts returns every product linked to the order.
func (s *OrderService) GetOrderProducts(ctx context.Context, orderID int) ([]entity.Product, error) {
	exists, err := s.orderRepo.OrderExists(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking order %d", orderID)
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	products, err := s.orderRepo.GetOrderProducts(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting products for order %d", orderID)
		return nil, err
	}

	return products, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, key string) error {
	// if env is set to test, skip publishing
	if os.Getenv("ENV") == "test" {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", key, order.ID)),
		Value: orderJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

func (s *OrderService) publishLinkEvent(ctx context.Context, orderID, productID int, key string) error {
	// if env is set to test, skip publishing
	if os.Getenv("ENV") == "test" {
		return nil
	}

	payload, err := json.Marshal(map[string]int{"order_id": orderID, "product_id": productID})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", key, orderID)),
		Value: payload,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}
