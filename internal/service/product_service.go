package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ecommerce-api/internal/entity"
	"ecommerce-api/internal/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
}

// NewProductService creates a new instance of ProductService.
func NewProductService(productRepo repository.ProductRepository, rdb *redis.Client) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		rdb:         rdb,
	}
}

// GetProducts retrieves all products.
func (p *ProductService) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := p.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return nil, err
	}

	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a product, reading through the Redis cache.
// Any cache failure degrades to a database read.
func (p *ProductService) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	key := fmt.Sprintf("product:%d", id)
	productCache, err := p.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger.Warn().Msgf("Product %d not found in cache", id)
		} else {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
		}
	}

	if productCache != "" {
		var product entity.Product
		if err := json.Unmarshal([]byte(productCache), &product); err == nil {
			return &product, nil
		}
		logger.Error().Msgf("Error unmarshalling cached product %d", id)
	}

	product, err := p.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}

	p.cacheProduct(ctx, product)
	return product, nil
}

// CreateProduct creates a new product.
func (p *ProductService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	createdProduct, err := p.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	p.cacheProduct(ctx, createdProduct)
	return createdProduct, nil
}

// UpdateProduct overwrites the mutable fields of an existing product and
// refreshes its cache entry.
func (p *ProductService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	_, err := p.productRepo.GetProductByID(ctx, product.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", product.ID)
		return nil, err
	}

	updatedProduct, err := p.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", product.ID)
		return nil, err
	}

	p.cacheProduct(ctx, updatedProduct)
	return updatedProduct, nil
}

// DeleteProduct removes a product, its order links, and its cache entry.
func (p *ProductService) DeleteProduct(ctx context.Context, id int) error {
	_, err := p.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return err
	}

	err = p.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}

	key := fmt.Sprintf("product:%d", id)
	if err := p.rdb.Del(ctx, key).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d from cache", id)
	}

	return nil
}

// PreWarmCache pre-warms the cache with product data.
func (p *ProductService) PreWarmCache(ctx context.Context) error {
	products, err := p.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return err
	}

	for _, product := range products {
		key := fmt.Sprintf("product:%d", product.ID)
		blob, err := json.Marshal(product)
		if err != nil {
			continue
		}
		if err := p.rdb.Set(ctx, key, blob, 1*time.Minute).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error setting product %d in cache", product.ID)
		}
	}

	return nil
}

func (p *ProductService) cacheProduct(ctx context.Context, product *entity.Product) {
	key := fmt.Sprintf("product:%d", product.ID)
	blob, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := p.rdb.Set(ctx, key, blob, 0).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", product.ID)
	}
}
