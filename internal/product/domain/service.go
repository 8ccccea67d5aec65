package domain

import (
	"context"
	"errors"
)

type CreateProductRequest struct {
	Name string
	Rate int64
}

type UpdateProductRequest struct {
	ID   string
	Name string
	Rate int64
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidRate   = errors.New("invalid_rate")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateName = errors.New("duplicate_name")
	ErrNotFound      = errors.New("not_found")
	ErrProductInUse  = errors.New("product_in_use")
)
