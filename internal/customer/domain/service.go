package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name    string
	Mobile  string
	Address string
}

type UpdateCustomerRequest struct {
	ID      string
	Name    string
	Mobile  string
	Address string
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidMobile       = errors.New("invalid_mobile")
	ErrInvalidAddress      = errors.New("invalid_address")
	ErrInvalidID           = errors.New("invalid_id")
	ErrDuplicateMobile     = errors.New("duplicate_mobile")
	ErrNotFound            = errors.New("not_found")
	ErrCustomerHasInvoices = errors.New("customer_has_invoices")
)
