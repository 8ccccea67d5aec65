package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/billfold/pkg/db/pagination"
)

type CreateInvoiceItemRequest struct {
	ProductID string `json:"id"`
	Quantity  int64  `json:"quantity"`
	Rate      int64  `json:"rate"`
	Total     int64  `json:"total"`
}

type CreateInvoiceRequest struct {
	CustomerID string                     `json:"customerId"`
	Total      int64                      `json:"total"`
	Items      []CreateInvoiceItemRequest `json:"items"`
}

type CreateInvoiceResponse struct {
	Invoice Invoice       `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
}

// InvoiceDetail is an invoice with its snapshot customer block and lines, the
// shape the UI tables and the receipt renderer consume.
type InvoiceDetail struct {
	ID              string          `json:"id"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Date            string          `json:"date"`
	Total           int64           `json:"total"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Items           []InvoiceItem   `json:"items"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []InvoiceDetail `json:"invoices"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResponse, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (*InvoiceDetail, error)
}

var (
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrInvalidProductID  = errors.New("invalid_product_id")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrEmptyItems        = errors.New("empty_items")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidRate       = errors.New("invalid_rate")
	ErrTotalMismatch     = errors.New("total_mismatch")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
)
