package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	// FindLastNumberInScope returns the highest invoice number whose scope
	// suffix matches (e.g. "/03/24"), or "" when the scope has none. Must be
	// called with the creation transaction's handle so the read and the
	// subsequent insert share one isolation scope.
	FindLastNumberInScope(ctx context.Context, db *gorm.DB, suffix string) (string, error)

	InsertInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	InsertItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error

	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindAll(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Invoice, error)
	FindItemsByInvoiceIDs(ctx context.Context, db *gorm.DB, invoiceIDs []snowflake.ID) ([]InvoiceItem, error)
}
