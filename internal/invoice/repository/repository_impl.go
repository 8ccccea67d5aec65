package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/pkg/db/option"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindLastNumberInScope(ctx context.Context, db *gorm.DB, suffix string) (string, error) {
	var last struct {
		InvoiceNumber string
	}
	// Order by serial length before value: "1000/03/24" must beat "999/03/24",
	// which a bare string sort would get wrong.
	err := db.WithContext(ctx).Raw(
		`SELECT invoice_number
		 FROM invoices
		 WHERE invoice_number LIKE ?
		 ORDER BY LENGTH(invoice_number) DESC, invoice_number DESC
		 LIMIT 1`,
		"%"+suffix,
	).Scan(&last).Error
	if err != nil {
		return "", err
	}
	return last.InvoiceNumber, nil
}

func (r *repo) InsertInvoice(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (id, invoice_number, date, total, customer_id,
		   customer_name, customer_mobile, customer_address, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.InvoiceNumber,
		invoice.Date,
		invoice.Total,
		invoice.CustomerID,
		invoice.CustomerName,
		invoice.CustomerMobile,
		invoice.CustomerAddress,
		invoice.Metadata,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceItem) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoice_items (id, invoice_id, product_id, product_name, quantity, rate, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.InvoiceID,
		item.ProductID,
		item.ProductName,
		item.Quantity,
		item.Rate,
		item.Total,
		item.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, invoice_number, date, total, customer_id,
		   customer_name, customer_mobile, customer_address, metadata, created_at, updated_at
		 FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("date desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) FindItemsByInvoiceIDs(ctx context.Context, db *gorm.DB, invoiceIDs []snowflake.ID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	if len(invoiceIDs) == 0 {
		return items, nil
	}
	err := db.WithContext(ctx).
		Model(&domain.InvoiceItem{}).
		Where("invoice_id IN ?", invoiceIDs).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
