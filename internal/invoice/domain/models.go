// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Invoice is a committed sale. It is immutable after creation: there are no
// update or delete operations, and the customer details are snapshotted at
// creation time so later customer edits never rewrite history.
type Invoice struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	InvoiceNumber   string            `gorm:"not null;uniqueIndex:ux_invoices_number" json:"invoiceNumber"`
	Date            time.Time         `gorm:"not null;index" json:"date"`
	Total           int64             `gorm:"not null;default:0" json:"total"`
	CustomerID      snowflake.ID      `gorm:"not null;index" json:"customerId"`
	CustomerName    string            `gorm:"not null" json:"-"`
	CustomerMobile  string            `gorm:"not null" json:"-"`
	CustomerAddress string            `gorm:"not null" json:"-"`
	Metadata        datatypes.JSONMap `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt       time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updatedAt"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a line on an invoice. Rate is the unit price snapshotted at
// sale time, not a live reference to the product's catalog rate.
type InvoiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoiceId"`
	ProductID   snowflake.ID `gorm:"not null;index" json:"productId"`
	ProductName string       `gorm:"not null" json:"name"`
	Quantity    int64        `gorm:"not null" json:"quantity"`
	Rate        int64        `gorm:"not null" json:"rate"`
	Total       int64        `gorm:"not null" json:"total"`
	CreatedAt   time.Time    `gorm:"not null" json:"-"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }

// CustomerDetails is the customer snapshot exposed on read paths.
type CustomerDetails struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}
