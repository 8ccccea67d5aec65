package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is a catalog entry. Rate is the current unit price in minor
// currency units; invoice items snapshot it at sale time.
type Product struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null;uniqueIndex:ux_products_name" json:"name"`
	Rate      int64             `gorm:"not null;default:0" json:"rate"`
	Metadata  datatypes.JSONMap `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"not null" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }
