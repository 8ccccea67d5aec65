package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null" json:"name"`
	Mobile    string            `gorm:"not null;uniqueIndex:ux_customers_mobile" json:"mobile"`
	Address   string            `gorm:"not null" json:"address"`
	Metadata  datatypes.JSONMap `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"not null" json:"updatedAt"`
}

func (Customer) TableName() string { return "customers" }
