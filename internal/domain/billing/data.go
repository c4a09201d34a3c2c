package billing

import (
	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

// Data is a named binary attachment of a transaction.
type Data struct {
	entity.Base

	Name            string  `gorm:"not null" json:"name" binding:"required"`
	File            []byte  `gorm:"not null" json:"file" binding:"required"`
	FileContentType *string `json:"fileContentType,omitempty"`

	TransactionID *uint `gorm:"index" json:"transactionId,omitempty"`
}

func (Data) TableName() string { return "data" }

func (d *Data) SyncRelations(tx *gorm.DB) error {
	return entity.RequireRow(tx, "transactions", d.TransactionID)
}
