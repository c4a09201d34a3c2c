package billing

import (
	"time"

	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

// Output is the result of a transaction. At most one output references a
// given transaction.
type Output struct {
	entity.Base

	Date   time.Time `gorm:"not null" json:"date" binding:"required"`
	Result string    `gorm:"type:text;not null" json:"result" binding:"required"`

	TransactionID *uint `gorm:"uniqueIndex" json:"transactionId,omitempty"`
}

func (o *Output) SyncRelations(tx *gorm.DB) error {
	return entity.RequireRow(tx, "transactions", o.TransactionID)
}
