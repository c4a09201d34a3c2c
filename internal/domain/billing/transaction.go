package billing

import (
	"time"

	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionDraft      TransactionStatus = "DRAFT"
	TransactionSubmitted  TransactionStatus = "SUBMITTED"
	TransactionInProgress TransactionStatus = "IN_PROGRESS"
	TransactionCompleted  TransactionStatus = "COMPLETED"
	TransactionFailed     TransactionStatus = "FAILED"
)

type Transaction struct {
	entity.Base

	Title  string            `gorm:"not null" json:"title" binding:"required"`
	Status TransactionStatus `gorm:"type:varchar(16);not null" json:"status" binding:"required,oneof=DRAFT SUBMITTED IN_PROGRESS COMPLETED FAILED"`
	Date   *time.Time        `json:"date,omitempty"`

	CollectionID *uint `gorm:"index" json:"collectionId,omitempty"`
}

func (t *Transaction) SyncRelations(tx *gorm.DB) error {
	return entity.RequireRow(tx, "collections", t.CollectionID)
}

// ReleaseRelations detaches the transaction's data blobs and output.
func (t *Transaction) ReleaseRelations(tx *gorm.DB, id uint) error {
	if err := entity.NullOut(tx, "data", "transaction_id", id); err != nil {
		return err
	}
	return entity.NullOut(tx, "outputs", "transaction_id", id)
}
