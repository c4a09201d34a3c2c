package works

import (
	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

type Feature struct {
	entity.Base

	Name      string `gorm:"not null" json:"name" binding:"required"`
	Mandatory bool   `gorm:"not null;default:false" json:"mandatory"`

	// Owning side of Collection -> Feature.
	CollectionID *uint `gorm:"index" json:"collectionId,omitempty"`
}

func (f *Feature) SyncRelations(tx *gorm.DB) error {
	return entity.RequireRow(tx, "collections", f.CollectionID)
}
