package brands

import (
	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

// CategoryBrands is the join table behind BrandCategory.Brands; the category
// owns it.
var CategoryBrands = entity.Link{
	Table:        "rel_brand_category__brand",
	OwnerColumn:  "brand_category_id",
	TargetTable:  "brands",
	TargetColumn: "brand_id",
}

type BrandCategory struct {
	entity.Base

	Title        string          `gorm:"not null" json:"title" binding:"required"`
	Description  *string         `json:"description,omitempty"`
	SortOrder    *int            `json:"sortOrder,omitempty"`
	DateAdded    *entity.Date    `json:"dateAdded,omitempty"`
	DateModified *entity.Date    `json:"dateModified,omitempty"`
	Status       *Status         `gorm:"type:varchar(16)" json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE RESTRICTED DISABLED"`

	Brands []Brand `gorm:"many2many:rel_brand_category__brand;" json:"brands,omitempty"`
}

func (c *BrandCategory) BrandIDs() []uint {
	ids := make([]uint, 0, len(c.Brands))
	for _, b := range c.Brands {
		ids = append(ids, b.ID)
	}
	return ids
}

func (c *BrandCategory) SyncRelations(tx *gorm.DB) error {
	return CategoryBrands.Replace(tx, c.ID, c.BrandIDs())
}

func (c *BrandCategory) ReleaseRelations(tx *gorm.DB, id uint) error {
	return CategoryBrands.Release(tx, id)
}
