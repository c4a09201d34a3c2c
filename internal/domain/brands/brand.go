package brands

import (
	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

type Status string

const (
	StatusAvailable  Status = "AVAILABLE"
	StatusRestricted Status = "RESTRICTED"
	StatusDisabled   Status = "DISABLED"
)

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

type Brand struct {
	entity.Base

	Title            string          `gorm:"not null" json:"title" binding:"required"`
	Keywords         *string         `json:"keywords,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Image            []byte          `json:"image,omitempty"`
	ImageContentType *string         `json:"imageContentType,omitempty"`
	Rating           *int            `json:"rating,omitempty"`
	Status           *Status         `gorm:"type:varchar(16)" json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE RESTRICTED DISABLED"`
	Price            *float64        `json:"price,omitempty" binding:"omitempty,min=0"`
	BrandSize        *Size           `gorm:"type:varchar(8)" json:"brandSize,omitempty" binding:"omitempty,oneof=S M L XL XXL"`
	DateAdded        *entity.Date    `json:"dateAdded,omitempty"`
	DateModified     *entity.Date    `json:"dateModified,omitempty"`
}

func (b *Brand) ReleaseRelations(tx *gorm.DB, id uint) error {
	return CategoryBrands.Reverse("brand_categories").Release(tx, id)
}
