package notifications

import (
	"time"

	"artmarket/internal/domain/entity"
)

type Format string

const (
	FormatEmail  Format = "EMAIL"
	FormatSMS    Format = "SMS"
	FormatParcel Format = "PARCEL"
)

type Notification struct {
	entity.Base

	Date     time.Time `gorm:"not null" json:"date" binding:"required"`
	Details  *string   `json:"details,omitempty"`
	SentDate time.Time `gorm:"not null" json:"sentDate" binding:"required"`
	Format   Format    `gorm:"type:varchar(16);not null" json:"format" binding:"required,oneof=EMAIL SMS PARCEL"`
	UserID   *uint     `gorm:"not null;index" json:"userId" binding:"required"`
	BrandID  *uint     `gorm:"not null;index" json:"brandId" binding:"required"`
}
