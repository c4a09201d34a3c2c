package profiles

import "artmarket/internal/domain/entity"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Profile is the personal record shared by artists and collectors.
type Profile struct {
	FirstName    string  `gorm:"not null" json:"firstName" binding:"required"`
	LastName     string  `gorm:"not null" json:"lastName" binding:"required"`
	Gender       Gender  `gorm:"type:varchar(16);not null" json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Email        string  `gorm:"not null" json:"email" binding:"required,email"`
	Phone        string  `gorm:"not null" json:"phone" binding:"required"`
	AddressLine1 string  `gorm:"not null" json:"addressLine1" binding:"required"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `gorm:"not null" json:"city" binding:"required"`
	Country      string  `gorm:"not null" json:"country" binding:"required"`
}

type Artist struct {
	entity.Base
	Profile
}

type Collector struct {
	entity.Base
	Profile
}
