package billing

import (
	"time"

	"artmarket/internal/domain/entity"
)

type InvoiceStatus string

const (
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceIssued    InvoiceStatus = "ISSUED"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentPaypal         PaymentMethod = "PAYPAL"
	PaymentCrypto         PaymentMethod = "CRYPTO"
)

type Invoice struct {
	entity.Base

	Code          string        `gorm:"not null;index" json:"code" binding:"required"`
	Date          time.Time     `gorm:"not null" json:"date" binding:"required"`
	Details       *string       `json:"details,omitempty"`
	Status        InvoiceStatus `gorm:"type:varchar(16);not null" json:"status" binding:"required,oneof=PAID ISSUED CANCELLED"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(32);not null" json:"paymentMethod" binding:"required,oneof=CREDIT_CARD CASH_ON_DELIVERY PAYPAL CRYPTO"`
	PaymentDate   time.Time     `gorm:"not null" json:"paymentDate" binding:"required"`
	PaymentAmount *float64      `gorm:"not null" json:"paymentAmount" binding:"required,min=0"`
}
