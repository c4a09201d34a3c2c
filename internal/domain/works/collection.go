package works

import (
	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

type CollectionType string

const (
	CollectionArt         CollectionType = "ART"
	CollectionWearable    CollectionType = "WEARABLE"
	CollectionMemorabilia CollectionType = "MEMORABILIA"
	CollectionOther       CollectionType = "OTHER"
)

type AuctionType string

const (
	AuctionFixed       AuctionType = "FIXED"
	AuctionAuction     AuctionType = "AUCTION"
	AuctionOpenEdition AuctionType = "OPEN_EDITION"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyETH Currency = "ETH"
)

type Collection struct {
	entity.Base

	Name           string          `gorm:"not null;uniqueIndex" json:"name" binding:"required"`
	Title          string          `gorm:"not null;uniqueIndex" json:"title" binding:"required"`
	Count          *int            `json:"count,omitempty" binding:"omitempty,min=1,max=10000"`
	CollectionType *CollectionType `gorm:"type:varchar(32)" json:"collectionType,omitempty" binding:"omitempty,oneof=ART WEARABLE MEMORABILIA OTHER"`
	AuctionType    *AuctionType    `gorm:"type:varchar(32)" json:"auctionType,omitempty" binding:"omitempty,oneof=FIXED AUCTION OPEN_EDITION"`
	MinRange       *float64        `json:"minRange,omitempty"`
	MaxRange       *float64        `json:"maxRange,omitempty"`
	Currency       *Currency       `gorm:"type:varchar(8)" json:"currency,omitempty" binding:"omitempty,oneof=USD EUR GBP INR ETH"`
	Owner          *string         `json:"owner,omitempty"`
}

// ReleaseRelations detaches features, transactions and arts from a
// collection that is about to be deleted.
func (c *Collection) ReleaseRelations(tx *gorm.DB, id uint) error {
	if err := entity.NullOut(tx, "features", "collection_id", id); err != nil {
		return err
	}
	if err := entity.NullOut(tx, "transactions", "collection_id", id); err != nil {
		return err
	}
	return ArtCollections.Reverse("arts").Release(tx, id)
}
