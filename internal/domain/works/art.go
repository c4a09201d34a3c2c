package works

import (
	"artmarket/internal/domain/entity"

	"gorm.io/gorm"
)

type AssetType string

const (
	AssetImage AssetType = "IMAGE"
	AssetVideo AssetType = "VIDEO"
	AssetAudio AssetType = "AUDIO"
	AssetFile  AssetType = "FILE"
	AssetOther AssetType = "OTHER"
)

type ArtType string

const (
	ArtPhygital             ArtType = "PHYGITAL"
	ArtDigital              ArtType = "DIGITAL"
	ArtPhysical             ArtType = "PHYSICAL"
	ArtMiniatureCollectible ArtType = "MINIATURE_COLLECTIBLE"
	ArtOther                ArtType = "OTHER"
)

// ArtCollections is the join table behind Art.Collections; Art owns it.
var ArtCollections = entity.Link{
	Table:        "rel_art__collection",
	OwnerColumn:  "art_id",
	TargetTable:  "collections",
	TargetColumn: "collection_id",
}

type Art struct {
	entity.Base

	Name      string    `gorm:"not null" json:"name" binding:"required"`
	Handle    string    `gorm:"not null;index" json:"handle" binding:"required"`
	AssetType AssetType `gorm:"type:varchar(32);not null" json:"assetType" binding:"required,oneof=IMAGE VIDEO AUDIO FILE OTHER"`
	Type      ArtType   `gorm:"type:varchar(32);not null" json:"type" binding:"required,oneof=PHYGITAL DIGITAL PHYSICAL MINIATURE_COLLECTIBLE OTHER"`

	// Written as [{"id": n}]; populated with full rows only when eager-loaded.
	Collections []Collection `gorm:"many2many:rel_art__collection;" json:"collections,omitempty"`
}

func (a *Art) CollectionIDs() []uint {
	ids := make([]uint, 0, len(a.Collections))
	for _, c := range a.Collections {
		ids = append(ids, c.ID)
	}
	return ids
}

func (a *Art) SyncRelations(tx *gorm.DB) error {
	return ArtCollections.Replace(tx, a.ID, a.CollectionIDs())
}

func (a *Art) ReleaseRelations(tx *gorm.DB, id uint) error {
	return ArtCollections.Release(tx, id)
}
