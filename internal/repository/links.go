package repository

import (
	"context"
	"errors"

	"artmarket/internal/domain/billing"
	"artmarket/internal/domain/brands"
	"artmarket/internal/domain/entity"
	"artmarket/internal/domain/works"
	"artmarket/internal/platform/logger"

	"gorm.io/gorm"
)

// Links answers the association queries that cross entity stores.
type Links struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLinks(db *gorm.DB, baseLog *logger.Logger) *Links {
	return &Links{db: db, log: baseLog.With("repo", "links")}
}

func (l *Links) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = l.db
	}
	return tx.WithContext(ctx)
}

func requireOwner(tx *gorm.DB, table string, id uint) error {
	err := entity.RequireRows(tx, table, id)
	if errors.Is(err, entity.ErrMissingReference) {
		return ErrNotFound
	}
	return err
}

// ReplaceCollectionFeatures makes featureIDs the exact feature set of the
// collection. Features dropped from the set lose their collection.
func (l *Links) ReplaceCollectionFeatures(ctx context.Context, tx *gorm.DB, collectionID uint, featureIDs []uint) error {
	l.log.Debug("replace collection features", "collection_id", collectionID, "features", len(featureIDs))
	return l.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwner(tx, "collections", collectionID); err != nil {
			return err
		}
		if err := entity.RequireRows(tx, "features", featureIDs...); err != nil {
			return err
		}
		if err := entity.NullOut(tx, "features", "collection_id", collectionID); err != nil {
			return err
		}
		if len(featureIDs) == 0 {
			return nil
		}
		return tx.Exec("UPDATE features SET collection_id = ? WHERE id IN ?", collectionID, featureIDs).Error
	})
}

func (l *Links) CollectionFeatures(ctx context.Context, tx *gorm.DB, collectionID uint) ([]works.Feature, error) {
	q := l.conn(ctx, tx)
	if err := requireOwner(q, "collections", collectionID); err != nil {
		return nil, err
	}
	out := []works.Feature{}
	err := q.Where("collection_id = ?", collectionID).Order("id ASC").Find(&out).Error
	return out, err
}

// ReplaceCollectionArts rewrites the art links from the collection side.
func (l *Links) ReplaceCollectionArts(ctx context.Context, tx *gorm.DB, collectionID uint, artIDs []uint) error {
	l.log.Debug("replace collection arts", "collection_id", collectionID, "arts", len(artIDs))
	return l.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwner(tx, "collections", collectionID); err != nil {
			return err
		}
		return works.ArtCollections.Reverse("arts").Replace(tx, collectionID, artIDs)
	})
}

func (l *Links) CollectionArts(ctx context.Context, tx *gorm.DB, collectionID uint) ([]works.Art, error) {
	q := l.conn(ctx, tx)
	if err := requireOwner(q, "collections", collectionID); err != nil {
		return nil, err
	}
	out := []works.Art{}
	err := q.Joins("JOIN rel_art__collection ON rel_art__collection.art_id = arts.id").
		Where("rel_art__collection.collection_id = ?", collectionID).
		Order("arts.id ASC").
		Find(&out).Error
	return out, err
}

// ReplaceBrandCategories rewrites the category links from the brand side.
func (l *Links) ReplaceBrandCategories(ctx context.Context, tx *gorm.DB, brandID uint, categoryIDs []uint) error {
	l.log.Debug("replace brand categories", "brand_id", brandID, "categories", len(categoryIDs))
	return l.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwner(tx, "brands", brandID); err != nil {
			return err
		}
		return brands.CategoryBrands.Reverse("brand_categories").Replace(tx, brandID, categoryIDs)
	})
}

func (l *Links) BrandCategories(ctx context.Context, tx *gorm.DB, brandID uint) ([]brands.BrandCategory, error) {
	q := l.conn(ctx, tx)
	if err := requireOwner(q, "brands", brandID); err != nil {
		return nil, err
	}
	out := []brands.BrandCategory{}
	err := q.Joins("JOIN rel_brand_category__brand ON rel_brand_category__brand.brand_category_id = brand_categories.id").
		Where("rel_brand_category__brand.brand_id = ?", brandID).
		Order("brand_categories.id ASC").
		Find(&out).Error
	return out, err
}

func (l *Links) TransactionData(ctx context.Context, tx *gorm.DB, transactionID uint) ([]billing.Data, error) {
	q := l.conn(ctx, tx)
	if err := requireOwner(q, "transactions", transactionID); err != nil {
		return nil, err
	}
	out := []billing.Data{}
	err := q.Where("transaction_id = ?", transactionID).Order("id ASC").Find(&out).Error
	return out, err
}

// TransactionOutput returns ErrNotFound when the transaction is unknown or
// has no output yet.
func (l *Links) TransactionOutput(ctx context.Context, tx *gorm.DB, transactionID uint) (*billing.Output, error) {
	q := l.conn(ctx, tx)
	if err := requireOwner(q, "transactions", transactionID); err != nil {
		return nil, err
	}
	var out billing.Output
	if err := q.Where("transaction_id = ?", transactionID).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
