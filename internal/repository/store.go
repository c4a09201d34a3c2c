package repository

import (
	"context"
	"errors"
	"fmt"

	"artmarket/internal/domain/entity"
	"artmarket/internal/platform/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Order is one ORDER BY term on a column name.
type Order struct {
	Column string
	Desc   bool
}

// Page selects a zero-based page of Size rows.
type Page struct {
	Number int
	Size   int
	Sort   []Order
}

func (p Page) Offset() int { return p.Number * p.Size }

// Store is the data-access layer of one entity type.
type Store[T any, P entity.Model[T]] struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStore[T any, P entity.Model[T]](db *gorm.DB, baseLog *logger.Logger) *Store[T, P] {
	var zero T
	return &Store[T, P]{db: db, log: baseLog.With("repo", fmt.Sprintf("%T", zero))}
}

func (s *Store[T, P]) DB() *gorm.DB { return s.db }

func (s *Store[T, P]) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = s.db
	}
	return tx.WithContext(ctx)
}

// Create inserts e; the store assigns its id.
func (s *Store[T, P]) Create(ctx context.Context, tx *gorm.DB, e P) (P, error) {
	err := s.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return err
		}
		return syncRelations(tx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Save writes every column of e, inserting when the id is unknown.
func (s *Store[T, P]) Save(ctx context.Context, tx *gorm.DB, e P) (P, error) {
	err := s.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
			return err
		}
		return syncRelations(tx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store[T, P]) FindByID(ctx context.Context, tx *gorm.DB, id uint, preload ...string) (P, error) {
	q := s.conn(ctx, tx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	var out T
	if err := q.First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return P(&out), nil
}

// FindAll returns one page and the total row count.
func (s *Store[T, P]) FindAll(ctx context.Context, tx *gorm.DB, page Page, preload ...string) ([]P, int64, error) {
	total, err := s.Count(ctx, tx)
	if err != nil {
		return nil, 0, err
	}

	q := ordered(s.conn(ctx, tx), page.Sort)
	for _, p := range preload {
		q = q.Preload(p)
	}
	var rows []T
	if err := q.Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return pointers[T, P](rows), total, nil
}

// Stream walks every row in batches of batchSize and hands each batch to fn.
func (s *Store[T, P]) Stream(ctx context.Context, tx *gorm.DB, sort []Order, batchSize int, fn func([]P) error) error {
	if batchSize < 1 {
		batchSize = 100
	}
	for offset := 0; ; offset += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		var rows []T
		q := ordered(s.conn(ctx, tx), sort)
		if err := q.Offset(offset).Limit(batchSize).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		if err := fn(pointers[T, P](rows)); err != nil {
			return err
		}
		if len(rows) < batchSize {
			return nil
		}
	}
}

func (s *Store[T, P]) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := s.conn(ctx, tx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store[T, P]) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := s.conn(ctx, tx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByID removes the row and releases whatever points at it. Deleting an
// unknown id is not an error.
func (s *Store[T, P]) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	s.log.Debug("delete", "id", id)
	return s.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		if r, ok := any(P(new(T))).(entity.RelationReleaser); ok {
			if err := r.ReleaseRelations(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(P(new(T)), id).Error
	})
}

func syncRelations(tx *gorm.DB, e any) error {
	if s, ok := e.(entity.RelationSyncer); ok {
		return s.SyncRelations(tx)
	}
	return nil
}

func ordered(q *gorm.DB, sort []Order) *gorm.DB {
	if len(sort) == 0 {
		return q.Order("id ASC")
	}
	for _, o := range sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	return q
}

func pointers[T any, P entity.Model[T]](rows []T) []P {
	out := make([]P, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out
}
