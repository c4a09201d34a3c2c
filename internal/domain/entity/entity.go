package entity

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrMissingReference is returned when a foreign id points at no row.
var ErrMissingReference = errors.New("referenced entity does not exist")

// Base carries the store-assigned identifier. Zero means "not assigned".
type Base struct {
	ID uint `gorm:"primaryKey" json:"id,omitempty"`
}

func (b *Base) GetID() uint   { return b.ID }
func (b *Base) SetID(id uint) { b.ID = id }

type Identified interface {
	GetID() uint
}

// Model is satisfied by a pointer to an entity struct embedding Base.
type Model[T any] interface {
	*T
	Identified
	SetID(id uint)
}

// Same reports whether a and b denote the same stored entity.
func Same(a, b Identified) bool {
	if a == nil || b == nil {
		return false
	}
	return a.GetID() != 0 && a.GetID() == b.GetID()
}

// RelationSyncer is implemented by entities that own foreign ids or join
// rows. It runs inside the write transaction after the row is stored.
type RelationSyncer interface {
	SyncRelations(tx *gorm.DB) error
}

// RelationReleaser is implemented by entities other rows point at. It runs
// inside the delete transaction before the row is removed.
type RelationReleaser interface {
	ReleaseRelations(tx *gorm.DB, id uint) error
}

// Ref is the {"id": n} form used to reference another entity on write.
type Ref struct {
	ID uint `json:"id"`
}

// RequireRows checks that every id exists in table.
func RequireRows(tx *gorm.DB, table string, ids ...uint) error {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return nil
	}
	var count int64
	if err := tx.Table(table).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(unique)) {
		return fmt.Errorf("%w: %s %v", ErrMissingReference, table, unique)
	}
	return nil
}

// RequireRow checks an optional foreign id.
func RequireRow(tx *gorm.DB, table string, id *uint) error {
	if id == nil {
		return nil
	}
	return RequireRows(tx, table, *id)
}

// Link describes a join table between an owner and its targets.
type Link struct {
	Table        string
	OwnerColumn  string
	TargetTable  string
	TargetColumn string
}

// Replace rewrites the join rows of owner so that it links exactly targets.
func (l Link) Replace(tx *gorm.DB, owner uint, targets []uint) error {
	targets = dedupe(targets)
	if err := RequireRows(tx, l.TargetTable, targets...); err != nil {
		return err
	}
	if err := l.Release(tx, owner); err != nil {
		return err
	}
	if len(targets) == 0 {
		return nil
	}
	values := make([]string, 0, len(targets))
	args := make([]interface{}, 0, 2*len(targets))
	for _, t := range targets {
		values = append(values, "(?, ?)")
		args = append(args, owner, t)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES %s",
		l.Table, l.OwnerColumn, l.TargetColumn, strings.Join(values, ", "))
	return tx.Exec(query, args...).Error
}

// Reverse returns the same join table seen from the target side.
func (l Link) Reverse(ownerTable string) Link {
	return Link{Table: l.Table, OwnerColumn: l.TargetColumn, TargetTable: ownerTable, TargetColumn: l.OwnerColumn}
}

// Release removes every join row of owner.
func (l Link) Release(tx *gorm.DB, owner uint) error {
	return tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", l.Table, l.OwnerColumn), owner).Error
}

// NullOut clears column on every row of table that points at id.
func NullOut(tx *gorm.DB, table, column string, id uint) error {
	return tx.Exec(fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = ?", table, column, column), id).Error
}

func dedupe(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
