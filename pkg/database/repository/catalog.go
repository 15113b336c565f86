package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/database/models"
)

const batchSize = 200

var (
	_ catalog.Store = (*CatalogRepository)(nil)
	_ catalog.Sink  = (*CatalogRepository)(nil)
)

// CatalogRepository stores the reference dataset and lookup lists. It
// serves catalog.DatabaseSource and receives catalog.Synchronizer output.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListEntries returns every stored entry in insertion order.
func (r *CatalogRepository) ListEntries(ctx context.Context) ([]catalog.Entry, error) {
	var rows []models.Creature
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Data)
	}
	return entries, nil
}

// ListItems returns one lookup list in insertion order.
func (r *CatalogRepository) ListItems(ctx context.Context, kind catalog.ListKind) ([]catalog.LookupItem, error) {
	var rows []models.LookupItem
	err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]catalog.LookupItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, catalog.LookupItem{ID: row.ItemID, Name: row.Name})
	}
	return items, nil
}

// ReplaceEntries swaps the stored dataset for entries in one transaction.
func (r *CatalogRepository) ReplaceEntries(ctx context.Context, entries []catalog.Entry) error {
	rows := make([]models.Creature, 0, len(entries))
	for i, entry := range entries {
		name := entry.CNName.Value
		if name == "" {
			name = entry.ENGName.Value
		}
		rows = append(rows, models.Creature{
			No:       entry.No.Value,
			Name:     name,
			Position: i,
			Data:     entry,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Creature{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
}

// ReplaceItems swaps one stored lookup list for items in one transaction.
func (r *CatalogRepository) ReplaceItems(ctx context.Context, kind catalog.ListKind, items []catalog.LookupItem) error {
	rows := make([]models.LookupItem, 0, len(items))
	for i, item := range items {
		rows = append(rows, models.LookupItem{
			Kind:     string(kind),
			ItemID:   item.ID,
			Name:     item.Name,
			Position: i,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ?", string(kind)).Delete(&models.LookupItem{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
}

// CountEntries returns the number of stored entries.
func (r *CatalogRepository) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Creature{}).Count(&count).Error
	return count, err
}

// CountItems returns the number of stored rows per lookup list.
func (r *CatalogRepository) CountItems(ctx context.Context) (map[catalog.ListKind]int64, error) {
	counts := make(map[catalog.ListKind]int64, len(catalog.ListKinds))
	for _, kind := range catalog.ListKinds {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.LookupItem{}).
			Where("kind = ?", string(kind)).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, nil
}
