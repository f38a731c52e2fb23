package accesslist

import (
	"context"
	"fmt"

	"allowlist-sync/core/reconcile"
	"allowlist-sync/feature/accesslist/models"

	"gorm.io/gorm"
)

// Repository reads and writes allowlist rows.
type Repository struct {
	db *gorm.DB
}

var _ reconcile.EntryStore = (*Repository)(nil)

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LoadEntries returns every row ordered by ID.
func (r *Repository) LoadEntries(ctx context.Context) ([]reconcile.Entry, error) {
	var rows []models.AccessListClient
	err := r.db.WithContext(ctx).
		Select("id", models.DomainColumn, models.AddressColumn).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", models.TableName, err)
	}

	entries := make([]reconcile.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.ToEntry())
	}
	return entries, nil
}

// ApplyUpdates writes all updates in one transaction.
func (r *Repository) ApplyUpdates(ctx context.Context, updates []reconcile.EntryUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			values := make(map[string]any, 2)
			if u.Domain != nil {
				values[models.DomainColumn] = models.Nullable(*u.Domain)
			}
			if u.Address != nil {
				values[models.AddressColumn] = models.Nullable(*u.Address)
			}
			if len(values) == 0 {
				continue
			}

			err := tx.Model(&models.AccessListClient{}).
				Where("id = ?", u.ID).
				Updates(values).Error
			if err != nil {
				return fmt.Errorf("failed to update entry %d: %w", u.ID, err)
			}
		}
		return nil
	})
}
