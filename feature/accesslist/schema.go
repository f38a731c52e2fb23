package accesslist

import (
	"context"
	"fmt"

	"allowlist-sync/core/database"
	"allowlist-sync/feature/accesslist/models"

	"gorm.io/gorm"
)

// ColumnManager adds and removes the domain column on the allowlist table.
// The proxy manager does not ship this column; the sync needs it.
type ColumnManager struct {
	db     *gorm.DB
	table  string
	column string
}

// NewColumnManager creates a manager for access_list_client.domain.
func NewColumnManager(db *gorm.DB) *ColumnManager {
	return &ColumnManager{db: db, table: models.TableName, column: models.DomainColumn}
}

// Exists reports whether the domain column is present.
func (m *ColumnManager) Exists(ctx context.Context) (bool, error) {
	return database.ColumnExists(ctx, m.db, m.table, m.column)
}

// Ensure adds the column when missing and reports whether it did.
func (m *ColumnManager) Ensure(ctx context.Context) (bool, error) {
	exists, err := m.Exists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s VARCHAR(255)",
		database.QuoteIdent(m.db, m.table), database.QuoteIdent(m.db, m.column))
	if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return false, fmt.Errorf("failed to add column %s.%s: %w", m.table, m.column, err)
	}
	return true, nil
}

// Drop removes the column when present and reports whether it did.
func (m *ColumnManager) Drop(ctx context.Context) (bool, error) {
	exists, err := m.Exists(ctx)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
		database.QuoteIdent(m.db, m.table), database.QuoteIdent(m.db, m.column))
	if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return false, fmt.Errorf("failed to drop column %s.%s: %w", m.table, m.column, err)
	}
	return true, nil
}
