package accesslist

import (
	"context"
	"net/netip"
	"testing"

	"allowlist-sync/core/resolver"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// createTable mirrors the proxy manager schema without the domain column.
const createTable = `CREATE TABLE access_list_client (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	access_list_id INTEGER NOT NULL DEFAULT 0,
	address VARCHAR(255),
	directive VARCHAR(255) NOT NULL DEFAULT 'allow'
)`

func setupSQLite(t *testing.T, withDomain bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec(createTable).Error; err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	if withDomain {
		if err := db.Exec("ALTER TABLE access_list_client ADD COLUMN domain VARCHAR(255)").Error; err != nil {
			t.Fatalf("Failed to add domain column: %v", err)
		}
	}
	return db
}

func insertRow(t *testing.T, db *gorm.DB, id int, domain, address any) {
	t.Helper()
	err := db.Exec("INSERT INTO access_list_client (id, domain, address) VALUES (?, ?, ?)", id, domain, address).Error
	if err != nil {
		t.Fatalf("Failed to insert row: %v", err)
	}
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type fakeResolver map[string]string

func (f fakeResolver) LookupIPv4(ctx context.Context, domain string) (netip.Addr, error) {
	ip, ok := f[domain]
	if !ok {
		return netip.Addr{}, resolver.ErrNotFound
	}
	return netip.MustParseAddr(ip), nil
}
