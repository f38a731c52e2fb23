// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL, Postgres or SQLite connections, the three
// backends the proxy manager can run on. Credentials either come straight from
// Config or are extracted from the proxy manager container environment with
// FromEnv.
//
// # Schema Inspection
//
// GetTableColumns and ColumnExists let callers verify optional columns before
// they add or drop them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("database connection failed: %w", err)
//	}
//
//	ok, err := database.ColumnExists(ctx, db, "access_list_client", "domain")
package database
