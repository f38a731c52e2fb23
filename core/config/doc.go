// Package config provides configuration management for allowlist-sync.
//
// Values come from environment variables, optionally loaded from a .env file.
// Defaults are declared with `default:"..."` tags on each section and registered
// in Viper by reflection, so every key can be overridden by its upper-cased env
// name (database.host_override -> DATABASE_HOST_OVERRIDE).
//
// # Sections
//
//   - Server: HTTP port, API key and background sync interval
//   - Log: level and encoding
//   - Database: credential source and connection details
//   - Container: proxy manager container name and Docker host
//   - Resolver: nameservers and timeouts
//   - Snapshot: backend (file, s3), path and object name
//   - Storage: S3/MinIO credentials for the s3 snapshot backend
//   - Proxy: proxy host patch mode, directory and reload switch
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Snapshot.Path)
package config
