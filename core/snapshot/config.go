package snapshot

const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config holds configuration for snapshot persistence.
type Config struct {
	// Backend selects where the snapshot lives (file, s3).
	Backend string `mapstructure:"backend" default:"file"`
	// Path is the snapshot file for the file backend.
	Path string `mapstructure:"path" default:"allowlist-snapshot.json"`
	// Object is the object name for the s3 backend; the bucket comes from storage config.
	Object string `mapstructure:"object" default:"snapshots/allowlist.json"`
}
