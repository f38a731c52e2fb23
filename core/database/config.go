package database

const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	// SourceContainer reads credentials from the proxy manager container environment.
	SourceContainer = "container"
	// SourceConfig uses the values of this Config as-is.
	SourceConfig = "config"
)

// Config holds configuration for the database connection.
type Config struct {
	// Source selects where credentials come from (container, config).
	Source string `mapstructure:"source" default:"container"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// HostOverride replaces the host read from the container environment.
	// The container usually refers to its database by a network-internal name.
	HostOverride string `mapstructure:"host_override" default:""`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (file path for sqlite).
	Name string `mapstructure:"name" default:"npm"`
	// Driver is the database driver (mysql, sqlite, postgres).
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connection setup and each read/write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
