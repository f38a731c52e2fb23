package config

import (
	"reflect"
	"strings"

	"allowlist-sync/core/container"
	"allowlist-sync/core/database"
	"allowlist-sync/core/logger"
	"allowlist-sync/core/resolver"
	"allowlist-sync/core/server"
	"allowlist-sync/core/snapshot"
	"allowlist-sync/core/storage"
	"allowlist-sync/feature/proxyhost"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the proxy manager database.
	Database database.Config `mapstructure:"database"`
	// Container holds configuration for the proxy manager container.
	Container container.Config `mapstructure:"container"`
	// Resolver holds configuration for DNS lookups.
	Resolver resolver.Config `mapstructure:"resolver"`
	// Snapshot holds configuration for snapshot persistence.
	Snapshot snapshot.Config `mapstructure:"snapshot"`
	// Storage holds configuration for the object storage used by the s3 snapshot backend.
	Storage storage.Config `mapstructure:"storage"`
	// Proxy holds configuration for proxy host patching and reload.
	Proxy proxyhost.Config `mapstructure:"proxy"`
}

// LoadConfig loads configuration from environment variables and a .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Missing .env is fine, everything has a default
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SNAPSHOT_PATH -> snapshot.path
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every 'mapstructure' key in Viper with
// the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registered even when empty so AutomaticEnv picks the key up
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
