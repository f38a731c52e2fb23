package container

// Config holds configuration for the proxy manager container.
type Config struct {
	// Name is the container running the proxy manager. Empty disables container integration.
	Name string `mapstructure:"name" default:"npm"`
	// Host is the Docker daemon address. Empty uses DOCKER_HOST or the default socket.
	Host string `mapstructure:"host" default:""`
	// TimeoutSeconds bounds every call to the Docker daemon.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
