package proxyhost

import "path/filepath"

const (
	// ModeContainer patches files inside the proxy manager container with sed.
	ModeContainer = "container"
	// ModeFile patches files on a host-mounted volume.
	ModeFile = "file"
	// ModeNone disables patching and reload.
	ModeNone = "none"
)

// Config holds configuration for proxy host configuration patching.
type Config struct {
	// Mode selects the patcher (container, file, none).
	Mode string `mapstructure:"mode" default:"container"`
	// Dir is the directory holding the generated proxy host files.
	Dir string `mapstructure:"dir" default:"/data/nginx/proxy_host"`
	// Pattern selects the files to patch within Dir.
	Pattern string `mapstructure:"pattern" default:"*"`
	// Reload signals nginx after an address changed.
	Reload bool `mapstructure:"reload" default:"true"`
}

// Glob returns the file pattern to patch.
func (c Config) Glob() string {
	pattern := c.Pattern
	if pattern == "" {
		pattern = "*"
	}
	return filepath.Join(c.Dir, pattern)
}
