package resolver

// Config holds configuration for DNS resolution.
type Config struct {
	// Servers is a comma separated list of host[:port] nameservers.
	// Empty means the nameservers listed in ResolvConf.
	Servers string `mapstructure:"servers" default:""`
	// ResolvConf supplies the search list and ndots, and the nameservers when
	// Servers is empty. A missing file is only an error when it must supply nameservers.
	ResolvConf string `mapstructure:"resolv_conf" default:"/etc/resolv.conf"`
	// HostsFile is consulted before any query. Empty disables it.
	HostsFile string `mapstructure:"hosts_file" default:"/etc/hosts"`
	// TimeoutSeconds bounds a single query to one server.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
