// Package container talks to the container runtime hosting the proxy manager.
//
// The Runtime interface covers the three things the sync tooling needs from the
// container: whether it exists, its environment (for database credentials) and
// running commands inside it (config patching, nginx reload). Docker implements
// it against the Docker Engine API; mocks.Runtime is used in tests.
package container
