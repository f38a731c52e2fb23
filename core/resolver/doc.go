// Package resolver resolves allowlist domains to IPv4 addresses.
//
// Lookups follow the host's resolver configuration: the hosts file is checked
// first, then A queries are sent with miekg/dns for every candidate produced by
// the resolv.conf search list and ndots option, in the order libc would try them.
package resolver
