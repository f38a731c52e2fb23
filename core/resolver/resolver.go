package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// ErrNotFound is returned when a name has no IPv4 address.
var ErrNotFound = errors.New("no IPv4 address found")

// Resolver resolves a domain name to a single IPv4 address.
type Resolver interface {
	LookupIPv4(ctx context.Context, domain string) (netip.Addr, error)
}

// DNS queries nameservers directly for A records.
type DNS struct {
	udp     *dns.Client
	tcp     *dns.Client
	servers []string
	search  *dns.ClientConfig
	hosts   map[string]netip.Addr
}

var _ Resolver = (*DNS)(nil)

// New creates a DNS resolver from the configuration.
func New(cfg Config) (*DNS, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	var servers []string
	for _, s := range strings.Split(cfg.Servers, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(s, "53")
		}
		servers = append(servers, s)
	}

	var conf *dns.ClientConfig
	if cfg.ResolvConf != "" {
		c, err := dns.ClientConfigFromFile(cfg.ResolvConf)
		if err != nil && len(servers) == 0 {
			return nil, fmt.Errorf("error reading %s: %w", cfg.ResolvConf, err)
		}
		conf = c
	}

	if len(servers) == 0 && conf != nil {
		for _, s := range conf.Servers {
			servers = append(servers, net.JoinHostPort(s, conf.Port))
		}
	}
	if len(servers) == 0 {
		return nil, errors.New("no nameservers configured")
	}

	hosts, err := readHosts(cfg.HostsFile)
	if err != nil {
		return nil, err
	}

	d := time.Duration(timeout) * time.Second
	return &DNS{
		udp:     &dns.Client{Net: "udp", Timeout: d},
		tcp:     &dns.Client{Net: "tcp", Timeout: d},
		servers: servers,
		search:  conf,
		hosts:   hosts,
	}, nil
}

// Servers returns the nameservers queried, in order.
func (r *DNS) Servers() []string {
	return r.servers
}

// LookupIPv4 returns the IPv4 address of domain. IPv4 literals are returned
// as-is and hosts file entries win over DNS. Otherwise every search candidate
// is queried in turn and the first A record found is returned, following CNAMEs
// present in the answer section.
func (r *DNS) LookupIPv4(ctx context.Context, domain string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(domain); err == nil && addr.Is4() {
		return addr, nil
	}
	if addr, ok := r.hosts[hostsKey(domain)]; ok {
		return addr, nil
	}

	var lastErr error
	for _, name := range r.candidates(domain) {
		addr, err := r.query(ctx, name)
		if err == nil {
			return addr, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return netip.Addr{}, ctxErr
		}
		lastErr = err
	}
	return netip.Addr{}, lastErr
}

// candidates lists the fully qualified names to try for domain.
func (r *DNS) candidates(domain string) []string {
	if r.search == nil {
		return []string{dns.Fqdn(domain)}
	}
	return r.search.NameList(domain)
}

// query asks the nameservers for the A record of one fully qualified name,
// moving to the next server until one gives a definitive answer.
func (r *DNS) query(ctx context.Context, name string) (netip.Addr, error) {
	m := new(dns.Msg)
	m.SetQuestion(name, dns.TypeA)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		if err := ctx.Err(); err != nil {
			return netip.Addr{}, err
		}

		resp, _, err := r.udp.ExchangeContext(ctx, m, server)
		if err == nil && resp.Truncated {
			resp, _, err = r.tcp.ExchangeContext(ctx, m, server)
		}
		if err != nil {
			lastErr = fmt.Errorf("query %s for %s failed: %w", server, name, err)
			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
		case dns.RcodeNameError:
			return netip.Addr{}, fmt.Errorf("%s: %w (NXDOMAIN)", name, ErrNotFound)
		default:
			lastErr = fmt.Errorf("query %s for %s: %s", server, name, dns.RcodeToString[resp.Rcode])
			continue
		}

		for _, ans := range resp.Answer {
			if a, ok := ans.(*dns.A); ok {
				if addr, ok := netip.AddrFromSlice(a.A.To4()); ok {
					return addr, nil
				}
			}
		}
		return netip.Addr{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	return netip.Addr{}, lastErr
}
