package resolver

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strings"
)

// readHosts loads the IPv4 entries of a hosts file keyed by lower-cased name.
// The first entry of a name wins. A missing file yields an empty table.
func readHosts(path string) (map[string]netip.Addr, error) {
	hosts := make(map[string]netip.Addr)
	if path == "" {
		return hosts, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return hosts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		addr, err := netip.ParseAddr(fields[0])
		if err != nil || !addr.Unmap().Is4() {
			continue
		}
		for _, name := range fields[1:] {
			key := hostsKey(name)
			if _, ok := hosts[key]; !ok {
				hosts[key] = addr.Unmap()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return hosts, nil
}

func hostsKey(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
}
