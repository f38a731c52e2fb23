package proxyhost

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"regexp"
	"strings"

	"allowlist-sync/core/container"
	"allowlist-sync/core/reconcile"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ContainerPatcher rewrites proxy host files inside the proxy manager container with sed.
type ContainerPatcher struct {
	runtime   container.Runtime
	container string
	cfg       Config
}

var _ reconcile.Patcher = (*ContainerPatcher)(nil)

// NewContainerPatcher creates a patcher running in the named container.
func NewContainerPatcher(rt container.Runtime, name string, cfg Config) *ContainerPatcher {
	return &ContainerPatcher{runtime: rt, container: name, cfg: cfg}
}

// ApplyAddressChange replaces oldAddr with newAddr in every matching file.
// An empty directory is not an error.
func (p *ContainerPatcher) ApplyAddressChange(ctx context.Context, oldAddr, newAddr string) error {
	script, err := sedScript(p.cfg, oldAddr, newAddr)
	if err != nil {
		return err
	}

	res, err := p.runtime.Exec(ctx, p.container, []string{"sh", "-c", script})
	if err != nil {
		return fmt.Errorf("failed to run sed in %s: %w", p.container, err)
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("sed failed in %s: %w", p.container, err)
	}
	return nil
}

// sedScript builds the shell script for one address swap. Both addresses must be
// IPv4 literals, which keeps the script free of shell and sed metacharacters.
func sedScript(cfg Config, oldAddr, newAddr string) (string, error) {
	if err := checkIPv4(oldAddr, newAddr); err != nil {
		return "", err
	}

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "*"
	}
	expr := fmt.Sprintf(`s/\b%s\b/%s/g`, strings.ReplaceAll(oldAddr, ".", `\.`), newAddr)

	return fmt.Sprintf(`set -- %s/%s; [ -e "$1" ] || exit 0; sed -i '%s' "$@"`,
		shellQuote(strings.TrimRight(cfg.Dir, "/")), pattern, expr), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func checkIPv4(addrs ...string) error {
	for _, a := range addrs {
		ip, err := netip.ParseAddr(a)
		if err != nil || !ip.Is4() {
			return fmt.Errorf("not an IPv4 address: %q", a)
		}
	}
	return nil
}

// FilePatcher rewrites proxy host files on a filesystem visible to this process,
// typically the host side of the proxy manager's data volume.
type FilePatcher struct {
	fs     afero.Fs
	glob   string
	logger *zap.Logger
}

var _ reconcile.Patcher = (*FilePatcher)(nil)

// NewFilePatcher creates a patcher for the files matching cfg.Glob() on fs.
func NewFilePatcher(fs afero.Fs, cfg Config, logger *zap.Logger) *FilePatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilePatcher{fs: fs, glob: cfg.Glob(), logger: logger}
}

// ApplyAddressChange replaces oldAddr with newAddr in every matching file.
// All files are attempted; failures are combined into one error.
func (p *FilePatcher) ApplyAddressChange(ctx context.Context, oldAddr, newAddr string) error {
	if err := checkIPv4(oldAddr, newAddr); err != nil {
		return err
	}

	files, err := afero.Glob(p.fs, p.glob)
	if err != nil {
		return fmt.Errorf("invalid pattern %s: %w", p.glob, err)
	}

	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldAddr) + `\b`)

	var errs error
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		changed, err := p.patchFile(name, re, newAddr)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if changed {
			p.logger.Debug("Proxy host file patched", zap.String("file", name))
		}
	}
	return errs
}

func (p *FilePatcher) patchFile(name string, re *regexp.Regexp, newAddr string) (bool, error) {
	info, err := p.fs.Stat(name)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}

	data, err := afero.ReadFile(p.fs, name)
	if err != nil {
		return false, err
	}

	out := re.ReplaceAll(data, []byte(newAddr))
	if string(out) == string(data) {
		return false, nil
	}

	if err := afero.WriteFile(p.fs, name, out, info.Mode()&os.ModePerm); err != nil {
		return false, err
	}
	return true, nil
}
