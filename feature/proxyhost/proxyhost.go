package proxyhost

import (
	"fmt"

	"allowlist-sync/core/container"
	"allowlist-sync/core/reconcile"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// New returns the patcher and reloader selected by cfg. Either may be nil.
// rt may be nil when the proxy manager runs without a reachable container.
func New(cfg Config, rt container.Runtime, containerName string, fs afero.Fs, logger *zap.Logger) (reconcile.Patcher, reconcile.Reloader, error) {
	hasContainer := rt != nil && containerName != ""

	var patcher reconcile.Patcher
	switch cfg.Mode {
	case ModeContainer:
		if !hasContainer {
			return nil, nil, fmt.Errorf("proxy mode %q requires a container", cfg.Mode)
		}
		patcher = NewContainerPatcher(rt, containerName, cfg)
	case ModeFile:
		patcher = NewFilePatcher(fs, cfg, logger)
	case ModeNone, "":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported proxy mode: %s", cfg.Mode)
	}

	var reloader reconcile.Reloader
	if cfg.Reload && hasContainer {
		reloader = NewContainerReloader(rt, containerName)
	}

	return patcher, reloader, nil
}
