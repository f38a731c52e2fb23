package cmd

import (
	"errors"
	"fmt"

	"allowlist-sync/feature/accesslist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dryRunSync plans the pass without committing anything.
var dryRunSync bool

// syncCmd runs one reconciliation pass.
var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"reconcile"},
	Short:   "Run one reconciliation pass",
	Long: `Restore domains cleared in the proxy manager from the snapshot, resolve every
domain, move addresses that changed, patch the proxy host files and reload nginx.

Meant to be run periodically, e.g. from cron:
  */5 * * * * allowlist-sync sync

Examples:
  # Show what would change
  allowlist-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, change nothing")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := loadSettings()
	if err != nil {
		return err
	}
	defer l.Sync()

	t, err := openTarget(ctx, cfg, l)
	if errors.Is(err, errContainerAbsent) {
		l.Warn("Proxy manager container not found, nothing to do", zap.String("container", cfg.Container.Name))
		return nil
	}
	if err != nil {
		return err
	}
	defer t.Close()

	svc, err := newService(cfg, t, l)
	if err != nil {
		return err
	}

	report, err := svc.Run(ctx, dryRunSync)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	printRunReport(l, report)
	return nil
}

// printRunReport logs the outcome of a pass.
func printRunReport(l *zap.Logger, report *accesslist.RunReport) {
	s := report.Summary

	l.Info("Reconciliation report",
		zap.Int("total_entries", s.TotalEntries),
		zap.Int("restored", s.Restored),
		zap.Int("address_changes", s.AddressChanges),
		zap.Int("resolve_failures", s.ResolveFailures),
		zap.Int("purged", s.Purged),
	)

	if report.DryRun {
		if report.Plan != nil {
			for _, change := range report.Plan.AddressChanges {
				l.Info("Planned address change",
					zap.Uint("id", change.EntryID),
					zap.String("domain", change.Domain),
					zap.String("old_ip", change.OldIP),
					zap.String("new_ip", change.NewIP),
				)
			}
		}
		l.Info("Dry-run mode: No changes were made.")
		return
	}

	if r := report.Result; r != nil && (len(r.PatchErrors) > 0 || r.ReloadError != "") {
		l.Warn("Proxy side effects incomplete",
			zap.Int("patch_errors", len(r.PatchErrors)),
			zap.String("reload_error", r.ReloadError),
		)
	}
}
