package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"allowlist-sync/feature/accesslist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// yesConfirm skips the interactive confirmation of column drop.
var yesConfirm bool

// columnCmd is the parent command for the domain column lifecycle.
var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage the domain column of access_list_client",
	Long: `The proxy manager schema has no place for the domain an allowlist address
comes from. sync adds a "domain" column on first run; these commands manage it
explicitly.`,
}

var columnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add the domain column if it is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withColumns(cmd.Context(), func(l *zap.Logger, m *accesslist.ColumnManager) error {
			added, err := m.Ensure(cmd.Context())
			if err != nil {
				return err
			}
			if added {
				l.Info("Domain column added")
			} else {
				l.Info("Domain column already exists")
			}
			return nil
		})
	},
}

var columnDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the domain column if it exists",
	Long: `Drop the domain column. Every domain stored in the proxy manager is lost;
the snapshot file is left alone.

Examples:
  # Drop without prompting
  allowlist-sync column drop --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withColumns(cmd.Context(), func(l *zap.Logger, m *accesslist.ColumnManager) error {
			exists, err := m.Exists(cmd.Context())
			if err != nil {
				return err
			}
			if !exists {
				l.Info("Domain column does not exist")
				return nil
			}

			if !confirmDestructiveAction(os.Stdin) {
				l.Warn("Operation cancelled by user. No changes were made.")
				return nil
			}

			dropped, err := m.Drop(cmd.Context())
			if err != nil {
				return err
			}
			if dropped {
				l.Info("Domain column dropped")
			}
			return nil
		})
	},
}

var columnStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the domain column exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withColumns(cmd.Context(), func(l *zap.Logger, m *accesslist.ColumnManager) error {
			exists, err := m.Exists(cmd.Context())
			if err != nil {
				return err
			}
			l.Info("Domain column status", zap.Bool("exists", exists))
			return nil
		})
	},
}

func init() {
	columnDropCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")

	columnCmd.AddCommand(columnAddCmd, columnDropCmd, columnStatusCmd)
	RootCmd.AddCommand(columnCmd)
}

// withColumns opens the target and hands a column manager to fn.
// A missing container is a no-op.
func withColumns(ctx context.Context, fn func(l *zap.Logger, m *accesslist.ColumnManager) error) error {
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

	return fn(l, accesslist.NewColumnManager(t.db))
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to drop the domain column: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
