package cmd

import (
	"errors"
	"fmt"
	"os"

	"allowlist-sync/core/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect the IP to domain snapshot",
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadSettings()
		if err != nil {
			return err
		}
		defer l.Sync()

		store, err := newSnapshotStore(cfg)
		if err != nil {
			return err
		}

		snap, err := store.Load(cmd.Context())
		if err != nil {
			if !errors.Is(err, snapshot.ErrCorrupt) {
				return err
			}
			l.Warn("Snapshot is unreadable", zap.Error(err))
		}

		data, err := snapshot.Encode(snap)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotShowCmd)
	RootCmd.AddCommand(snapshotCmd)
}
