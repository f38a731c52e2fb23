package cmd

import (
	"fmt"
	"os"

	"allowlist-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory holding the optional .env file.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "allowlist-sync",
	Short: "Keep Nginx Proxy Manager allowlists in sync with DNS",
	Long: `allowlist-sync keeps the IP allowlist entries of Nginx Proxy Manager
pointed at the current address of their domain names. Entries whose domain
was cleared in the UI are restored from a local snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with timestamps, whatever the configured format
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
}
