package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanir-db/vanir/pkg/config"
	"github.com/vanir-db/vanir/pkg/di"
	"github.com/vanir-db/vanir/pkg/store"
)

// storeCtxKey keys the opened state store in the command context.
type storeCtxKey struct{}

var container *di.Container

// SetContainer injects the dependency container. Must be called before
// Execute.
func SetContainer(c *di.Container) {
	container = c
}

// storeFromContext returns the state store opened by the root command.
func storeFromContext(cmd *cobra.Command) (*store.StateStore, error) {
	s, ok := cmd.Context().Value(storeCtxKey{}).(*store.StateStore)
	if !ok {
		return nil, fmt.Errorf("store not found in context")
	}
	return s, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vanir",
	Short: "Vanir - schema-driven state store",
	Long: `Vanir is an ordered state store with a schema-directed binary codec
and order-preserving composite keys.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never touch the store skip opening it.
		switch cmd.Name() {
		case "init", "key":
			return nil
		}

		dataDir, _ := cmd.Flags().GetString("data-dir")
		syncWrites, _ := cmd.Flags().GetBool("sync")
		fsyncInterval, _ := cmd.Flags().GetDuration("fsync-interval")

		// The bootstrapped config file supplies defaults; explicit flags win.
		if configPath := config.GetDefaultConfigPath(); config.ConfigExists(configPath) {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cmd.Flags().Changed("data-dir") && cfg.DataDir != "" {
				dataDir = cfg.DataDir
			}
			if !cmd.Flags().Changed("sync") {
				syncWrites = cfg.Storage.SyncWrites
			}
			if !cmd.Flags().Changed("fsync-interval") {
				fsyncInterval = cfg.Storage.FsyncInterval
			}
		}

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		s, err := container.GetStoreFactory()(store.Config{
			DataDir:       dataDir,
			SyncWrites:    syncWrites,
			FsyncInterval: fsyncInterval,
		})
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), storeCtxKey{}, s))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if s, err := storeFromContext(cmd); err == nil {
			return s.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the store")
	rootCmd.PersistentFlags().Bool("sync", false, "Fsync every write")
	rootCmd.PersistentFlags().Duration("fsync-interval", 0, "Minimum interval between WAL syncs (0 leaves pebble's default)")
}
