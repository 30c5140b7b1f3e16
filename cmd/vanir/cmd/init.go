package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanir-db/vanir/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a configuration with a generated API key",
	Long: `Create the Vanir configuration file with a freshly generated API
key. Refuses to overwrite an existing configuration.

Example:
  vanir init --data-dir=/var/lib/vanir`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		dataDir, _ := cmd.Flags().GetString("data-dir")

		if config.ConfigExists(configPath) {
			return fmt.Errorf("config already exists at %s", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration written to %s\n", configPath)
		fmt.Printf("Data directory: %s\n", cfg.DataDir)
		fmt.Printf("API key: %s\n", cfg.Security.APIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", "", "Path to write the configuration to")
}
