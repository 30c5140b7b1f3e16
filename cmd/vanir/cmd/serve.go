package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanir-db/vanir/pkg/api"
	"github.com/vanir-db/vanir/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Vanir REST API server. The server exposes the state
store under /api/v1/state with API key authentication and Prometheus
metrics at /metrics.

Examples:
  vanir serve --api-key=mysecretkey --port=8080
  vanir serve --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")

		// Fall back to the bootstrapped config for the API key, bind
		// address, and port; explicit flags win.
		if configPath := config.GetDefaultConfigPath(); config.ConfigExists(configPath) {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if apiKey == "" {
				apiKey = cfg.Security.APIKey
			}
			if !cmd.Flags().Changed("port") && cfg.Port != 0 {
				port = cfg.Port
			}
			if !cmd.Flags().Changed("bind") && cfg.Bind != "" {
				bind = cfg.Bind
			}
		}
		if apiKey == "" {
			return fmt.Errorf("--api-key is required (or run 'vanir init' first)")
		}

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		router := container.GetRouterFactory()(s, api.ServerConfig{
			APIKey: apiKey,
		})

		return api.StartServer(fmt.Sprintf("%s:%d", bind, port), router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
}
