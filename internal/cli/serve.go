package cli

import (
	"github.com/spf13/cobra"

	"github.com/pflegedesk/pflegedesk/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Listen host (overrides config)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides config)")
	serveCmd.Flags().Bool("no-metrics", false, "Disable the /metrics endpoint")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pflegedesk HTTP API",
	Long:  `Start the daemon: open the store, wire registry and ledger, serve the HTTP API.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.API.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.API.Port = port
	}
	if noMetrics, _ := cmd.Flags().GetBool("no-metrics"); noMetrics {
		cfg.API.EnableMetrics = false
	}
	if flagDataDir != "" {
		cfg.Storage.Dir = flagDataDir
	}

	return daemon.Run(cfg)
}
