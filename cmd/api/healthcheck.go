package main

import (
	"fmt"
	"time"

	"dining-calendar/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

var (
	healthURL     string
	healthTimeout time.Duration
)

// healthcheck sirve como HEALTHCHECK de contenedor: exit != 0 si /health no responde ok.
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe a running server's /health endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		base := healthURL
		if base == "" {
			base = fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
		}

		c, err := httpclient.New(base, healthTimeout)
		if err != nil {
			return err
		}

		var out struct {
			Status string `json:"status"`
		}
		if err := c.GetJSON(cmd.Context(), "/health", &out); err != nil {
			return fmt.Errorf("healthcheck: %w", err)
		}
		if out.Status != "ok" {
			return fmt.Errorf("healthcheck: unexpected status %q", out.Status)
		}

		log.Debug("healthcheck ok", map[string]any{"url": base})
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthURL, "url", "", "base URL of the server (default http://127.0.0.1:<server.port>)")
	healthcheckCmd.Flags().DurationVar(&healthTimeout, "timeout", 3*time.Second, "request timeout")
	rootCmd.AddCommand(healthcheckCmd)
}
