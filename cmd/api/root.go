package main

import (
	"fmt"
	"os"

	"dining-calendar/internal/config"
	"dining-calendar/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
	log logger.Logger = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "dining-calendar",
	Short: "Dining events API",
	Long: `Servicio HTTP para registrar comidas (fecha, lugar, costo,
participantes, calificación e imagen).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.InitConfig(cfgFile); err != nil {
			return err
		}

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		// los flags ganan sobre archivo/env solo si se pasaron
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = logFormat
		}

		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    cfg.App.Name,
			Output: os.Stderr,
		})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")
}
