package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"juntell/careers-gateway/cmd/configs"
	"juntell/careers-gateway/internal/logger"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Careers gateway: application intake and upload URLs behind a rate limiter",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the optional .env file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rateLimitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfigs() (*configs.Config, *zap.Logger, error) {
	config, err := configs.LoadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(config.Environment, config.LogLevel, config.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return config, log, nil
}
