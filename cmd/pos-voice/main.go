package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/config"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pos-voice",
	Short: "Voice-driven point-of-sale order taking",
	Long: `pos-voice runs the order and catalog API, a voice order terminal and the
status notification subscriber.

A terminal reads finalized speech transcripts (one per line on stdin) and
turns phrases such as "add two pepperoni", "remove cola",
"customer name Ada", "set status to ready" and "submit the order" into
edits of the current order draft.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, listenCmd, interpretCmd, notifyCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
