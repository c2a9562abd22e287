package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domtree/fathom/internal/config"
	"github.com/domtree/fathom/internal/log"
)

var configPath string

var cfg *config.TuneConfig

func main() {
	rootCmd := &cobra.Command{
		Use:   "fathomtune",
		Short: "Tune and inspect a document-extraction ruleset's scoring coefficients",
		Long: `fathomtune trains the coefficients of a demonstration content-block
ruleset against a labeled corpus of HTML fixtures using simulated
annealing, previews how a ruleset clusters candidate elements on a
single document, and validates a tuned coefficient set's accuracy.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = loaded
			if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (optional)")

	rootCmd.AddCommand(newTuneCmd())
	rootCmd.AddCommand(newClusterPreviewCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
