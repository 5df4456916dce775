package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/annrecall"
	"github.com/hupe1980/annrecall/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "annrecall",
		Short: "annrecall - recall evaluation for approximate nearest-neighbor search",
		Long: `annrecall measures how much of the exact k-NN neighborhood an external
approximate search system actually returns.

Run 'annrecall groundtruth' to compute the exact reference once,
then 'annrecall evaluate' to score approximate results against it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")

	rootCmd.AddCommand(
		groundTruthCmd(),
		evaluateCmd(),
		embedCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("annrecall %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func buildLogger(cfg *config.Config) *annrecall.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	if cfg.Log.Format == "json" {
		return annrecall.NewJSONLogger(level)
	}
	return annrecall.NewTextLogger(level)
}

func buildEvaluator(cfg *config.Config) (*annrecall.Evaluator, error) {
	metric, err := cfg.ParsedMetric()
	if err != nil {
		return nil, err
	}

	return annrecall.New(metric, cfg.K,
		annrecall.WithEpsilon(float32(cfg.Epsilon)),
		annrecall.WithLogger(buildLogger(cfg)),
	)
}
