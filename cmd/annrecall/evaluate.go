package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/annrecall"
	"github.com/hupe1980/annrecall/config"
	"github.com/hupe1980/annrecall/dataset"
	"github.com/hupe1980/annrecall/model"
	"github.com/hupe1980/annrecall/searcher"
	"github.com/hupe1980/annrecall/searcher/qdrant"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score approximate search results against exact ground truth",
		Long: `Score per-query identifier lists from an approximate search system
against the exact k-NN reference and report recall.

Approximate results come either from a results file (--results) or from a
live Qdrant query per input vector when no results file is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			trainPath, _ := cmd.Flags().GetString("train")
			queriesPath, _ := cmd.Flags().GetString("queries")
			resultsPath, _ := cmd.Flags().GetString("results")
			truthPath, _ := cmd.Flags().GetString("ground-truth")
			format, _ := cmd.Flags().GetString("format")
			perQuery, _ := cmd.Flags().GetBool("per-query")

			items, err := dataset.LoadTrainingSet(ctx, trainPath)
			if err != nil {
				return err
			}
			train, err := annrecall.NewTrainingSet(items)
			if err != nil {
				return err
			}

			queries, err := dataset.LoadQueries(ctx, queriesPath)
			if err != nil {
				return err
			}

			eval, err := buildEvaluator(cfg)
			if err != nil {
				return err
			}

			gt, err := loadOrComputeTruth(cmd, eval, train, queries, truthPath)
			if err != nil {
				return err
			}

			var results [][]model.ID
			if resultsPath != "" {
				results, err = dataset.LoadResults(ctx, resultsPath)
			} else {
				results, err = searchLive(cmd, cfg, queries)
			}
			if err != nil {
				return err
			}

			report, err := eval.Evaluate(ctx, train, queries, gt, results)
			if err != nil {
				return err
			}

			return printReport(report, format, perQuery)
		},
	}

	cmd.Flags().String("train", "", "training set JSONL file (local path or s3://)")
	cmd.Flags().String("queries", "", "query set JSONL file (local path or s3://)")
	cmd.Flags().String("results", "", "approximate results JSONL file; omit to query qdrant live")
	cmd.Flags().String("ground-truth", "", "precomputed ground truth file; omit to compute now")
	cmd.Flags().String("format", "text", "output format (text, json)")
	cmd.Flags().Bool("per-query", false, "print per-query recall")
	_ = cmd.MarkFlagRequired("train")
	_ = cmd.MarkFlagRequired("queries")

	return cmd
}

func loadOrComputeTruth(cmd *cobra.Command, eval *annrecall.Evaluator, train *annrecall.TrainingSet, queries [][]float32, truthPath string) (*annrecall.GroundTruth, error) {
	ctx := cmd.Context()

	if truthPath != "" {
		return dataset.LoadGroundTruth(ctx, truthPath)
	}

	start := time.Now()
	gt, err := eval.GroundTruth(ctx, train, queries)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "computed ground truth for %d queries in %v\n", len(queries), time.Since(start).Round(time.Millisecond))

	return gt, nil
}

func searchLive(cmd *cobra.Command, cfg *config.Config, queries [][]float32) ([][]model.ID, error) {
	ctx := cmd.Context()

	client, err := qdrant.New(qdrant.Config{
		Host:       cfg.Qdrant.Host,
		Port:       cfg.Qdrant.Port,
		APIKey:     cfg.Qdrant.APIKey,
		UseTLS:     cfg.Qdrant.UseTLS,
		Collection: cfg.Qdrant.Collection,
		VectorName: cfg.Qdrant.VectorName,
	})
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.HealthCheck(ctx); err != nil {
		return nil, err
	}

	return searcher.SearchAll(ctx, client, queries, cfg.K)
}

func printReport(report *annrecall.Report, format string, perQuery bool) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if perQuery {
		for qi, recall := range report.PerQuery {
			fmt.Printf("query %4d: recall %.4f\n", qi, recall)
		}
	}
	fmt.Printf("mean recall: %.4f over %d queries\n", report.Mean, len(report.PerQuery))
	return nil
}
