package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/annrecall"
	"github.com/hupe1980/annrecall/dataset"
)

func groundTruthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groundtruth",
		Short: "Compute exact k-NN ground truth for a dataset",
		Long: `Compute the exact k nearest training neighbors for every query by
brute-force pairwise distance and write them to a ground truth file.

The result is reused by 'annrecall evaluate' so the expensive exact
computation runs once per (training set, query set, metric, k) tuple.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			trainPath, _ := cmd.Flags().GetString("train")
			queriesPath, _ := cmd.Flags().GetString("queries")
			outPath, _ := cmd.Flags().GetString("out")

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

			gt, err := eval.GroundTruth(ctx, train, queries)
			if err != nil {
				return err
			}

			if err := dataset.SaveGroundTruth(outPath, gt); err != nil {
				return err
			}

			fmt.Printf("ground truth for %d queries (k=%d, metric=%s) written to %s\n",
				len(queries), gt.K, gt.Metric, outPath)
			return nil
		},
	}

	cmd.Flags().String("train", "", "training set JSONL file (local path or s3://)")
	cmd.Flags().String("queries", "", "query set JSONL file (local path or s3://)")
	cmd.Flags().String("out", "groundtruth.json", "output file")
	_ = cmd.MarkFlagRequired("train")
	_ = cmd.MarkFlagRequired("queries")

	return cmd
}
