package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/annrecall/dataset"
	"github.com/hupe1980/annrecall/embedder"
)

func embedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed query texts into a query-set file",
		Long: `Read one query text per line and write the embedded vectors as a
query-set JSONL file for 'annrecall groundtruth' and 'annrecall evaluate'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			textsPath, _ := cmd.Flags().GetString("texts")
			outPath, _ := cmd.Flags().GetString("out")

			texts, err := readTexts(textsPath)
			if err != nil {
				return err
			}
			if len(texts) == 0 {
				return fmt.Errorf("no texts in %s", textsPath)
			}

			e, err := embedder.NewOpenAI(embedder.OpenAIConfig{
				BaseURL:           cfg.Embedding.BaseURL,
				APIKey:            cfg.Embedding.APIKey,
				Model:             cfg.Embedding.Model,
				Dimensions:        cfg.Embedding.Dimensions,
				BatchSize:         cfg.Embedding.BatchSize,
				Concurrency:       cfg.Embedding.Concurrency,
				RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
			})
			if err != nil {
				return err
			}

			start := time.Now()
			vectors, err := e.EmbedTexts(ctx, texts)
			if err != nil {
				return err
			}

			if err := dataset.SaveQueries(outPath, vectors); err != nil {
				return err
			}

			fmt.Printf("embedded %d texts with %s in %v, written to %s\n",
				len(texts), e.Model(), time.Since(start).Round(time.Millisecond), outPath)
			return nil
		},
	}

	cmd.Flags().String("texts", "", "file with one query text per line")
	cmd.Flags().String("out", "queries.jsonl", "output query-set file")
	_ = cmd.MarkFlagRequired("texts")

	return cmd
}

func readTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		texts = append(texts, line)
	}

	return texts, scanner.Err()
}
