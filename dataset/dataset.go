// Package dataset loads and saves training sets, query sets, approximate
// result sets and ground truth as JSONL files, with transparent gzip
// compression and s3:// sources. The evaluator itself stays I/O free; this
// package is the glue between files and its in-memory inputs.
package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/hupe1980/annrecall"
	"github.com/hupe1980/annrecall/model"
)

// trainingRecord is one line of a training-set JSONL file.
type trainingRecord struct {
	ID     model.ID  `json:"id"`
	Vector []float32 `json:"vector"`
}

// queryRecord is one line of a query-set JSONL file.
type queryRecord struct {
	Vector []float32 `json:"vector"`
}

// resultRecord is one line of an approximate-results JSONL file. IDs are in
// the external system's ranking order.
type resultRecord struct {
	IDs []model.ID `json:"ids"`
}

// LoadTrainingSet reads identified vectors from a JSONL file.
func LoadTrainingSet(ctx context.Context, path string) ([]model.IdentifiedVector, error) {
	var items []model.IdentifiedVector

	err := readLines(ctx, path, func(line []byte) error {
		var rec trainingRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		if rec.ID == "" {
			return fmt.Errorf("missing id")
		}
		items = append(items, model.IdentifiedVector{ID: rec.ID, Vector: rec.Vector})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// LoadQueries reads query vectors from a JSONL file.
func LoadQueries(ctx context.Context, path string) ([][]float32, error) {
	var queries [][]float32

	err := readLines(ctx, path, func(line []byte) error {
		var rec queryRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		queries = append(queries, rec.Vector)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return queries, nil
}

// LoadResults reads per-query identifier lists from a JSONL file.
func LoadResults(ctx context.Context, path string) ([][]model.ID, error) {
	var results [][]model.ID

	err := readLines(ctx, path, func(line []byte) error {
		var rec resultRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		results = append(results, rec.IDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// SaveQueries writes query vectors as JSONL.
func SaveQueries(path string, queries [][]float32) error {
	return writeLines(path, len(queries), func(i int) (any, error) {
		return queryRecord{Vector: queries[i]}, nil
	})
}

// SaveResults writes per-query identifier lists as JSONL.
func SaveResults(path string, results [][]model.ID) error {
	return writeLines(path, len(results), func(i int) (any, error) {
		return resultRecord{IDs: results[i]}, nil
	})
}

// LoadGroundTruth reads a ground truth document written by SaveGroundTruth.
func LoadGroundTruth(ctx context.Context, path string) (*annrecall.GroundTruth, error) {
	r, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var gt annrecall.GroundTruth
	if err := json.NewDecoder(r).Decode(&gt); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &gt, nil
}

// SaveGroundTruth writes a ground truth document as a single JSON object.
func SaveGroundTruth(path string, gt *annrecall.GroundTruth) error {
	w, err := create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(gt); err != nil {
		_ = w.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return w.Close()
}

func readLines(ctx context.Context, path string, fn func(line []byte) error) error {
	r, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn([]byte(line)); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}

	return scanner.Err()
}

func writeLines(path string, n int, record func(i int) (any, error)) error {
	w, err := create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for i := range n {
		rec, err := record(i)
		if err != nil {
			_ = w.Close()
			return err
		}
		if err := enc.Encode(rec); err != nil {
			_ = w.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return w.Close()
}

// open returns a reader for a local path or an s3:// URI, transparently
// decompressing .gz files.
func open(ctx context.Context, path string) (io.ReadCloser, error) {
	var r io.ReadCloser
	var err error

	if strings.HasPrefix(path, "s3://") {
		r, err = fetchS3(ctx, path)
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &gzipReadCloser{gz: gz, underlying: r}, nil
	}

	return r, nil
}

// create returns a writer for a local path, compressing when it ends in .gz.
// Writing to s3:// targets is not supported; evaluation artifacts are written
// locally.
func create(path string) (io.WriteCloser, error) {
	if strings.HasPrefix(path, "s3://") {
		return nil, fmt.Errorf("writing to s3 is not supported: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		return &gzipWriteCloser{gz: gzip.NewWriter(f), underlying: f}, nil
	}

	return f, nil
}

type gzipReadCloser struct {
	gz         *gzip.Reader
	underlying io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	if err := g.underlying.Close(); err != nil {
		return err
	}
	return gzErr
}

type gzipWriteCloser struct {
	gz         *gzip.Writer
	underlying io.WriteCloser
}

func (g *gzipWriteCloser) Write(p []byte) (int, error) { return g.gz.Write(p) }

func (g *gzipWriteCloser) Close() error {
	gzErr := g.gz.Close()
	if err := g.underlying.Close(); err != nil {
		return err
	}
	return gzErr
}
