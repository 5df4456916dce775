package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/annrecall/distance"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	m, err := cfg.ParsedMetric()
	require.NoError(t, err)
	assert.Equal(t, distance.MetricL2, m)
	assert.Equal(t, 10, cfg.K)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
metric: cosine
k: 25
qdrant:
  host: qdrant.internal
  collection: bench
embedding:
  base_url: https://api.example.com/v1
  model: text-embedding-3-small
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cosine", cfg.Metric)
	assert.Equal(t, 25, cfg.K)
	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, "bench", cfg.Qdrant.Collection)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: 5\n"), 0o644))

	t.Setenv("ANNRECALL_K", "50")
	t.Setenv("QDRANT_COLLECTION", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.K)
	assert.Equal(t, "from-env", cfg.Qdrant.Collection)
}

func TestValidate(t *testing.T) {
	t.Run("InvalidK", func(t *testing.T) {
		cfg := Default()
		cfg.K = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("InvalidMetric", func(t *testing.T) {
		cfg := Default()
		cfg.Metric = "hamming"
		require.Error(t, cfg.Validate())
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
