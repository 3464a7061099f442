package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirlabs/weir/internal/engine"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("WEIR_GRAPH", "")
	t.Setenv("WEIR_CONFIG", "")
	t.Setenv("WEIR_STREAM_MODE", "")
	t.Setenv("WEIR_WORKSPACE_ROOT", "")

	cfg := New()

	assert.Equal(t, "graph", cfg.GraphName)
	assert.Equal(t, "updates", cfg.StreamMode)
	assert.Empty(t, cfg.EngineConfig)
	assert.Empty(t, cfg.WorkspaceRoot)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("WEIR_GRAPH", "reviewer")
	t.Setenv("WEIR_CONFIG", `{"configurable": {"thread_id": "1"}}`)
	t.Setenv("WEIR_STREAM_MODE", "values")
	t.Setenv("WEIR_WORKSPACE_ROOT", "/tmp/workspace")

	cfg := New()

	assert.Equal(t, "reviewer", cfg.GraphName)
	assert.Equal(t, `{"configurable": {"thread_id": "1"}}`, cfg.EngineConfig)
	assert.Equal(t, "values", cfg.StreamMode)
	assert.Equal(t, "/tmp/workspace", cfg.WorkspaceRoot)
}

func TestResolveEngineConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty source resolves to nil", func(t *testing.T) {
		cfg, err := ResolveEngineConfig("")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("inline JSON", func(t *testing.T) {
		cfg, err := ResolveEngineConfig(`{"configurable": {"thread_id": "1"}}`)
		require.NoError(t, err)
		assert.Equal(t, engine.Config{
			"configurable": map[string]any{"thread_id": "1"},
		}, cfg)
	})

	t.Run("JSON file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"recursion_limit": 10}`), 0644))

		cfg, err := ResolveEngineConfig(path)
		require.NoError(t, err)
		assert.Equal(t, float64(10), cfg["recursion_limit"])
	})

	t.Run("YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("configurable:\n  thread_id: \"7\"\n"), 0644))

		cfg, err := ResolveEngineConfig(path)
		require.NoError(t, err)
		require.Contains(t, cfg, "configurable")
	})

	t.Run("invalid inline JSON is a loud error", func(t *testing.T) {
		_, err := ResolveEngineConfig("not valid json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config JSON")
	})

	t.Run("malformed file is a loud error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

		_, err := ResolveEngineConfig(path)
		assert.Error(t, err)
	})
}
