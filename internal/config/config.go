// Package config provides configuration management for the weir CLI.
// It loads configuration from environment variables with sensible defaults;
// command-line flags override environment values at the CLI layer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weirlabs/weir/internal/engine"
)

// Config holds boundary-layer settings for the weir CLI. Engine-level
// config (the opaque mapping passed through to every invocation) is
// resolved separately by ResolveEngineConfig.
type Config struct {
	// GraphName is the name of the graph to resolve from the registry.
	GraphName string

	// EngineConfig is the raw engine config source: an inline JSON string
	// or a path to a JSON or YAML file.
	EngineConfig string

	// StreamMode selects the engine's event granularity.
	StreamMode string

	// WorkspaceRoot, when set, is the directory to change into before
	// running the graph.
	WorkspaceRoot string
}

// defaultGraphName matches the engine convention of exposing the compiled
// graph under the name "graph".
const defaultGraphName = "graph"

// New creates a Config from environment variables.
func New() *Config {
	cfg := &Config{
		GraphName:  defaultGraphName,
		StreamMode: string(engine.StreamModeUpdates),
	}

	if graph := os.Getenv("WEIR_GRAPH"); graph != "" {
		cfg.GraphName = graph
	}
	if source := os.Getenv("WEIR_CONFIG"); source != "" {
		cfg.EngineConfig = source
	}
	if mode := os.Getenv("WEIR_STREAM_MODE"); mode != "" {
		cfg.StreamMode = mode
	}
	if root := os.Getenv("WEIR_WORKSPACE_ROOT"); root != "" {
		cfg.WorkspaceRoot = root
	}

	return cfg
}

// ResolveEngineConfig turns a config source into the opaque engine config.
// The source is either a path to a JSON or YAML file, or an inline JSON
// string; an empty source resolves to nil. Resolution failures are loud:
// a source that is neither a readable file nor valid JSON is an error.
func ResolveEngineConfig(source string) (engine.Config, error) {
	if source == "" {
		return nil, nil
	}

	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return loadEngineConfigFile(source)
	}

	var cfg engine.Config
	if err := json.Unmarshal([]byte(source), &cfg); err != nil {
		return nil, fmt.Errorf("invalid config JSON: %w", err)
	}
	return cfg, nil
}

func loadEngineConfigFile(path string) (engine.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg engine.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return cfg, nil
}
