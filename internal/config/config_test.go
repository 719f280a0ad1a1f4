package config

import (
	"os"
	"path/filepath"
	"testing"

	"smell-bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envVars  map[string]string
		unset    []string
		expected string
	}{
		{
			name:     "Simple ${VAR} syntax",
			input:    "url: ${SURREAL_URL}",
			envVars:  map[string]string{"SURREAL_URL": "ws://localhost:8000/rpc"},
			expected: "url: ws://localhost:8000/rpc",
		},
		{
			name:     "Simple $VAR syntax",
			input:    "password: $NEO4J_PASSWORD",
			envVars:  map[string]string{"NEO4J_PASSWORD": "secret"},
			expected: "password: secret",
		},
		{
			name:     "Default value when var not set",
			input:    "path: ${KUZU_PATH:-/data/kuzu}",
			unset:    []string{"KUZU_PATH"},
			expected: "path: /data/kuzu",
		},
		{
			name:     "Default value ignored when var is set",
			input:    "path: ${KUZU_PATH:-/data/kuzu}",
			envVars:  map[string]string{"KUZU_PATH": "/tmp/kuzu"},
			expected: "path: /tmp/kuzu",
		},
		{
			name:     "Multiple variables",
			input:    "uri: ${HOST}:${PORT}",
			envVars:  map[string]string{"HOST": "localhost", "PORT": "7687"},
			expected: "uri: localhost:7687",
		},
		{
			name:     "Mixed syntax",
			input:    "$USER uses ${HOME:-/tmp}",
			envVars:  map[string]string{"USER": "alice", "HOME": "/home/alice"},
			expected: "alice uses /home/alice",
		},
		{
			name:     "Undefined variable without default (${VAR})",
			input:    "path: ${UNDEFINED_VAR}",
			unset:    []string{"UNDEFINED_VAR"},
			expected: "path: ",
		},
		{
			name:     "Undefined variable without default ($VAR)",
			input:    "path: $UNDEFINED_VAR",
			unset:    []string{"UNDEFINED_VAR"},
			expected: "path: $UNDEFINED_VAR",
		},
		{
			name:     "Empty default value",
			input:    "path: ${EMPTY_VAR:-}",
			unset:    []string{"EMPTY_VAR"},
			expected: "path: ",
		},
		{
			name:     "No variables",
			input:    "long_methods: 10",
			expected: "long_methods: 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			for _, k := range tt.unset {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}

			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SMELL_PORT", "9090")
	path := writeConfig(t, `
app:
  port: ${SMELL_PORT}
  log_level: debug
thresholds:
  long_methods: 25
  long_parameter_methods: 6
scanner:
  workers: 8
  exclude: [".git", "build"]
storage:
  kind: kuzu
  kuzu:
    path: /tmp/smells.kuzu
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 25, cfg.Thresholds.LongMethods)
	assert.Equal(t, 6, cfg.Thresholds.LongParameterMethods)
	assert.Equal(t, 8, cfg.Scanner.Workers)
	assert.Equal(t, []string{".git", "build"}, cfg.Scanner.Exclude)
	assert.Equal(t, "kuzu", cfg.Storage.Kind)
	assert.Equal(t, "/tmp/smells.kuzu", cfg.Storage.Kuzu.Path)
	assert.Equal(t, model.Thresholds{LongMethod: 25, LongParameter: 6}, cfg.ModelThresholds())
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
thresholds:
  long_parameter_methods: 0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Thresholds.LongMethods)
	assert.Equal(t, 0, cfg.Thresholds.LongParameterMethods)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "none", cfg.Storage.Kind)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "thresholds: [unclosed")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero thresholds", mutate: func(c *Config) {
			c.Thresholds = Thresholds{}
		}},
		{name: "negative long method threshold", mutate: func(c *Config) {
			c.Thresholds.LongMethods = -1
		}, wantErr: true},
		{name: "negative parameter threshold", mutate: func(c *Config) {
			c.Thresholds.LongParameterMethods = -3
		}, wantErr: true},
		{name: "unknown storage", mutate: func(c *Config) {
			c.Storage.Kind = "postgres"
		}, wantErr: true},
		{name: "unknown language", mutate: func(c *Config) {
			c.Scanner.Languages = []string{"go", "cobol"}
		}, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) {
			c.App.LogLevel = "verbose"
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
