package config

import (
	"fmt"
	"os"
	"regexp"

	"smell-bot/internal/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type App struct {
	Port       int      `yaml:"port" validate:"gte=0,lte=65535"`
	LogLevel   string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogOutputs []string `yaml:"log_outputs,omitempty"`
}

// Thresholds mirrors the threshold.long.methods and
// threshold.long.parameter.methods settings of the detection engine
type Thresholds struct {
	LongMethods          int `yaml:"long_methods" validate:"gte=0"`
	LongParameterMethods int `yaml:"long_parameter_methods" validate:"gte=0"`
}

type ScannerConfig struct {
	Workers   int      `yaml:"workers" validate:"gte=0"`
	CacheSize int      `yaml:"cache_size" validate:"gte=0"`
	Exclude   []string `yaml:"exclude,omitempty"`
	Languages []string `yaml:"languages,omitempty" validate:"dive,oneof=java go python javascript typescript"`
}

type McpConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type KuzuConfig struct {
	Path string `yaml:"path"`
}

type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database,omitempty"`
}

type SurrealConfig struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

type StorageConfig struct {
	Kind    string        `yaml:"kind" validate:"omitempty,oneof=none kuzu neo4j surreal"`
	Kuzu    KuzuConfig    `yaml:"kuzu"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
	Surreal SurrealConfig `yaml:"surreal"`
}

type Config struct {
	App        App           `yaml:"app"`
	Thresholds Thresholds    `yaml:"thresholds"`
	Scanner    ScannerConfig `yaml:"scanner"`
	Mcp        McpConfig     `yaml:"mcp"`
	Storage    StorageConfig `yaml:"storage"`
}

// Default returns the configuration used when no file overrides a value
func Default() *Config {
	return &Config{
		App: App{
			Port:       8080,
			LogLevel:   "info",
			LogOutputs: []string{"stdout"},
		},
		Thresholds: Thresholds{
			LongMethods:          10,
			LongParameterMethods: 4,
		},
		Scanner: ScannerConfig{
			Workers:   4,
			CacheSize: 1000,
			Exclude:   []string{".git", "vendor", "node_modules"},
		},
		Mcp: McpConfig{
			Enabled: true,
			Path:    "/mcp",
		},
		Storage: StorageConfig{
			Kind: "none",
			Kuzu: KuzuConfig{Path: ":memory:"},
		},
	}
}

// LoadConfig reads a YAML config file, expanding environment variables.
// Keys missing from the file keep their Default values, so a threshold of 0
// can still be configured explicitly.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ModelThresholds converts the configured thresholds for the detection engine
func (c *Config) ModelThresholds() model.Thresholds {
	return model.Thresholds{
		LongMethod:    c.Thresholds.LongMethods,
		LongParameter: c.Thresholds.LongParameterMethods,
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars replaces ${VAR}, ${VAR:-default} and $VAR references.
// An unset $VAR is left untouched; an unset ${VAR} becomes empty.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)

		if name := groups[4]; name != "" {
			if value, ok := os.LookupEnv(name); ok {
				return value
			}
			return match
		}

		value := os.Getenv(groups[1])
		if value == "" && groups[2] != "" {
			return groups[3]
		}
		return value
	})
}
