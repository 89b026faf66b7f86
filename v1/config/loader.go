package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file when --config is not given.
const EnvConfigPath = EnvPrefix + "_CONFIG"

var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// ParseFlags reads the command line of the service and returns the config
// file path, falling back to $DIGITALTWIN_CONFIG. An empty path means the
// service runs on defaults and environment variables only.
func ParseFlags(args []string) (string, error) {
	fs := pflag.NewFlagSet(DefaultServiceName, pflag.ContinueOnError)
	path := fs.StringP("config", "c", "", "path to a YAML, TOML or JSON config file")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *path == "" {
		return os.Getenv(EnvConfigPath), nil
	}
	return *path, nil
}

// Load builds the configuration from defaults, the file at path (if any) and
// the environment, in that order, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes path by extension. TOML and JSON documents are re-encoded
// as YAML so every format is matched against the same yaml field names.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	case ".toml":
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
		if data, err = yaml.Marshal(doc); err != nil {
			return fmt.Errorf("re-encode TOML: %w", err)
		}
	case ".json":
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
		if data, err = yaml.Marshal(doc); err != nil {
			return fmt.Errorf("re-encode JSON: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	for _, target := range c.envTargets() {
		if err := envconfig.Process(EnvPrefix, target); err != nil {
			return fmt.Errorf("environment overrides: %w", err)
		}
	}
	return nil
}
