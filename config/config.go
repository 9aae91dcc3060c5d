// Package config provides YAML configuration and status directory
// resolution for agentmon.
//
// The CLI works with no configuration at all: every setting has a default
// and can be overridden by a flag or, for the status directory, an
// environment variable. An optional config file fills the gap for users
// who want persistent settings:
//
//	# ~/.agentmon/config.yaml
//	status_dir: ${HOME}/.agentmon/status
//	refresh: 2s
//
// Resolution order for the status directory, strongest first:
//
//	--status-dir flag > AGENTMON_DIR > config file > ~/.agentmon/status
//
// The directory is resolved exactly once at process start and passed into
// the store and monitor as plain configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvStatusDir is the environment variable designating an alternate
// status root directory.
const EnvStatusDir = "AGENTMON_DIR"

// minRefresh prevents configs from spinning the refresh loop hot.
const minRefresh = 100 * time.Millisecond

// defaultRefresh is the dashboard tick period when nothing overrides it.
const defaultRefresh = time.Second

// Config is the root configuration structure for agentmon.
//
// It maps directly to the YAML configuration file. Use [Load] or [Parse]
// to create a Config from YAML, or rely on the zero value plus defaults.
type Config struct {
	// StatusDir is the status root directory. Supports environment
	// variable substitution: ${VAR} or ${VAR:-default}.
	StatusDir string `yaml:"status_dir"`

	// Refresh is the dashboard tick period. Accepts duration strings
	// like "500ms", "1s", "2s". Defaults to 1s.
	Refresh Duration `yaml:"refresh"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, expands environment variables in
// the status directory, and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Refresh == 0 {
		cfg.Refresh = Duration(defaultRefresh)
	}
	if cfg.Refresh.Duration() < minRefresh {
		return nil, fmt.Errorf("refresh must be at least %s, got %s", minRefresh, cfg.Refresh.Duration())
	}

	if cfg.StatusDir != "" {
		expanded, err := expandEnvVars(cfg.StatusDir)
		if err != nil {
			return nil, fmt.Errorf("status_dir: %w", err)
		}
		cfg.StatusDir = expanded
	}

	return &cfg, nil
}

// LoadDefault loads ~/.agentmon/config.yaml if it exists, or returns a
// config of pure defaults if it does not. Only a present-but-invalid file
// is an error.
func LoadDefault() (*Config, error) {
	path, err := defaultConfigPath()
	if err != nil {
		return Parse(nil)
	}
	if _, err := os.Stat(path); err != nil {
		return Parse(nil)
	}
	return Load(path)
}

// defaultConfigPath returns ~/.agentmon/config.yaml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".agentmon", "config.yaml"), nil
}

// DefaultStatusDir returns the fixed fallback status root,
// ~/.agentmon/status. If the home directory cannot be resolved, a
// relative .agentmon/status is used so the tool still functions in
// stripped-down environments.
func DefaultStatusDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".agentmon", "status")
	}
	return filepath.Join(home, ".agentmon", "status")
}

// ResolveStatusDir picks the effective status directory from, in order of
// preference: the explicit flag value, the [EnvStatusDir] environment
// variable, the config file, and the built-in default.
func ResolveStatusDir(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvStatusDir); env != "" {
		return env
	}
	if cfg != nil && cfg.StatusDir != "" {
		return cfg.StatusDir
	}
	return DefaultStatusDir()
}
