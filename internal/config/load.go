package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the config file looked up in the working directory.
const DefaultConfigFilename = "dusky-setup.yaml"

// DefaultRefreshInterval is the credential renewal cadence when unset.
const DefaultRefreshInterval = 50 * time.Second

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal yaml: %v", ErrInvalid, err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config: %v", ErrInvalid, err)
	}

	applyDefaults(&cfg, filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile searches for a config file in common locations.
// It checks the current directory, then the XDG config directory.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	path = filepath.Join(userConfigDir(), "dusky", "setup.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("no %s found in the current directory or %s",
		DefaultConfigFilename, filepath.Join(userConfigDir(), "dusky"))
}

// applyDefaults fills unset fields. Relative script directories resolve
// against the config file's directory so a checked-out dotfiles tree works
// from any working directory.
func applyDefaults(cfg *Config, baseDir string) {
	if len(cfg.ScriptDirs) == 0 {
		cfg.ScriptDirs = []string{"setup.d"}
	}
	for i, dir := range cfg.ScriptDirs {
		dir = ExpandPath(dir)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		cfg.ScriptDirs[i] = dir
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStatePath()
	} else {
		cfg.StateFile = ExpandPath(cfg.StateFile)
	}

	if cfg.Privilege.RefreshInterval <= 0 {
		cfg.Privilege.RefreshInterval = DefaultRefreshInterval
	}

	for i, step := range cfg.Steps {
		if step.Tier == "" {
			cfg.Steps[i].Tier = TierUser
		}
	}
}

// DefaultStatePath returns the completion log location per the XDG spec.
func DefaultStatePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "dusky", "setup.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dusky", "setup.log")
	}
	return filepath.Join(home, ".local", "state", "dusky", "setup.log")
}

// ExpandPath expands a leading tilde and environment variables in a path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}
