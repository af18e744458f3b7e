package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"unifimac/pkg/logging"
)

const (
	userConfigDir  = ".config/unifimac"
	configFileName = "config.yaml"
)

// Environment variables read by FromEnv. The names follow the ones used by
// the UniFi Terraform provider.
const (
	EnvURL      = "UNIFI_API"
	EnvUser     = "UNIFI_USERNAME"
	EnvPassword = "UNIFI_PASSWORD"
	EnvSite     = "UNIFI_SITE"
	EnvWLAN     = "UNIFI_WLAN"
	EnvInsecure = "UNIFI_INSECURE"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultPath returns ~/.config/unifimac/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadFile reads the config file at path. A missing file yields an empty
// layer, not an error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Bootstrap", "No config file found at %s, using defaults", path)
			return Config{}, nil
		}
		return Config{}, &ConfigurationError{Source: path, Message: "cannot read file", Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigurationError{Source: path, Message: "malformed YAML", Err: err}
	}
	if cfg.Timeout < 0 {
		return Config{}, &ConfigurationError{Source: path, Message: fmt.Sprintf("timeout must be positive, got %d", cfg.Timeout)}
	}

	logging.Debug("Bootstrap", "Loaded configuration from %s", path)
	return cfg, nil
}

// FromEnv builds a layer from the UNIFI_* environment variables using
// lookup, normally os.LookupEnv. UNIFI_INSECURE=false turns certificate
// verification on.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		URL:  get(EnvURL),
		User: get(EnvUser),
		Site: get(EnvSite),
		WLAN: get(EnvWLAN),
	}
	// Passwords may legitimately start or end with spaces.
	if v, ok := lookup(EnvPassword); ok {
		cfg.Password = v
	}

	if raw := get(EnvInsecure); raw != "" {
		insecure, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, &ConfigurationError{Source: EnvInsecure, Message: fmt.Sprintf("expected true or false, got %q", raw)}
		}
		verify := !insecure
		cfg.VerifySSL = &verify
	}
	return cfg, nil
}
