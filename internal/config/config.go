// Package config holds the server's runtime configuration: transport
// selection, HTTP bind address, and the credential acquisition mode.
// IT Glue credentials themselves are resolved separately (per request in
// gateway mode) and never stored here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Transport values.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Auth mode values. AuthModeEnv reads credentials from the environment;
// AuthModeGateway extracts them from each inbound HTTP request's headers.
const (
	AuthModeEnv     = "env"
	AuthModeGateway = "gateway"
)

// Environment overrides for the config file.
const (
	EnvTransport = "MCP_TRANSPORT"
	EnvAuthMode  = "ITGLUE_AUTH_MODE"
	EnvHTTPHost  = "MCP_HTTP_HOST"
	EnvHTTPPort  = "MCP_HTTP_PORT"
)

// HTTPConfig holds the HTTP transport's bind settings.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config is the root configuration.
type Config struct {
	Transport string     `yaml:"transport"`
	AuthMode  string     `yaml:"auth_mode"`
	HTTP      HTTPConfig `yaml:"http"`
}

// Load builds the configuration: YAML file (optional), then environment
// overrides, then defaults. An empty path skips the file entirely; a named
// file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvTransport); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv(EnvAuthMode); v != "" {
		cfg.AuthMode = v
	}
	if v := os.Getenv(EnvHTTPHost); v != "" {
		cfg.HTTP.Host = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = port
		}
	}
}

// applyDefaults fills in zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.AuthMode == "" {
		cfg.AuthMode = AuthModeEnv
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "127.0.0.1"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
}

// Validate rejects unknown transport and auth mode values.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport %q (expected %s or %s)", c.Transport, TransportStdio, TransportHTTP)
	}
	switch c.AuthMode {
	case AuthModeEnv, AuthModeGateway:
	default:
		return fmt.Errorf("invalid auth mode %q (expected %s or %s)", c.AuthMode, AuthModeEnv, AuthModeGateway)
	}
	return nil
}
