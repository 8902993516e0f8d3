// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// EnvConfigFile names the environment variable consulted for the
// configuration file path when none is passed explicitly.
const EnvConfigFile = "CERT_EXPIRY_CONFIG_FILE"

// Config represents the checker configuration structure.
// It contains default settings for expiry checks, the HTTP server, and
// email alerting.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// CERT_EXPIRY_CONFIG_FILE environment variable, with defaults applied for
// any missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for certificate expiry checks
	Defaults struct {
		// WarnDays: Days before expiry at which a certificate counts as expiring soon
		WarnDays int `json:"warnDays" yaml:"warnDays"`
		// Timeout: Dial and handshake timeout in seconds per check; 0 disables it
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// Concurrency: Maximum in-flight checks per batch; 0 means unbounded
		Concurrency int64 `json:"concurrency" yaml:"concurrency"`
	} `json:"defaults" yaml:"defaults"`

	// Server: HTTP server settings
	Server struct {
		// Listen: Address the HTTP server binds to
		Listen string `json:"listen" yaml:"listen"`
		// StaticDir: Directory served for non-API paths; empty disables static serving
		StaticDir string `json:"staticDir" yaml:"staticDir"`
	} `json:"server" yaml:"server"`

	// Alert: Email alerting settings
	Alert struct {
		// Sender: From address for alert mail (can also be set via CERT_EXPIRY_ALERT_FROM)
		Sender string `json:"sender,omitempty" yaml:"sender,omitempty"`
		// Recipient: To address for alert mail (can also be set via CERT_EXPIRY_ALERT_TO)
		Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty"`
		// SendmailPath: Path to the sendmail binary used for delivery
		SendmailPath string `json:"sendmailPath,omitempty" yaml:"sendmailPath,omitempty"`
		// DryRun: Print alert mail instead of sending it
		DryRun bool `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	} `json:"alert" yaml:"alert"`
}

// detectConfigFormat determines the configuration file format based on file extension.
// It uses case-insensitive extension matching for cross-platform compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
// It delegates to the appropriate parser, ensuring consistent error handling
// across both configuration formats.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load loads checker configuration from a JSON or YAML file or applies defaults.
//
// Configuration Priority:
//  1. Default values are set
//  2. CERT_EXPIRY_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Environment variables override config file values
//     (CERT_EXPIRY_ALERT_FROM, CERT_EXPIRY_ALERT_TO)
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: The loaded configuration with defaults applied
//   - error: Error if the configuration file cannot be read or parsed
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Defaults.WarnDays = 30
	config.Defaults.Timeout = 10
	config.Defaults.Concurrency = 0

	config.Server.Listen = ":5000"
	config.Server.StaticDir = ""

	config.Alert.SendmailPath = "/usr/sbin/sendmail"

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.Defaults.WarnDays <= 0 {
			config.Defaults.WarnDays = 30
		}
		if config.Defaults.Timeout < 0 {
			config.Defaults.Timeout = 10
		}
		if config.Defaults.Concurrency < 0 {
			config.Defaults.Concurrency = 0
		}
		if config.Server.Listen == "" {
			config.Server.Listen = ":5000"
		}
		if config.Alert.SendmailPath == "" {
			config.Alert.SendmailPath = "/usr/sbin/sendmail"
		}
	}

	// Override alert addresses from environment if not set in config
	if config.Alert.Sender == "" {
		config.Alert.Sender = os.Getenv("CERT_EXPIRY_ALERT_FROM")
	}
	if config.Alert.Recipient == "" {
		config.Alert.Recipient = os.Getenv("CERT_EXPIRY_ALERT_TO")
	}

	return config, nil
}
