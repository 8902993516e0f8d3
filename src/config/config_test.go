// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/config"
)

func writeTempConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Defaults.WarnDays)
	assert.Equal(t, 10, cfg.Defaults.Timeout)
	assert.Equal(t, int64(0), cfg.Defaults.Concurrency)
	assert.Equal(t, ":5000", cfg.Server.Listen)
	assert.Equal(t, "/usr/sbin/sendmail", cfg.Alert.SendmailPath)
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contents string
	}{
		{
			name:     "JSON Config",
			filename: "config.json",
			contents: `{
				"defaults": {"warnDays": 14, "timeoutSeconds": 5, "concurrency": 8},
				"server": {"listen": ":8080", "staticDir": "/srv/static"},
				"alert": {"sender": "ops@example.com", "recipient": "admin@example.com", "dryRun": true}
			}`,
		},
		{
			name:     "YAML Config",
			filename: "config.yaml",
			contents: `
defaults:
  warnDays: 14
  timeoutSeconds: 5
  concurrency: 8
server:
  listen: ":8080"
  staticDir: /srv/static
alert:
  sender: ops@example.com
  recipient: admin@example.com
  dryRun: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.filename, tt.contents)

			cfg, err := config.Load(path)
			require.NoError(t, err)

			assert.Equal(t, 14, cfg.Defaults.WarnDays)
			assert.Equal(t, 5, cfg.Defaults.Timeout)
			assert.Equal(t, int64(8), cfg.Defaults.Concurrency)
			assert.Equal(t, ":8080", cfg.Server.Listen)
			assert.Equal(t, "/srv/static", cfg.Server.StaticDir)
			assert.Equal(t, "ops@example.com", cfg.Alert.Sender)
			assert.Equal(t, "admin@example.com", cfg.Alert.Recipient)
			assert.True(t, cfg.Alert.DryRun)
		})
	}
}

func TestLoadInvalidValuesFallBackToDefaults(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
		"defaults": {"warnDays": -1, "timeoutSeconds": -5, "concurrency": -2},
		"server": {"listen": ""}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Defaults.WarnDays)
	assert.Equal(t, 10, cfg.Defaults.Timeout)
	assert.Equal(t, int64(0), cfg.Defaults.Concurrency)
	assert.Equal(t, ":5000", cfg.Server.Listen)
}

func TestLoadMalformedFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contents string
	}{
		{name: "Bad JSON", filename: "config.json", contents: `{"defaults": `},
		{name: "Bad YAML", filename: "config.yaml", contents: "defaults:\n  warnDays: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.filename, tt.contents)

			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CERT_EXPIRY_ALERT_FROM", "env-from@example.com")
	t.Setenv("CERT_EXPIRY_ALERT_TO", "env-to@example.com")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-from@example.com", cfg.Alert.Sender)
	assert.Equal(t, "env-to@example.com", cfg.Alert.Recipient)
}

func TestLoadEnvConfigFile(t *testing.T) {
	path := writeTempConfig(t, "config.yml", "defaults:\n  warnDays: 7\n")
	t.Setenv(config.EnvConfigFile, path)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Defaults.WarnDays)
}
