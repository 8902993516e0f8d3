// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads checker configuration from JSON or YAML files with
// sensible defaults. The file format is detected from the extension, the
// file path can come from the CERT_EXPIRY_CONFIG_FILE environment variable,
// and alert addresses can be supplied through the environment as well.
package config
