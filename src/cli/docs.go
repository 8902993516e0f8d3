// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the TLS certificate
// expiry checker. It implements a Cobra-based CLI that checks live domains
// concurrently or reads certificates from a local file, with human-readable,
// JSON Lines, and markdown table output formats, sendmail alerting, and
// HTTP-style exit codes scripts can match on. The package integrates with
// the config and logger packages and honors context cancellation.
package cli
