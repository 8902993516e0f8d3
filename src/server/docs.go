// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package server exposes the certificate expiry checker over HTTP. It
// provides a chi-based router with a JSON check endpoint that can stream
// newline-delimited JSON in completion order, a status endpoint, Prometheus
// metrics, permissive CORS for browser dashboards, and optional static file
// serving for a bundled frontend.
package server
