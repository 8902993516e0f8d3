// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// cert-expiry-server exposes the TLS certificate expiry checker over HTTP.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-expiry-checker/cmd/cert-expiry-server@latest
//
// # Usage
//
//	cert-expiry-server [--config FILE]
//
// Configuration can also come from the CERT_EXPIRY_CONFIG_FILE environment
// variable; the server listens on :5000 by default.
//
// # Endpoints
//
//	GET /api/?domain=example.com             Check one domain
//	GET /api/?domains=a.com,b.com            Check several domains
//	GET /api/status                          Service liveness (also /status)
//	GET /metrics                             Prometheus metrics
//
// Clients that send "Accept: application/x-ndjson" (or application/jsonl,
// application/x-jsonlines) receive one JSON line per domain as each check
// completes instead of a buffered array.
//
// # Examples
//
// Check a pair of domains:
//
//	curl 'http://localhost:5000/api/?domains=example.com,github.com'
//
// Stream results as they complete:
//
//	curl -N -H 'Accept: application/x-ndjson' \
//	  'http://localhost:5000/api/?domains=example.com,github.com'
package main
