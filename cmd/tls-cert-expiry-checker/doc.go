// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// tls-cert-expiry-checker is a command-line tool for checking when the TLS
// certificates of live domains expire.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-expiry-checker/cmd/tls-cert-expiry-checker@latest
//
// # Usage
//
//	tls-cert-expiry-checker [DOMAIN...] [FLAGS]
//
// # Flags
//
//	-c, --config      Path to a JSON or YAML config file
//	-f, --file        Check certificates in FILE instead of live domains
//	    --jsonl       Output one JSON object per line in completion order
//	    --table       Render results as a markdown table
//	-t, --timeout     Dial and handshake timeout in seconds (0 disables)
//	    --concurrency Maximum in-flight checks (0 means unbounded)
//	-w, --warn-days   Days before expiry at which a certificate is EXPIRING SOON
//	-p, --port        TCP port to check (default 443)
//	    --alert-from  From address for sendmail alerts
//	    --alert-to    To address for sendmail alerts
//	    --dry-run     Print alert mail instead of sending it
//
// # Exit Codes
//
//	0    All checks completed (per-domain failures appear in the output)
//	400  Invalid domain or certificate input
//	408  Run interrupted before all checks completed
//	500  Unexpected error (config, alerting, or encoding failure)
//	130  Interrupted by signal before dispatch
//
// # Examples
//
// Check several domains at once:
//
//	tls-cert-expiry-checker example.com github.com google.com
//
// Produce machine-readable output for scripting:
//
//	tls-cert-expiry-checker example.com --jsonl | jq .
//
// Inspect a certificate bundle on disk:
//
//	tls-cert-expiry-checker -f fullchain.pem --table
//
// Send sendmail alerts for certificates inside the warning window:
//
//	tls-cert-expiry-checker example.com --alert-from ops@example.com \
//	  --alert-to admin@example.com
package main
