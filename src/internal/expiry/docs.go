// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package expiry implements the concurrent certificate-expiration engine.
// It performs one live TLS handshake per domain to read the leaf
// certificate's expiration instant, converts it into relative-time
// semantics, wraps failures into a non-raising Outcome value, and fans out
// many such checks concurrently with results delivered in completion order.
//
// The engine exposes exactly two call shapes to its collaborators (CLI,
// HTTP server, alerting): CheckOne for a single safe check and CheckMany
// for a concurrent batch. Nothing above CheckOne ever receives an error
// from a single-domain check; failures are data.
package expiry
