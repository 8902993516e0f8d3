// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var (
	// ErrResolve indicates the domain name did not resolve.
	ErrResolve = errors.New("expiry: domain name does not resolve")

	// ErrConnect indicates the TCP connection was refused, unreachable, or reset.
	ErrConnect = errors.New("expiry: connection failed")

	// ErrHandshake indicates TLS negotiation failed, including certificate
	// verification failure against the platform trust store.
	ErrHandshake = errors.New("expiry: TLS handshake failed")

	// ErrNoPeerCertificates indicates the server completed the handshake
	// without presenting any certificate.
	ErrNoPeerCertificates = errors.New("expiry: no certificates received from server")
)

// DefaultTimeout bounds connection establishment and the TLS handshake.
// The reference behavior has no timeout; this is the recommended hardening
// so a single unreachable host cannot stall its own entry indefinitely.
const DefaultTimeout = 10 * time.Second

// DefaultPort is the standard HTTPS port domains are checked on.
const DefaultPort = 443

// Fetcher performs live TLS handshakes to read certificate expiration
// instants. The zero value is not ready for use; call [New].
//
// Fetcher holds no state across checks beyond configuration: each check
// owns its own connection and computed values, so a single Fetcher is safe
// for concurrent use by multiple goroutines.
type Fetcher struct {
	// Timeout: Dial and handshake timeout per check. Zero disables it.
	Timeout time.Duration
	// Port: TCP port to connect to. Defaults to [DefaultPort].
	Port int
	// Concurrency: Maximum in-flight checks for [Fetcher.CheckMany].
	// Zero or negative means unbounded (every check starts immediately).
	Concurrency int64

	// tlsConfig overrides the TLS client configuration; nil means default
	// trust-anchor verification. Tests point this at a local listener.
	tlsConfig *tls.Config

	// checkOne overrides the per-domain check in CheckMany; nil means
	// [Fetcher.CheckOne]. Tests use it to simulate completion timings.
	checkOne func(ctx context.Context, domain string) Outcome
}

// New creates a Fetcher with default settings.
func New() *Fetcher {
	return &Fetcher{
		Timeout: DefaultTimeout,
		Port:    DefaultPort,
	}
}

// FetchExpiry opens a TLS connection to domain on the configured port,
// performs a handshake with default trust-anchor verification, and returns
// the leaf certificate's expiration instant in UTC.
//
// Exactly one network connection is opened per call and it is closed before
// the call returns on every exit path. Close failures are swallowed: some
// servers terminate the TLS session abruptly after the handshake, and that
// must not mask a successful fetch.
//
// Parameters:
//   - ctx: Context for cancellation; a context deadline bounds the dial
//   - domain: DNS name to check, without scheme or port
//
// Returns:
//   - time.Time: The leaf certificate's NotAfter instant, in UTC
//   - error: [ErrResolve], [ErrConnect], or [ErrHandshake] wrapping the cause
//
// Thread Safety: Safe for concurrent use.
func (f *Fetcher) FetchExpiry(ctx context.Context, domain string) (time.Time, error) {
	dialer := &net.Dialer{Timeout: f.Timeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	port := f.Port
	if port == 0 {
		port = DefaultPort
	}

	conn, err := tls.DialWithDialer(dialer, "tcp", net.JoinHostPort(domain, strconv.Itoa(port)), f.tlsConfig)
	if err != nil {
		return time.Time{}, classify(domain, err)
	}
	defer conn.Close()

	peerCerts := conn.ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoPeerCertificates, domain)
	}

	// NotAfter is UTC without an explicit offset in the certificate;
	// crypto/x509 already interprets it as UTC.
	return peerCerts[0].NotAfter.UTC(), nil
}

// Compute performs one check and combines the fetched expiration instant
// with a single current-clock reading into a complete Record. It has no
// failure modes of its own beyond what [Fetcher.FetchExpiry] reports.
func (f *Fetcher) Compute(ctx context.Context, domain string) (Record, error) {
	expiry, err := f.FetchExpiry(ctx, domain)
	if err != nil {
		return Record{}, err
	}
	return NewRecord(expiry, time.Now().UTC()), nil
}

// classify sorts a dial failure into the resolution/connection/handshake
// taxonomy while preserving the underlying cause in the error chain.
func classify(domain string, err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %s: %v", ErrResolve, domain, err)
	}

	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return fmt.Errorf("%w: %s: %v", ErrHandshake, domain, err)
	}

	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return fmt.Errorf("%w: %s: %v", ErrHandshake, domain, err)
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return fmt.Errorf("%w: %s: %v", ErrHandshake, domain, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %s: %v", ErrConnect, domain, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrHandshake, domain, err)
}
