// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package alert

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/expiry"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/logger"
)

// ErrNoAddresses indicates the mailer was created without a sender or
// recipient address.
var ErrNoAddresses = errors.New("alert: sender and recipient addresses are required")

// DefaultSendmailPath is where the sendmail binary usually lives.
const DefaultSendmailPath = "/usr/sbin/sendmail"

// DefaultThresholds are the day marks at which a daily check run sends an
// alert. Expired certificates (negative days remaining) always alert.
var DefaultThresholds = []int{14, 7, 3, 0}

// Mailer sends expiration alerts for check outcomes. The zero value is not
// ready for use; call [NewMailer].
type Mailer struct {
	// Sender: From address for alert mail.
	Sender string
	// Recipient: To address for alert mail.
	Recipient string
	// SendmailPath: Path to the sendmail binary.
	SendmailPath string
	// Thresholds: Day marks that trigger an alert.
	Thresholds []int
	// DryRun: Print the composed mail instead of sending it.
	DryRun bool

	log logger.Logger

	// send overrides mail delivery; nil means sendmail. Tests use it to
	// capture composed messages.
	send func(ctx context.Context, body []byte) error
}

// NewMailer creates a Mailer with default thresholds and sendmail path.
func NewMailer(sender, recipient string, log logger.Logger) (*Mailer, error) {
	if sender == "" || recipient == "" {
		return nil, ErrNoAddresses
	}
	return &Mailer{
		Sender:       sender,
		Recipient:    recipient,
		SendmailPath: DefaultSendmailPath,
		Thresholds:   DefaultThresholds,
		log:          log,
	}, nil
}

// ShouldAlert reports whether a certificate with the given days remaining
// crosses an alert threshold. Expired certificates always alert; otherwise
// an alert fires exactly at each configured day mark so a daily run does
// not repeat itself in between.
func (m *Mailer) ShouldAlert(daysRemaining int) bool {
	if daysRemaining < 0 {
		return true
	}
	return slices.Contains(m.Thresholds, daysRemaining)
}

// Process inspects one check outcome and sends an alert if it crosses a
// threshold. Failed checks are logged and skipped: an unreachable domain is
// a check problem, not an expiring certificate. Delivery failures are
// logged and returned but must never abort processing of other domains.
func (m *Mailer) Process(ctx context.Context, outcome expiry.Outcome) error {
	rec, ok := outcome.Record()
	if !ok {
		if outcome.Err() != "" {
			m.log.Printf("skipping alert for %s: check failed: %s", outcome.Domain(), outcome.Err())
		} else {
			m.log.Printf("skipping alert for %s: no data returned", outcome.Domain())
		}
		return nil
	}

	if !m.ShouldAlert(rec.DaysRemaining) {
		return nil
	}

	body := m.compose(outcome.Domain(), rec)

	if m.DryRun {
		m.log.Printf("[DRY RUN] Would send email for %s:", outcome.Domain())
		m.log.Println("------- Email Content -------")
		m.log.Println(string(body))
		m.log.Println("-----------------------------")
		return nil
	}

	m.log.Printf("Sending email alert for %s", outcome.Domain())

	if err := m.deliver(ctx, body); err != nil {
		m.log.Errorf("failed to send email alert for %s: %v", outcome.Domain(), err)
		return err
	}

	m.log.Printf("Alert email sent for %s", outcome.Domain())
	return nil
}

// compose builds the raw RFC 822 message piped to sendmail -t.
func (m *Mailer) compose(domain string, rec expiry.Record) []byte {
	status := fmt.Sprintf("Expires in %d days", rec.DaysRemaining)
	if rec.IsExpired {
		status = "EXPIRED"
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	fmt.Fprintf(buf, "From: %s\n", m.Sender)
	fmt.Fprintf(buf, "To: %s\n", m.Recipient)
	fmt.Fprintf(buf, "Subject: TLS Certificate Alert - %s\n", domain)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\n\n")
	fmt.Fprintf(buf, "TLS Certificate Alert for %s\n\n", domain)
	fmt.Fprintf(buf, "Status: %s\n", status)
	fmt.Fprintf(buf, "Expiration Date: %s UTC\n", rec.ExpiryDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(buf, "Time Remaining: %s\n", rec.TimeRemaining)
	fmt.Fprintf(buf, "Days Remaining: %d\n\n", rec.DaysRemaining)
	buf.WriteString("Please take appropriate action to renew the TLS certificate.\n")

	return append([]byte(nil), buf.Bytes()...)
}

// deliver hands the composed message to the configured transport.
func (m *Mailer) deliver(ctx context.Context, body []byte) error {
	if m.send != nil {
		return m.send(ctx, body)
	}
	return m.sendmail(ctx, body)
}

// sendmail pipes the message to the sendmail binary with -t so the
// envelope is taken from the headers.
func (m *Mailer) sendmail(ctx context.Context, body []byte) error {
	path := m.SendmailPath
	if path == "" {
		path = DefaultSendmailPath
	}

	cmd := exec.CommandContext(ctx, path, "-t")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("alert: failed to open sendmail stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("alert: failed to start sendmail: %w", err)
	}

	if _, err := stdin.Write(body); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("alert: failed to write to sendmail: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("alert: sendmail returned an error: %w", err)
	}

	return nil
}
