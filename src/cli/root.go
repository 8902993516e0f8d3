// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/alert"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/expiry"
	x509certs "github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/logger"
)

var (
	// ErrDomainRequired indicates the command was invoked without any domain
	// arguments and without a certificate file.
	ErrDomainRequired = errors.New("cli: at least one domain or --file is required")

	// ErrInvalidDomain indicates a domain argument failed validation.
	ErrInvalidDomain = errors.New("cli: invalid domain")
)

// Exit codes reported through [ExitCode] after Execute returns. They are
// HTTP-style status classes scripts match on: invalid input, an interrupted
// run, and unexpected setup failures. Per-domain check failures do not
// change the exit code; they are part of the normal output.
const (
	ExitOK           = 0
	ExitInvalidInput = 400
	ExitInterrupted  = 408
	ExitFailure      = 500
)

// ExitCode holds the exit status the process should report after Execute
// returns.
var ExitCode = ExitOK

var (
	configFile     string
	certFile       string
	jsonLines      bool
	tableOutput    bool
	timeoutSeconds int
	concurrency    int64
	warnDays       int
	port           int
	alertFrom      string
	alertTo        string
	alertDryRun    bool
)

// Execute runs the root command and returns any invocation error. Per-domain
// check results, including failures, are printed through log and reflected
// in [ExitCode]; the returned error covers invalid input and setup problems
// only.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "tls-cert-expiry-checker [DOMAIN...]",
		Short:         "Concurrent TLS certificate expiration checker",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCheck(cmd, args, log)
		},
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a JSON or YAML config file")
	rootCmd.Flags().StringVarP(&certFile, "file", "f", "", "check certificates in FILE instead of live domains")
	rootCmd.Flags().BoolVar(&jsonLines, "jsonl", false, "output one JSON object per line in completion order")
	rootCmd.Flags().BoolVar(&tableOutput, "table", false, "render results as a markdown table")
	rootCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", 10, "dial and handshake timeout in seconds (0 disables)")
	rootCmd.Flags().Int64Var(&concurrency, "concurrency", 0, "maximum in-flight checks (0 means unbounded)")
	rootCmd.Flags().IntVarP(&warnDays, "warn-days", "w", 30, "days before expiry at which a certificate is EXPIRING SOON")
	rootCmd.Flags().IntVarP(&port, "port", "p", expiry.DefaultPort, "TCP port to check")
	rootCmd.Flags().StringVar(&alertFrom, "alert-from", "", "From address for sendmail alerts")
	rootCmd.Flags().StringVar(&alertTo, "alert-to", "", "To address for sendmail alerts")
	rootCmd.Flags().BoolVar(&alertDryRun, "dry-run", false, "print alert mail instead of sending it")

	ExitCode = ExitOK
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && ExitCode == ExitOK {
		ExitCode = ExitInvalidInput
	}
	return err
}

// execCheck validates the invocation, runs the checks, and prints the
// results in the selected output format.
func execCheck(cmd *cobra.Command, args []string, log logger.Logger) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		ExitCode = ExitFailure
		return err
	}

	// Flags win over the config file; config fills in what was not given.
	if !cmd.Flags().Changed("timeout") {
		timeoutSeconds = cfg.Defaults.Timeout
	}
	if !cmd.Flags().Changed("warn-days") {
		warnDays = cfg.Defaults.WarnDays
	}
	if !cmd.Flags().Changed("concurrency") {
		concurrency = cfg.Defaults.Concurrency
	}
	if alertFrom == "" {
		alertFrom = cfg.Alert.Sender
	}
	if alertTo == "" {
		alertTo = cfg.Alert.Recipient
	}

	mailer, err := newMailer(cfg, log)
	if err != nil {
		ExitCode = ExitFailure
		return err
	}

	if certFile != "" {
		return execFile(cmd.Context(), log, mailer)
	}

	if len(args) == 0 {
		ExitCode = ExitInvalidInput
		return ErrDomainRequired
	}

	domains, err := normalizeDomains(args)
	if err != nil {
		ExitCode = ExitInvalidInput
		return err
	}

	fetcher := expiry.New()
	fetcher.Timeout = time.Duration(timeoutSeconds) * time.Second
	fetcher.Port = port
	fetcher.Concurrency = concurrency

	ctx := cmd.Context()

	var collected []expiry.Outcome
	for outcome := range fetcher.CheckMany(ctx, domains) {
		collected = append(collected, outcome)
		emitOutcome(ctx, log, mailer, outcome)
	}

	if tableOutput {
		log.Println(renderTable(collected))
	}

	if ctx.Err() != nil {
		ExitCode = ExitInterrupted
	}
	return nil
}

// execFile reads certificates from the configured file and reports each one
// the same way a live check would. Every certificate in a bundle gets its
// own entry.
func execFile(ctx context.Context, log logger.Logger, mailer *alert.Mailer) error {
	certData, err := os.ReadFile(certFile)
	if err != nil {
		ExitCode = ExitFailure
		return fmt.Errorf("cli: failed to read certificate file: %w", err)
	}

	decoder := x509certs.New()
	certs, err := decoder.DecodeMultiple(certData)
	if err != nil {
		ExitCode = ExitInvalidInput
		return fmt.Errorf("cli: failed to decode certificate file: %w", err)
	}

	// One clock reading for the whole bundle keeps sibling entries consistent.
	now := time.Now().UTC()

	var collected []expiry.Outcome
	for _, cert := range certs {
		name := cert.Subject.CommonName
		if name == "" {
			name = certFile
		}

		outcome := expiry.Success(name, expiry.FromCertificate(cert, now))
		collected = append(collected, outcome)
		emitOutcome(ctx, log, mailer, outcome)
	}

	if tableOutput {
		log.Println(renderTable(collected))
	}

	return nil
}

// emitOutcome prints one result in the selected format and feeds it to the
// mailer when alerting is configured. Failed checks are ordinary output;
// they do not change the exit code.
func emitOutcome(ctx context.Context, log logger.Logger, mailer *alert.Mailer, outcome expiry.Outcome) {
	if jsonLines {
		data, err := json.Marshal(outcome)
		if err != nil {
			log.Errorf("failed to encode result for %s: %v", outcome.Domain(), err)
			ExitCode = ExitFailure
		} else {
			log.Println(string(data))
		}
	} else if !tableOutput {
		printReport(log, outcome)
	}

	if mailer != nil {
		// Delivery failures are already logged; they never stop the run.
		_ = mailer.Process(ctx, outcome)
	}
}

// printReport writes the human-readable block for one domain.
func printReport(log logger.Logger, outcome expiry.Outcome) {
	log.Printf("Domain: %s", outcome.Domain())

	rec, ok := outcome.Record()
	if !ok {
		if outcome.Err() == "" {
			log.Println("  ERROR: no data returned")
		} else {
			log.Printf("  ERROR: %s", outcome.Err())
		}
		return
	}

	log.Printf("  Expiry Date:    %s UTC", rec.ExpiryDate.Format("2006-01-02 15:04:05"))
	log.Printf("  Time Remaining: %s", rec.TimeRemaining)
	log.Printf("  Days Remaining: %d", rec.DaysRemaining)
	log.Printf("  Status:         %s", statusText(rec))
}

// statusText classifies a record against the warning window.
func statusText(rec expiry.Record) string {
	switch {
	case rec.IsExpired:
		return "EXPIRED"
	case rec.DaysRemaining < warnDays:
		return fmt.Sprintf("EXPIRING SOON (less than %d days)", warnDays)
	default:
		return "VALID"
	}
}

// renderTable renders collected results as a markdown table.
func renderTable(outcomes []expiry.Outcome) string {
	if len(outcomes) == 0 {
		return "No results to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"Domain", "Expiry Date", "Days Remaining", "Time Remaining", "Status"})

	var rows [][]string
	for _, outcome := range outcomes {
		rec, ok := outcome.Record()
		if !ok {
			errText := outcome.Err()
			if errText == "" {
				errText = "no data returned"
			}
			rows = append(rows, []string{outcome.Domain(), "-", "-", "-", "ERROR: " + errText})
			continue
		}

		rows = append(rows, []string{
			outcome.Domain(),
			rec.ExpiryDate.Format("2006-01-02"),
			strconv.Itoa(rec.DaysRemaining),
			rec.TimeRemaining,
			statusText(rec),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// newMailer builds the alert mailer when both addresses are configured,
// nil otherwise.
func newMailer(cfg *config.Config, log logger.Logger) (*alert.Mailer, error) {
	if alertFrom == "" || alertTo == "" {
		return nil, nil
	}

	mailer, err := alert.NewMailer(alertFrom, alertTo, log)
	if err != nil {
		return nil, err
	}

	mailer.SendmailPath = cfg.Alert.SendmailPath
	mailer.DryRun = alertDryRun || cfg.Alert.DryRun
	return mailer, nil
}

// normalizeDomains trims, lowercases, and validates every domain argument.
// Validation happens up front so a typo fails the whole invocation before
// any network traffic.
func normalizeDomains(args []string) ([]string, error) {
	domains := make([]string, 0, len(args))
	for _, raw := range args {
		domain := strings.ToLower(strings.TrimSpace(raw))
		if domain == "" {
			return nil, fmt.Errorf("%w: empty domain argument", ErrInvalidDomain)
		}
		if !strings.Contains(domain, ".") {
			return nil, fmt.Errorf("%w: %q does not look like a domain name", ErrInvalidDomain, raw)
		}
		domains = append(domains, domain)
	}
	return domains, nil
}
