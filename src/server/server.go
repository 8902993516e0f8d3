// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/expiry"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/logger"
)

// Checker runs safe expiry checks for a batch of domains. *expiry.Fetcher
// satisfies it; tests substitute a stub with scripted outcomes.
type Checker interface {
	CheckMany(ctx context.Context, domains []string) <-chan expiry.Outcome
}

// ndjsonTypes are the Accept media types that switch the check endpoint
// into streaming newline-delimited JSON.
var ndjsonTypes = []string{
	"application/x-ndjson",
	"application/jsonl",
	"application/x-jsonlines",
}

// Server is the HTTP surface of the expiry checker. Configure the exported
// fields before calling [Server.Router]; they are not read again afterwards.
type Server struct {
	// StaticDir: Directory served for non-API paths; empty disables it.
	StaticDir string
	// Version: Reported by the status endpoint.
	Version string

	checker  Checker
	log      logger.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

// New creates a Server around checker with its own metrics registry.
func New(checker Checker, log logger.Logger) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		checker:  checker,
		log:      log,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
}

// Router builds the chi router for the server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.corsMiddleware)

	r.Get("/api/", s.handleCheck)
	r.Get("/api/status", s.handleStatus)
	r.Get("/status", s.handleStatus)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	if s.StaticDir != "" {
		r.NotFound(s.handleStatic)
	}

	return r
}

// corsMiddleware applies permissive CORS headers so browser dashboards on
// other origins can call the API directly, and short-circuits preflight.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleCheck runs expiry checks for the requested domains. Domains come
// from repeatable "domain" parameters and comma-separated "domains"
// parameters; duplicates collapse to the first occurrence. Responses are a
// single object for one domain, an input-ordered array for several, or a
// completion-ordered NDJSON stream when the client asks for it.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.metrics.RequestsTotal.Inc()

	domains, err := parseDomains(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.ChecksTotal.Add(float64(len(domains)))
	s.metrics.ActiveChecks.Add(float64(len(domains)))
	defer s.metrics.ActiveChecks.Sub(float64(len(domains)))

	outcomes := s.checker.CheckMany(r.Context(), domains)

	if wantsNDJSON(r) {
		s.streamNDJSON(w, outcomes)
		return
	}

	// Buffered mode answers in input order regardless of which check
	// finished first.
	byDomain := make(map[string]expiry.Outcome, len(domains))
	for outcome := range outcomes {
		if !outcome.Ok() {
			s.metrics.CheckFailures.Inc()
		}
		byDomain[outcome.Domain()] = outcome
	}

	ordered := make([]expiry.Outcome, 0, len(domains))
	for _, domain := range domains {
		if outcome, ok := byDomain[domain]; ok {
			ordered = append(ordered, outcome)
		}
	}

	if len(ordered) == 1 {
		s.writeJSON(w, http.StatusOK, ordered[0])
		return
	}
	s.writeJSON(w, http.StatusOK, ordered)
}

// streamNDJSON writes one JSON line per outcome as checks complete, flushing
// after every line so slow domains never hold up finished ones.
func (s *Server) streamNDJSON(w http.ResponseWriter, outcomes <-chan expiry.Outcome) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for outcome := range outcomes {
		if !outcome.Ok() {
			s.metrics.CheckFailures.Inc()
		}

		data, err := json.Marshal(outcome)
		if err != nil {
			s.log.Errorf("failed to encode result for %s: %v", outcome.Domain(), err)
			continue
		}

		buf.Reset()
		buf.Write(data)
		buf.WriteByte('\n')

		if _, err := buf.WriteTo(w); err != nil {
			// Client went away; drain silently so the workers can finish.
			s.log.Printf("client disconnected mid-stream: %v", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// handleStatus reports service liveness.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "operational",
		"message": "Service is running correctly",
		"version": s.Version,
	})
}

// handleStatic serves files from StaticDir, falling back to index.html for
// unknown paths so client-side routing keeps working. API paths never fall
// through to the frontend.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.writeError(w, http.StatusNotFound, "Not found")
		return
	}

	rel := filepath.Clean("/" + r.URL.Path)
	path := filepath.Join(s.StaticDir, rel)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(s.StaticDir, "index.html"))
		return
	}

	http.ServeFile(w, r, path)
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("failed to write response: %v", err)
	}
}

// writeError sends a JSON error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// parseDomains extracts, normalizes, validates, and deduplicates the
// requested domains while preserving first-occurrence order.
func parseDomains(r *http.Request) ([]string, error) {
	query := r.URL.Query()

	var raw []string
	raw = append(raw, query["domain"]...)
	for _, list := range query["domains"] {
		raw = append(raw, strings.Split(list, ",")...)
	}

	if len(raw) == 0 {
		return nil, errRequest("missing 'domain' or 'domains' query parameter")
	}

	seen := make(map[string]struct{}, len(raw))
	domains := make([]string, 0, len(raw))
	for _, entry := range raw {
		domain := strings.ToLower(strings.TrimSpace(entry))
		if domain == "" {
			return nil, errRequest("empty domain in request")
		}
		if !strings.Contains(domain, ".") {
			return nil, errRequest("invalid domain: " + entry)
		}
		if _, dup := seen[domain]; dup {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}

	return domains, nil
}

// errRequest is a bare-string error for client-facing validation messages.
type errRequest string

func (e errRequest) Error() string { return string(e) }

// wantsNDJSON reports whether the client asked for a streaming response.
func wantsNDJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	for _, mediaType := range ndjsonTypes {
		if strings.Contains(accept, mediaType) {
			return true
		}
	}
	return false
}
