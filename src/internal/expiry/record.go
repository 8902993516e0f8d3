// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry

import (
	"crypto/x509"
	"encoding/json"
	"math"
	"time"
)

// Record holds the expiration state of a single certificate at the moment
// it was checked. Records are value objects created fresh per check; the
// invariant IsExpired == (DaysRemaining < 0) always holds and TimeRemaining
// is derived deterministically from DaysRemaining via [FormatRemaining].
type Record struct {
	// ExpiryDate: The instant the certificate stops being valid, in UTC.
	ExpiryDate time.Time `json:"expiry_date"`
	// TimeRemaining: Human-readable duration until expiry, or "EXPIRED".
	TimeRemaining string `json:"time_remaining_str"`
	// IsExpired: Whether the certificate has already expired.
	IsExpired bool `json:"is_expired"`
	// DaysRemaining: Whole days until expiry; negative means already expired.
	DaysRemaining int `json:"days_remaining"`
}

// NewRecord builds a Record from an expiration instant and a single clock
// reading. The whole-day difference is floored toward negative infinity,
// matching integer floor-division semantics: a certificate expired by one
// hour reports -1 days, not 0.
//
// The clock is read by the caller exactly once so DaysRemaining, IsExpired,
// and TimeRemaining can never disagree with each other.
func NewRecord(expiry, now time.Time) Record {
	days := int(math.Floor(expiry.Sub(now).Hours() / 24))
	return Record{
		ExpiryDate:    expiry.UTC(),
		TimeRemaining: FormatRemaining(days),
		IsExpired:     days < 0,
		DaysRemaining: days,
	}
}

// FromCertificate builds a Record from an already-parsed certificate,
// for callers that have the certificate on disk rather than behind a
// live handshake.
func FromCertificate(cert *x509.Certificate, now time.Time) Record {
	return NewRecord(cert.NotAfter, now)
}

// Outcome is the result of one safe domain check: either a complete Record
// or an error description, never both and never neither. The zero Outcome
// is not valid; use [Success] or [Failure]. Keeping the fields unexported
// makes the "no data and no error" state unconstructible outside this
// package, though serialization collaborators should still treat a decoded
// outcome with neither field as an explicit "no data returned" condition.
type Outcome struct {
	domain string
	record *Record
	err    string
}

// Success returns the success variant of an Outcome carrying rec.
func Success(domain string, rec Record) Outcome {
	return Outcome{domain: domain, record: &rec}
}

// Failure returns the failure variant of an Outcome carrying a
// human-readable description of err.
func Failure(domain string, err error) Outcome {
	return Outcome{domain: domain, err: err.Error()}
}

// Domain returns the domain this outcome belongs to.
func (o Outcome) Domain() string { return o.domain }

// Ok reports whether the outcome is the success variant.
func (o Outcome) Ok() bool { return o.record != nil }

// Record returns the expiration record and whether one is present.
func (o Outcome) Record() (Record, bool) {
	if o.record == nil {
		return Record{}, false
	}
	return *o.record, true
}

// Err returns the error description, empty for the success variant.
func (o Outcome) Err() string { return o.err }

// outcomeWire is the JSON shape shared by the CLI and HTTP collaborators.
// Both data and error keys are always present, exactly one of them null.
type outcomeWire struct {
	Domain string  `json:"domain"`
	Data   *Record `json:"data"`
	Error  *string `json:"error"`
}

// MarshalJSON encodes the outcome as {"domain": ..., "data": ..., "error": ...}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	w := outcomeWire{Domain: o.domain, Data: o.record}
	if o.err != "" {
		w.Error = &o.err
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire shape produced by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var w outcomeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	o.domain = w.Domain
	o.record = w.Data
	o.err = ""
	if w.Error != nil {
		o.err = *w.Error
	}
	return nil
}
