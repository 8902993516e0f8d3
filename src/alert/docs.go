// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package alert delivers certificate expiration warnings by email.
// It composes a plain-text alert per triggering domain and pipes it to the
// local sendmail binary. Delivery failures are logged, never fatal, and one
// domain's delivery never affects another's.
package alert
