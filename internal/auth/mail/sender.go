// Package mail delivers transactional email for the auth service. Delivery is
// best effort: a failed send is reported in the Result, never as an error, so
// callers can log and move on without leaking the failure to clients.
package mail

import "context"

// Result reports the outcome of a single send attempt.
type Result struct {
	Success   bool
	MessageID string
	Error     string
}

// Sender delivers a single message. Implementations must not return transport
// failures to the caller; they record them in Result.Error instead.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) Result
}
