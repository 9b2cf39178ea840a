package assist

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway or speech failure.
type Kind string

const (
	// KindBackendLogic: the primary backend answered but reported a domain
	// failure, or rejected the request outright (non-5xx). Never triggers a
	// fallback; downgrading would hide a bug or a policy rejection.
	KindBackendLogic Kind = "BACKEND_LOGIC"
	// KindBackendUnavailable: 5xx, transport failure or timeout on the
	// primary backend. Absorbed by the fallback transition.
	KindBackendUnavailable Kind = "BACKEND_UNAVAILABLE"
	// KindFallbackProvider: the degraded-mode responder itself failed. Fatal
	// for the request; there is nothing left to fall back to.
	KindFallbackProvider Kind = "FALLBACK_PROVIDER"
	// KindCredentialMissing: a speech provider has no configured credential.
	// The router skips to the next provider.
	KindCredentialMissing Kind = "CREDENTIAL_MISSING"
	// KindProviderRejected: a speech provider returned non-2xx. Also advances
	// the router to the next provider.
	KindProviderRejected Kind = "PROVIDER_REJECTED"
	// KindSynthesisUnavailable: every speech provider in the chain failed.
	KindSynthesisUnavailable Kind = "SYNTHESIS_UNAVAILABLE"
)

// Error is the taxonomy error for the assistance gateway. Reason is a stable
// machine token for logs; Err carries the underlying cause and is never shown
// to end users.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("assist: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("assist: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a taxonomy error.
func NewError(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf extracts the taxonomy kind from err, or "" when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Recoverable reports whether a fallback transition may absorb err. Only
// availability-class failures qualify; logic failures stop the chain.
func Recoverable(err error) bool {
	switch KindOf(err) {
	case KindBackendUnavailable, KindCredentialMissing, KindProviderRejected:
		return true
	}
	return false
}
