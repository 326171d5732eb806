package model

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrDataAlignment = errors.New("data alignment error")
	ErrUpstream      = errors.New("upstream error")
	ErrDecode        = errors.New("decode error")
)

// ConfigurationError reports an invalid static setting, such as an unknown
// chain name. It is always raised before any network call.
type ConfigurationError struct {
	Setting string
	Value   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Setting, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q", e.Setting, e.Value)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NotFoundError reports that the provider has no record for a key.
// Kind is "address", "market_id" or "platform".
type NotFoundError struct {
	Kind  string
	Key   string
	Chain string
	Err   error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %s not found", e.Kind, e.Key)
	if e.Chain != "" {
		msg += " on " + e.Chain
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// DataAlignmentError reports a series that cannot be placed on the grid or
// combined without producing an undefined value.
type DataAlignmentError struct {
	MarketID string
	At       time.Time
	Reason   string
}

func (e *DataAlignmentError) Error() string {
	if e.At.IsZero() {
		return fmt.Sprintf("align %s: %s", e.MarketID, e.Reason)
	}
	return fmt.Sprintf("align %s at %s: %s", e.MarketID, e.At.UTC().Format(time.RFC3339), e.Reason)
}

func (e *DataAlignmentError) Is(target error) bool { return target == ErrDataAlignment }

// UpstreamError is returned by the provider client for transport failures
// (StatusCode 0) and non-success responses.
type UpstreamError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("request %s: HTTP %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// DecodeError records a provider response that does not match its schema.
type DecodeError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Endpoint, e.Reason)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }
