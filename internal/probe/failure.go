package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// FailureKind is the adapter-local failure taxonomy. Every fault an
// adapter can hit is converted to one of these before it crosses the
// boundary; no kind is fatal to the run.
type FailureKind string

const (
	// ProviderUnavailable means the query tool or API is missing.
	ProviderUnavailable FailureKind = "provider-unavailable"
	// PermissionDenied means the provider exists but refused access.
	PermissionDenied FailureKind = "permission-denied"
	// Timeout means the adapter exceeded its bounded invocation time.
	Timeout FailureKind = "timeout"
	// ParseError means the provider produced output that could not be
	// understood.
	ParseError FailureKind = "parse-error"
	// Empty means the provider ran but returned nothing usable.
	Empty FailureKind = "empty"
)

// Failure is the typed error returned by adapters.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Reason renders the failure for diagnostics entries.
func (f *Failure) Reason() string { return string(f.Kind) }

func unavailable(err error) *Failure { return &Failure{Kind: ProviderUnavailable, Err: err} }
func denied(err error) *Failure      { return &Failure{Kind: PermissionDenied, Err: err} }
func parseFail(err error) *Failure   { return &Failure{Kind: ParseError, Err: err} }

// AsFailure returns err as a *Failure, classifying foreign errors by
// their shape. Unrecognized errors count as the provider being unusable.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Failure{Kind: Timeout, Err: err}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return unavailable(err)
	case errors.Is(err, fs.ErrPermission):
		return denied(err)
	}
	if msg := strings.ToLower(err.Error()); strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "access is denied") ||
		strings.Contains(msg, "operation not permitted") {
		return denied(err)
	}
	return unavailable(err)
}

// FailureReason renders any adapter error for diagnostics entries.
func FailureReason(err error) string {
	return AsFailure(err).Reason()
}
