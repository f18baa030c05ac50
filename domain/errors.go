package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is a closed classification of remote-capability failures,
// assigned by the adapters at the boundary so retry logic matches on tags
// rather than error text.
type ErrorKind string

const (
	KindRateLimited     ErrorKind = "rate_limited"
	KindServerTransient ErrorKind = "server_transient"
	KindTransport       ErrorKind = "transport"
	KindMalformedOutput ErrorKind = "malformed_output"
	KindRefused         ErrorKind = "refused"
	KindFatal           ErrorKind = "fatal"
)

type RemoteError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func NewRemoteError(kind ErrorKind, op string, message string, err error) *RemoteError {
	return &RemoteError{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// KindFromStatus maps an HTTP status code from the remote capability to an
// error kind: 429 is rate limiting, 500/503 are transient server faults,
// anything else non-OK is fatal.
func KindFromStatus(status int) ErrorKind {
	switch status {
	case 429:
		return KindRateLimited
	case 500, 503:
		return KindServerTransient
	default:
		return KindFatal
	}
}

// ErrGenerationInFlight guards against a second pipeline run while one is
// active for the same engine instance.
var ErrGenerationInFlight = errors.New("a production run is already in progress")

// retryMarkers are textual retryability signals for errors that did not pass
// through a classifying adapter (quota text, status fragments, transport RPC
// failures, parse errors, model refusal signals).
var retryMarkers = []string{
	"429",
	"quota",
	"RESOURCE_EXHAUSTED",
	"500",
	"503",
	"Rpc failed",
	"candidate",
	"finishReason",
	"unexpected end of JSON",
	"invalid character",
}

// IsRetryable reports whether an error is worth retrying. Tagged remote
// errors are matched on their kind; untagged errors fall back to the closed
// marker set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		switch remoteErr.Kind {
		case KindRateLimited, KindServerTransient, KindTransport, KindMalformedOutput, KindRefused:
			return true
		default:
			return false
		}
	}

	msg := err.Error()
	for _, marker := range retryMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
