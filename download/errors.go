package download

import (
	"errors"
	"fmt"
)

// Kind is a stable, machine-readable failure category.
type Kind string

const (
	KindServerResponse       Kind = "download.server.response.error"
	KindVersionNotFound      Kind = "download.version.specified.incorrect"
	KindInvalidContentLength Kind = "download.invalid.content.length"
	KindServerStream         Kind = "download.server.stream.error"
	KindMaxRetriesExceeded   Kind = "download.failed.retries.max"
	KindServerUnavailable    Kind = "download.server.unavailable"
	KindConnectionFailed     Kind = "download.connection.failed"
	KindUnexpectedResponse   Kind = "download.server.response.unexpected"
	KindChecksumMismatch     Kind = "download.failed.checksum"
	KindTooManyRedirects     Kind = "download.redirects.max"
	KindFileSystem           Kind = "download.filesystem.error"
	KindInterrupted          Kind = "download.interrupted"
)

var (
	ErrServerResponse       = errors.New("server response error")
	ErrVersionNotFound      = errors.New("version not found")
	ErrInvalidContentLength = errors.New("invalid content length")
	ErrServerStream         = errors.New("server stream error")
	ErrMaxRetriesExceeded   = errors.New("max retries exceeded")
	ErrServerUnavailable    = errors.New("server unavailable")
	ErrConnectionFailed     = errors.New("connection failed")
	ErrUnexpectedResponse   = errors.New("unexpected response")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrTooManyRedirects     = errors.New("too many redirects")
	ErrFileSystem           = errors.New("filesystem error")
	ErrInterrupted          = errors.New("download interrupted")
)

var sentinels = map[Kind]error{
	KindServerResponse:       ErrServerResponse,
	KindVersionNotFound:      ErrVersionNotFound,
	KindInvalidContentLength: ErrInvalidContentLength,
	KindServerStream:         ErrServerStream,
	KindMaxRetriesExceeded:   ErrMaxRetriesExceeded,
	KindServerUnavailable:    ErrServerUnavailable,
	KindConnectionFailed:     ErrConnectionFailed,
	KindUnexpectedResponse:   ErrUnexpectedResponse,
	KindChecksumMismatch:     ErrChecksumMismatch,
	KindTooManyRedirects:     ErrTooManyRedirects,
	KindFileSystem:           ErrFileSystem,
	KindInterrupted:          ErrInterrupted,
}

// Error is the terminal failure of a download. Err is the sentinel
// matching Kind, so callers can use errors.Is against the Err* vars.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
		Err:    sentinels[kind],
	}
}

// KindOf returns the Kind carried by err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var dlErr *Error
	if errors.As(err, &dlErr) {
		return dlErr.Kind
	}

	return ""
}

// IsRetryExhausted reports whether err is the result of running out of
// retry attempts rather than an immediately fatal condition.
func IsRetryExhausted(err error) bool {
	switch KindOf(err) {
	case KindMaxRetriesExceeded, KindServerUnavailable, KindConnectionFailed:
		return true
	default:
		return false
	}
}
