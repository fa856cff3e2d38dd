//go:generate go run go.uber.org/mock/mockgen -source=models.go -destination=../mocks/mock_download.go -package=mocks

package download

import (
	"hash"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Headers the artifact server uses to advertise the payload.
const (
	HeaderVersion  = "X-Appc-Version"
	HeaderChecksum = "X-Appc-Shasum"
)

// Options represents the configuration for the download service.
type Options struct {
	// TempDir is where the temporary output file is created.
	// Default: os.TempDir()
	TempDir string

	// Retry controls attempt cap and backoff delays.
	// Default: DefaultRetryPolicy()
	Retry RetryPolicy

	// MaxRedirects bounds the length of a 301/302 chain within one attempt.
	// Default: 10
	MaxRedirects int

	// RateLimit caps the transfer rate in bytes per second. Zero means unlimited.
	RateLimit int

	// NewHash builds the checksum accumulator for each attempt.
	// Default: sha1.New
	NewHash func() hash.Hash

	HTTPClient  *http.Client
	Locator     Locator
	Reporter    Reporter
	Interrupter Interrupter
	Logger      *slog.Logger

	// TracerProvider receives one span per attempt.
	// Default: otel.GetTracerProvider()
	TracerProvider trace.TracerProvider
}

// Request is what the caller asks for. URL is replaced on redirect
// inside the session only; the caller's value is left untouched.
type Request struct {
	URL     string
	Version string
	Force   bool
}

// Status tags the successful variants of a download outcome.
type Status int

const (
	StatusDownloaded Status = iota + 1
	StatusAlreadySatisfied
)

func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusAlreadySatisfied:
		return "already-satisfied"
	default:
		return "unknown"
	}
}

// Result is a successful outcome. For StatusDownloaded, Path is the
// verified temporary file which the caller now owns. For
// StatusAlreadySatisfied, BinaryPath points at the installed binary.
type Result struct {
	Status     Status
	Path       string
	Version    string
	BinaryPath string
}

// Metadata is what the server advertises alongside a 200 response.
type Metadata struct {
	Version       string
	Checksum      string
	ContentLength int64
}

// Locator finds an already installed binary for a version.
type Locator interface {
	Lookup(version string) (string, bool)
}

// Reporter receives human-readable status and byte progress. It is
// purely observational.
type Reporter interface {
	Status(msg string)
	OK(msg string)
	Progress(done, total int64)
	Clear()
}

// Interrupter delivers user interrupts to a running session.
type Interrupter interface {
	Notify(c chan<- os.Signal)
	Stop(c chan<- os.Signal)
}

// Callback receives the single outcome of Start.
type Callback func(res *Result, err error)
