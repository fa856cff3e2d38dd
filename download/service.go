package download

import (
	"context"
	"crypto/sha1"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var ErrNoLocation = errors.New("download location required")

const (
	defaultMaxRedirects = 10
	tracerName          = "github.com/gkatanacio/artifact-fetcher/download"
)

// Service is the service layer that contains operations for downloading.
type Service struct {
	opts       Options
	httpClient *http.Client
	limiter    *rate.Limiter
	tracer     trace.Tracer
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(opts Options) *Service {
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = defaultMaxRedirects
	}
	if opts.NewHash == nil {
		opts.NewHash = sha1.New
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	if opts.Interrupter == nil {
		opts.Interrupter = osInterrupter{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}

	// Redirects are followed by the session so each hop is counted.
	var httpClient http.Client
	if opts.HTTPClient != nil {
		httpClient = *opts.HTTPClient
	} else {
		httpClient.Transport = &http.Transport{
			Proxy:              http.ProxyFromEnvironment,
			DisableCompression: true,
		}
	}
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit)
	}

	return &Service{
		opts:       opts,
		httpClient: &httpClient,
		limiter:    limiter,
		tracer:     opts.TracerProvider.Tracer(tracerName),
		logger:     opts.Logger,
		now:        time.Now,
	}
}

// Download fetches req.URL into a fresh temporary file, retrying transient
// failures, and verifies its length and checksum. On success the caller
// owns the file at Result.Path. On any error, including an interrupt, the
// temporary file has already been removed.
func (s *Service) Download(ctx context.Context, req Request) (*Result, error) {
	if req.URL == "" {
		return nil, ErrNoLocation
	}

	sess := newSession(ctx, s, req)
	return sess.start()
}

// Start runs Download and hands the outcome to cb. When the download is
// interrupted cb is never invoked and ErrInterrupted is returned instead.
func (s *Service) Start(ctx context.Context, force bool, location, version string, cb Callback) error {
	res, err := s.Download(ctx, Request{URL: location, Version: version, Force: force})
	if errors.Is(err, ErrInterrupted) {
		return err
	}

	cb(res, err)

	return nil
}

type nopReporter struct{}

func (nopReporter) Status(string)         {}
func (nopReporter) OK(string)             {}
func (nopReporter) Progress(int64, int64) {}
func (nopReporter) Clear()                {}
