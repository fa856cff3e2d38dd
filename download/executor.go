package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const chunkSize = 32 * 1024

// retryableStatuses are server responses worth another attempt: request
// timeout, internal error, and unavailable (often a deployment in progress).
var retryableStatuses = []int{
	http.StatusRequestTimeout,
	http.StatusInternalServerError,
	http.StatusServiceUnavailable,
}

// outcome is the result of one attempt. Exactly one of result, err or
// retry is set.
type outcome struct {
	result *Result
	err    *Error
	retry  failureClass
	detail string
}

func done(res *Result) outcome {
	return outcome{result: res}
}

func fatal(err *Error) outcome {
	return outcome{err: err}
}

func retry(class failureClass, format string, args ...any) outcome {
	return outcome{retry: class, detail: fmt.Sprintf(format, args...)}
}

// run drives attempts until one succeeds, fails fatally, or the retry
// policy gives up.
func (s *session) run() (*Result, error) {
	policy := s.svc.opts.Retry
	reporter := s.svc.opts.Reporter

	if s.req.Version == "" {
		reporter.Status("Finding latest version ...")
	} else {
		reporter.Status(fmt.Sprintf("Finding version %s ...", s.req.Version))
	}

	for attempt := 1; ; attempt++ {
		out := s.attempt(attempt)
		switch {
		case out.err != nil:
			return nil, out.err
		case out.result != nil:
			return out.result, nil
		}

		delay, ok := policy.Next(attempt, out.retry)
		if !ok {
			return nil, policy.exhausted(attempt, out.retry, out.detail)
		}

		reporter.Clear()
		s.svc.logger.Warn("retrying download",
			"session", s.id,
			"attempt", attempt,
			"reason", out.retry.String(),
			"detail", out.detail,
			"delay", delay,
		)

		if err := sleep(s.ctx, delay); err != nil {
			return nil, ErrInterrupted
		}

		if err := s.openOutput(); err != nil {
			if errors.Is(err, ErrInterrupted) {
				return nil, err
			}
			return nil, newError(KindFileSystem, "%v", err)
		}
	}
}

// attempt issues the request for one attempt, following redirects, and
// classifies the response.
func (s *session) attempt(number int) outcome {
	ctx, span := s.svc.tracer.Start(s.ctx, "download.attempt", trace.WithAttributes(
		attribute.Int("download.attempt", number),
		attribute.String("download.session", s.id),
	))
	defer span.End()

	out := s.follow(ctx)
	switch {
	case out.err != nil:
		span.RecordError(out.err)
		span.SetStatus(codes.Error, string(out.err.Kind))
	case out.retry != 0:
		span.SetAttributes(attribute.String("download.retry", out.retry.String()))
	}

	return out
}

func (s *session) follow(ctx context.Context) outcome {
	for redirects := 0; ; redirects++ {
		resp, err := s.get(ctx)
		if err != nil {
			s.endRequest()
			if s.stopped() {
				return fatal(s.interruptedError())
			}
			if isTransientNetwork(err) {
				return retry(failNetwork, "%v", err)
			}
			return fatal(newError(KindServerResponse, "%v", err))
		}

		switch {
		case resp.StatusCode == http.StatusMovedPermanently || resp.StatusCode == http.StatusFound:
			location := resp.Header.Get("Location")
			s.finish(resp)
			if location == "" {
				return fatal(newError(KindServerResponse, "redirect %d without Location", resp.StatusCode))
			}
			if redirects >= s.svc.opts.MaxRedirects {
				return fatal(newError(KindTooManyRedirects, "stopped after %d redirects", redirects))
			}

			next, err := resolveLocation(s.req.URL, location)
			if err != nil {
				return fatal(newError(KindServerResponse, "invalid redirect location %q: %v", location, err))
			}
			s.svc.logger.Debug("following redirect", "session", s.id, "from", s.req.URL, "to", next)
			s.req.URL = next

		case resp.StatusCode == http.StatusNotFound:
			s.finish(resp)
			return fatal(newError(KindVersionNotFound, "%s", versionLabel(s.req.Version)))

		case resp.StatusCode == http.StatusOK:
			return s.receive(ctx, resp)

		case lo.Contains(retryableStatuses, resp.StatusCode):
			s.finish(resp)
			if err := s.closeOutput(); err != nil {
				return fatal(newError(KindFileSystem, "%v", err))
			}
			return retry(failServer, "HTTP %d", resp.StatusCode)

		default:
			s.finish(resp)
			return fatal(newError(KindUnexpectedResponse, "%d", resp.StatusCode))
		}
	}
}

// get registers a fresh in-flight handle and issues the GET.
func (s *session) get(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(s.beginRequest(ctx), http.MethodGet, s.req.URL, nil)
	if err != nil {
		return nil, err
	}

	return s.svc.httpClient.Do(req)
}

// finish discards and closes an unused body, then clears the in-flight handle.
func (s *session) finish(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, chunkSize))
	resp.Body.Close()
	s.endRequest()
}

// receive handles a 200: short-circuit when already installed, otherwise
// stream the body to the output file and verify it.
func (s *session) receive(ctx context.Context, resp *http.Response) outcome {
	reporter := s.svc.opts.Reporter
	meta := Metadata{
		Version:       resp.Header.Get(HeaderVersion),
		Checksum:      resp.Header.Get(HeaderChecksum),
		ContentLength: resp.ContentLength,
	}

	if !s.announced {
		s.announced = true
		if s.req.Version == "" {
			reporter.OK(meta.Version)
		} else {
			reporter.OK("")
		}
	}

	version := meta.Version
	if version == "" {
		version = s.req.Version
	}

	if !s.req.Force && version != "" && s.svc.opts.Locator != nil {
		if bin, ok := s.svc.opts.Locator.Lookup(version); ok {
			resp.Body.Close()
			s.endRequest()
			return done(&Result{Status: StatusAlreadySatisfied, Version: version, BinaryPath: bin})
		}
	}

	if meta.ContentLength <= 0 {
		s.finish(resp)
		return fatal(newError(KindInvalidContentLength, "%q", resp.Header.Get("Content-Length")))
	}

	received, sum, err := s.stream(ctx, resp.Body, meta.ContentLength)
	resp.Body.Close()
	s.endRequest()
	if cerr := s.closeOutput(); cerr != nil && err == nil {
		err = newError(KindFileSystem, "closing output file: %v", cerr)
	}
	if err != nil {
		if s.stopped() {
			return fatal(s.interruptedError())
		}
		return fatal(err)
	}

	switch verify(received, meta.ContentLength, sum, meta.Checksum) {
	case verdictRetry:
		reporter.Clear()
		return retry(failByteMismatch, "received %d of %d bytes", received, meta.ContentLength)
	case verdictChecksumMismatch:
		return fatal(newError(KindChecksumMismatch, "expected %s, got %s",
			normalizeChecksum(meta.Checksum), sum))
	}

	reporter.Clear()
	reporter.Status("Validating security checksum")
	reporter.OK("")

	return done(&Result{Status: StatusDownloaded, Path: s.path, Version: version})
}

// stream copies body to the output file chunk by chunk, feeding each chunk
// to the checksum accumulator in arrival order. A premature end of body
// is not an error here: the short count is left to the verifier.
func (s *session) stream(ctx context.Context, body io.Reader, total int64) (int64, string, *Error) {
	file := s.output()
	if file == nil {
		return 0, "", newError(KindFileSystem, "output file is not open")
	}

	if s.svc.limiter != nil {
		body = &throttledReader{ctx: ctx, r: body, limiter: s.svc.limiter}
	}

	sum := &checksumWriter{hash: s.svc.opts.NewHash()}
	reporter := s.svc.opts.Reporter
	reporter.Progress(0, total)

	var received int64
	buf := make([]byte, chunkSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, err := file.Write(chunk); err != nil {
				return received, "", newError(KindFileSystem, "writing output file: %v", err)
			}
			sum.Write(chunk)
			received += int64(n)
			reporter.Progress(received, total)
		}

		switch {
		case rerr == nil:
			continue
		case errors.Is(rerr, io.EOF), errors.Is(rerr, io.ErrUnexpectedEOF):
			return received, sum.Sum(), nil
		default:
			return received, "", newError(KindServerStream, "%v", rerr)
		}
	}
}

// isTransientNetwork reports whether err is a refused or reset connection.
func isTransientNetwork(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
