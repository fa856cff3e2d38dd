package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// session owns the temporary output file and the in-flight request of a
// single Download call. Only the running attempt touches them, and every
// access goes through mu so the guard can abort from another goroutine.
type session struct {
	svc    *Service
	id     string
	req    Request
	path   string
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	// announced is set once the first 200 response has been reported.
	announced bool

	mu          sync.Mutex
	file        *os.File
	inflight    context.CancelFunc
	aborted     bool
	interrupted bool
}

func newSession(ctx context.Context, svc *Service, req Request) *session {
	sessCtx, cancel := context.WithCancel(ctx)

	return &session{
		svc:    svc,
		id:     uuid.NewString(),
		req:    req,
		path:   tempFilePath(svc.opts.TempDir, svc.now()),
		parent: ctx,
		ctx:    sessCtx,
		cancel: cancel,
	}
}

func (s *session) start() (*Result, error) {
	defer s.cancel()

	logger := s.svc.logger.With("session", s.id, "path", s.path)

	if err := s.openOutput(); err != nil {
		return nil, newError(KindFileSystem, "%v", err)
	}

	guard := acquireGuard(s.svc.opts.Interrupter, s.abort)

	var res *Result
	var g errgroup.Group
	g.Go(func() error {
		return guard.watch(s.parent)
	})
	g.Go(func() error {
		defer guard.release()

		var err error
		res, err = s.run()
		return err
	})
	err := g.Wait()

	if s.isAborted() || errors.Is(err, ErrInterrupted) {
		s.discard(logger)
		s.svc.opts.Reporter.Clear()
		s.svc.opts.Reporter.Status("Download aborted")
		logger.Warn("download aborted")

		return nil, s.interruptedError()
	}

	if err != nil {
		s.discard(logger)
		s.svc.opts.Reporter.Clear()
		logger.Error("download failed", "error", err, "kind", KindOf(err))

		return nil, err
	}

	if res.Status == StatusAlreadySatisfied {
		s.discard(logger)
		logger.Info("already installed", "version", res.Version, "binary", res.BinaryPath)

		return res, nil
	}

	logger.Info("download complete", "version", res.Version)

	return res, nil
}

// openOutput creates or truncates the output file, releasing any handle
// held by a previous attempt first.
func (s *session) openOutput() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.aborted {
		return ErrInterrupted
	}

	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	s.file = file

	return nil
}

func (s *session) output() *os.File {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file
}

// closeOutput ends the output stream. Closing twice is not an error.
func (s *session) closeOutput() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}

	return err
}

// beginRequest returns the context for a new request, cancelling the
// previous one if it was still registered.
func (s *session) beginRequest(parent context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight != nil {
		s.inflight()
	}

	ctx, cancel := context.WithCancel(parent)
	s.inflight = cancel

	return ctx
}

func (s *session) endRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

// abort is run by the guard: it cancels the in-flight request and any
// pending backoff, then closes and deletes the output file.
func (s *session) abort(interrupted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.aborted = true
	s.interrupted = interrupted
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
	s.cancel()

	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	if err := removeFile(s.path); err != nil {
		s.svc.logger.Error("removing output file", "path", s.path, "error", err)
	}
}

func (s *session) isAborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.aborted
}

// stopped reports whether the session was aborted or its context ended.
func (s *session) stopped() bool {
	return s.isAborted() || s.ctx.Err() != nil
}

func (s *session) interruptedError() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interrupted {
		return newError(KindInterrupted, "interrupted by user")
	}

	return newError(KindInterrupted, "%v", context.Cause(s.parent))
}

// discard closes and removes the output file.
func (s *session) discard(logger *slog.Logger) {
	if err := s.closeOutput(); err != nil {
		logger.Error("closing output file", "error", err)
	}
	if err := removeFile(s.path); err != nil {
		logger.Error("removing output file", "error", err)
	}
}
