package download

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type osInterrupter struct{}

func (osInterrupter) Notify(c chan<- os.Signal) {
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
}

func (osInterrupter) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// cancelGuard owns the two cleanup hooks of a session. The interrupt hook
// fires on a user signal; the exit hook fires when the parent context ends
// first. Whichever fires first wins, and neither fires after release.
type cancelGuard struct {
	interrupter Interrupter
	signals     chan os.Signal
	released    chan struct{}
	onAbort     func(interrupted bool)

	mu          sync.Mutex
	settled     bool
	releaseOnce sync.Once
}

func acquireGuard(in Interrupter, onAbort func(interrupted bool)) *cancelGuard {
	g := &cancelGuard{
		interrupter: in,
		signals:     make(chan os.Signal, 1),
		released:    make(chan struct{}),
		onAbort:     onAbort,
	}
	in.Notify(g.signals)

	return g
}

// watch blocks until one of the hooks fires or the guard is released.
func (g *cancelGuard) watch(ctx context.Context) error {
	select {
	case <-g.signals:
		g.fire(true)
	case <-ctx.Done():
		g.fire(false)
	case <-g.released:
	}

	return nil
}

func (g *cancelGuard) fire(interrupted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.settled {
		return
	}
	g.settled = true
	g.interrupter.Stop(g.signals)
	g.onAbort(interrupted)
}

// release deregisters both hooks. It is safe to call more than once.
func (g *cancelGuard) release() {
	g.releaseOnce.Do(func() {
		g.mu.Lock()
		if !g.settled {
			g.settled = true
			g.interrupter.Stop(g.signals)
		}
		g.mu.Unlock()

		close(g.released)
	})
}
