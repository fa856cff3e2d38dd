package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
)

// TerminalOptions configures the terminal reporter.
type TerminalOptions struct {
	// Width is the number of cells used by the bar itself.
	// Default: 40
	Width int

	// RedrawInterval limits how often the bar is repainted.
	// Default: 100ms
	RedrawInterval time.Duration

	// NoColor disables ANSI colors.
	NoColor bool
}

// Terminal renders status lines and a single progress bar on one line of
// a terminal, overwriting it in place.
type Terminal struct {
	out  io.Writer
	opts TerminalOptions

	mu       sync.Mutex
	dirty    bool
	start    time.Time
	lastDraw time.Time
}

// NewTerminal creates a reporter writing to out.
func NewTerminal(out io.Writer, opts TerminalOptions) *Terminal {
	if opts.Width <= 0 {
		opts.Width = 40
	}
	if opts.RedrawInterval <= 0 {
		opts.RedrawInterval = 100 * time.Millisecond
	}

	return &Terminal{out: out, opts: opts}
}

// Status starts a pending status line, completed later by OK.
func (t *Terminal) Status(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clearLocked()
	fmt.Fprint(t.out, msg)
	t.dirty = true
}

// OK completes the pending status line with msg, or a check mark.
func (t *Terminal) OK(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if msg == "" {
		msg = "✓"
	}
	if t.dirty {
		fmt.Fprint(t.out, " ")
	}
	fmt.Fprintln(t.out, t.paint(color.FgGreen, msg))
	t.dirty = false
}

// Progress repaints the bar, at most once per RedrawInterval unless the
// transfer just completed.
func (t *Terminal) Progress(done, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if done == 0 {
		t.start = now
	}
	if done != total && now.Sub(t.lastDraw) < t.opts.RedrawInterval {
		return
	}
	t.lastDraw = now

	t.clearLocked()
	fmt.Fprint(t.out, t.render(done, total, now.Sub(t.start)))
	t.dirty = true
}

// Clear erases whatever is on the current line.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clearLocked()
}

func (t *Terminal) clearLocked() {
	if t.dirty {
		fmt.Fprint(t.out, "\r\033[K")
		t.dirty = false
	}
}

func (t *Terminal) render(done, total int64, elapsed time.Duration) string {
	var ratio float64
	if total > 0 {
		ratio = min(float64(done)/float64(total), 1)
	}

	filled := int(ratio * float64(t.opts.Width))
	bar := t.paint(color.FgGreen, strings.Repeat("▤", filled)) +
		t.paint(color.FgGray, strings.Repeat(" ", t.opts.Width-filled))

	return fmt.Sprintf("Downloading [%s] %3.0f%% %s %s",
		bar, ratio*100, formatBytes(done), formatETA(done, total, elapsed))
}

func (t *Terminal) paint(c color.Color, s string) string {
	if t.opts.NoColor {
		return s
	}

	return c.Render(s)
}

// formatETA estimates the remaining time from the average rate so far.
func formatETA(done, total int64, elapsed time.Duration) string {
	if done <= 0 || elapsed <= 0 || done >= total {
		return "0s"
	}

	rate := float64(done) / elapsed.Seconds()
	remaining := time.Duration(float64(total-done) / rate * float64(time.Second))

	return remaining.Round(time.Second).String()
}

// formatBytes formats bytes in human-readable form.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
