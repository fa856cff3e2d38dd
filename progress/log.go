package progress

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Log reports status and progress as structured log records, logging
// progress at most once per Interval.
type Log struct {
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	start   time.Time
	lastLog time.Time
}

// NewLog creates a reporter writing to logger. A zero interval defaults to one second.
func NewLog(logger *slog.Logger, interval time.Duration) *Log {
	if interval <= 0 {
		interval = time.Second
	}

	return &Log{logger: logger, interval: interval}
}

func (l *Log) Status(msg string) {
	l.logger.Info(msg)
}

func (l *Log) OK(msg string) {
	if msg != "" {
		l.logger.Info("ok", "detail", msg)
	}
}

func (l *Log) Progress(done, total int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if done == 0 {
		l.start = now
		l.lastLog = now
		return
	}

	if done != total && now.Sub(l.lastLog) < l.interval {
		return
	}
	l.lastLog = now

	elapsed := now.Sub(l.start)
	msg := "downloading"
	if done == total {
		msg = "download complete"
	}

	l.logger.Info(msg,
		"progress", fmt.Sprintf("%.1f%%", float64(done)/float64(total)*100),
		"elapsed", elapsed.Round(time.Millisecond),
		"transferred", done,
		"total", total,
	)
}

func (l *Log) Clear() {}

// Nop discards everything.
type Nop struct{}

func (Nop) Status(string)         {}
func (Nop) OK(string)             {}
func (Nop) Progress(int64, int64) {}
func (Nop) Clear()                {}
