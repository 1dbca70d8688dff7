// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drake/glyphbox/boxes"
)

// Enabled returns true if debug mode is active (GLYPHBOX_DEBUG=1).
func Enabled() bool {
	return os.Getenv("GLYPHBOX_DEBUG") == "1"
}

// StatsSource reports render cache counters.
type StatsSource interface {
	Stats() boxes.CacheStats
}

// Monitor periodically logs render cache statistics when debug mode is
// enabled.
type Monitor struct {
	source   StatsSource
	interval time.Duration
	logger   *log.Logger
}

// NewMonitor creates a new monitor for the given source.
// If debug mode is not enabled, returns nil.
func NewMonitor(src StatsSource, logger *log.Logger) *Monitor {
	if !Enabled() {
		return nil
	}
	return newMonitor(src, logger, 5*time.Second)
}

func newMonitor(src StatsSource, logger *log.Logger, interval time.Duration) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{source: src, interval: interval, logger: logger}
}

// Start begins the monitoring loop in a goroutine. It stops when ctx is
// done.
func (m *Monitor) Start(ctx context.Context) {
	if m == nil {
		return
	}
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Debug("monitor started")

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()
	hitRate := 0.0
	if total := s.Hits + s.Misses; total > 0 {
		hitRate = float64(s.Hits) / float64(total)
	}
	m.logger.Info("render cache",
		"entries", s.Len,
		"hits", s.Hits,
		"misses", s.Misses,
		"failures", s.Failures,
		"hitRate", hitRate,
		"goroutines", runtime.NumGoroutine(),
	)
}
