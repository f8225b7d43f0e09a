package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SearchMonitor aggregates path search outcomes and periodically logs them
// together with the goroutine count of the process
type SearchMonitor struct {
	mu          sync.RWMutex
	searches    int64
	unreachable int64
	failures    int64
	total       time.Duration
	slowest     time.Duration
	peakRoutine int

	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	logger   zerolog.Logger
}

// NewSearchMonitor creates a monitor that reports every interval once started
func NewSearchMonitor(interval time.Duration) *SearchMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SearchMonitor{
		interval:    interval,
		stopChan:    make(chan struct{}),
		peakRoutine: runtime.NumGoroutine(),
		logger:      log.With().Str("component", "search_monitor").Logger(),
	}
}

// SetLogger overrides the component logger
func (m *SearchMonitor) SetLogger(l zerolog.Logger) {
	m.logger = l.With().Str("component", "search_monitor").Logger()
}

// Record registers one finished search. err is non-nil for rejected requests.
func (m *SearchMonitor) Record(elapsed time.Duration, reachable bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searches++
	m.total += elapsed
	if elapsed > m.slowest {
		m.slowest = elapsed
	}
	switch {
	case err != nil:
		m.failures++
	case !reachable:
		m.unreachable++
	}
}

// Start begins periodic reporting
func (m *SearchMonitor) Start() {
	go m.run()
	m.logger.Info().Dur("interval", m.interval).Msg("Started search monitoring")
}

// Stop ends periodic reporting. It is safe to call more than once.
func (m *SearchMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

func (m *SearchMonitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Report()
		case <-m.stopChan:
			return
		}
	}
}

// Report logs the current metrics once
func (m *SearchMonitor) Report() {
	routines := runtime.NumGoroutine()
	m.mu.Lock()
	if routines > m.peakRoutine {
		m.peakRoutine = routines
	}
	m.mu.Unlock()

	s := m.Snapshot()
	m.logger.Info().
		Int64("searches", s.Searches).
		Int64("unreachable", s.Unreachable).
		Int64("failures", s.Failures).
		Dur("mean", s.Mean).
		Dur("slowest", s.Slowest).
		Int("goroutines", routines).
		Int("peak_goroutines", s.PeakGoroutines).
		Msg("Path search metrics")
}

// Snapshot returns the metrics gathered so far
func (m *SearchMonitor) Snapshot() SearchMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := SearchMetrics{
		Searches:       m.searches,
		Unreachable:    m.unreachable,
		Failures:       m.failures,
		Slowest:        m.slowest,
		PeakGoroutines: m.peakRoutine,
	}
	if m.searches > 0 {
		s.Mean = m.total / time.Duration(m.searches)
	}
	return s
}

// SearchMetrics contains path search statistics
type SearchMetrics struct {
	Searches       int64         `json:"searches"`
	Unreachable    int64         `json:"unreachable"`
	Failures       int64         `json:"failures"`
	Mean           time.Duration `json:"mean"`
	Slowest        time.Duration `json:"slowest"`
	PeakGoroutines int           `json:"peak_goroutines"`
}
