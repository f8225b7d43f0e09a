package monitoring

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSearchMonitor_Record(t *testing.T) {
	m := NewSearchMonitor(time.Minute)

	m.Record(2*time.Millisecond, true, nil)
	m.Record(4*time.Millisecond, false, nil)
	m.Record(6*time.Millisecond, false, errors.New("bad cell"))

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.Searches)
	assert.Equal(t, int64(1), s.Unreachable)
	assert.Equal(t, int64(1), s.Failures)
	assert.Equal(t, 4*time.Millisecond, s.Mean)
	assert.Equal(t, 6*time.Millisecond, s.Slowest)
	assert.Positive(t, s.PeakGoroutines)
}

func TestSearchMonitor_Empty(t *testing.T) {
	s := NewSearchMonitor(0).Snapshot()
	assert.Zero(t, s.Searches)
	assert.Zero(t, s.Mean)
}

func TestSearchMonitor_ConcurrentRecord(t *testing.T) {
	m := NewSearchMonitor(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(time.Microsecond, j%2 == 0, nil)
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, int64(800), s.Searches)
	assert.Equal(t, int64(400), s.Unreachable)
}

func TestSearchMonitor_Report(t *testing.T) {
	var buf bytes.Buffer
	m := NewSearchMonitor(10 * time.Millisecond)
	m.SetLogger(zerolog.New(&buf))
	m.Record(time.Millisecond, true, nil)

	m.Report()
	assert.Contains(t, buf.String(), `"message":"Path search metrics"`)
	assert.Contains(t, buf.String(), `"searches":1`)
	assert.Contains(t, buf.String(), `"component":"search_monitor"`)
}

func TestSearchMonitor_StartStop(t *testing.T) {
	m := NewSearchMonitor(5 * time.Millisecond)
	m.SetLogger(zerolog.Nop())
	m.Start()
	time.Sleep(20 * time.Millisecond)
	m.Stop()
	m.Stop()
}
