package pipeline

import (
	"sync"
	"time"
)

// Stats summarises the frames an element has processed.
type Stats struct {
	// Frames is the number of Process calls after negotiation.
	Frames uint64
	// Skipped counts frames without a qualifying tensor group.
	Skipped uint64
	// Failures counts frames the decoder rejected.
	Failures uint64
	// Detections is the number of records attached across all frames.
	Detections uint64
	// Decode is the timing of successful and failed decoder calls.
	Decode Timing
}

// Timing tracks operation timing statistics.
type Timing struct {
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Avg returns the mean duration, or zero before the first sample.
func (t Timing) Avg() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

type statsTracker struct {
	mu    sync.Mutex
	stats Stats
}

// startDecode begins timing a decoder call. The returned function records
// the call's outcome and the number of records it added.
func (s *statsTracker) startDecode() func(added int, failed bool) {
	start := time.Now()
	return func(added int, failed bool) {
		s.record(time.Since(start), added, failed)
	}
}

func (s *statsTracker) record(d time.Duration, added int, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Frames++
	if failed {
		s.stats.Failures++
	}
	s.stats.Detections += uint64(added)

	t := &s.stats.Decode
	if t.Count == 0 || d < t.Min {
		t.Min = d
	}
	if d > t.Max {
		t.Max = d
	}
	t.Total += d
	t.Count++
}

func (s *statsTracker) skipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Frames++
	s.stats.Skipped++
}

func (s *statsTracker) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
