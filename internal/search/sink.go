package search

import "sync"

// ResultSink receives results in sequence order. It must accept appends
// while other goroutines read from it.
type ResultSink interface {
	Append(r CrawlResult)
}

// MemorySink keeps results in memory in append order.
type MemorySink struct {
	mu      sync.RWMutex
	results []CrawlResult
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append adds r to the end of the sink.
func (s *MemorySink) Append(r CrawlResult) {
	s.mu.Lock()
	s.results = append(s.results, r)
	s.mu.Unlock()
}

// Len returns the number of appended results.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Results returns a copy of the results appended so far.
func (s *MemorySink) Results() []CrawlResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CrawlResult, len(s.results))
	copy(out, s.results)
	return out
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(r CrawlResult)

// Append calls f(r).
func (f SinkFunc) Append(r CrawlResult) { f(r) }

// MultiSink fans each result out to every sink in order.
func MultiSink(sinks ...ResultSink) ResultSink {
	return SinkFunc(func(r CrawlResult) {
		for _, s := range sinks {
			s.Append(r)
		}
	})
}
