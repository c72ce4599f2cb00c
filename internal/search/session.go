package search

import "sync/atomic"

// Session holds the state of one search invocation. The visited set and the
// sequence counter belong to the goroutine running the traversal; only the
// stop and crawling flags are safe to touch from elsewhere.
type Session struct {
	keyword  string
	maxDepth int
	maxLinks int

	visited  map[string]struct{}
	sequence int

	crawling atomic.Bool
	stop     atomic.Bool

	sink ResultSink
}

// NewSession creates a session with no expansion configured.
func NewSession(keyword string, sink ResultSink) *Session {
	return &Session{
		keyword: keyword,
		visited: make(map[string]struct{}),
		sink:    sink,
	}
}

func (s *Session) Keyword() string           { return s.keyword }
func (s *Session) SetKeyword(keyword string) { s.keyword = keyword }
func (s *Session) MaxDepth() int             { return s.maxDepth }
func (s *Session) SetMaxDepth(depth int)     { s.maxDepth = depth }
func (s *Session) MaxLinksPerPage() int      { return s.maxLinks }
func (s *Session) SetMaxLinksPerPage(n int)  { s.maxLinks = n }

// HasVisited reports whether address has been attempted.
func (s *Session) HasVisited(address string) bool {
	_, ok := s.visited[address]
	return ok
}

// MarkVisited adds address to the visited set.
func (s *Session) MarkVisited(address string) {
	s.visited[address] = struct{}{}
}

// VisitedCount returns the size of the visited set.
func (s *Session) VisitedCount() int { return len(s.visited) }

// NextSequence advances the attempt counter and returns the new value.
func (s *Session) NextSequence() int {
	s.sequence++
	return s.sequence
}

// Sequence returns the number of the latest attempt, 0 before the first.
func (s *Session) Sequence() int { return s.sequence }

// RecordSuccess appends a success result for the current attempt.
func (s *Session) RecordSuccess(page *Page, matched bool) CrawlResult {
	r := NewSuccessResult(page, s.sequence, matched)
	s.append(r)
	return r
}

// RecordFailure appends a failure result for the current attempt.
func (s *Session) RecordFailure(page *Page, message string) CrawlResult {
	r := NewFailureResult(page, s.sequence, message)
	s.append(r)
	return r
}

func (s *Session) append(r CrawlResult) {
	if s.sink != nil {
		s.sink.Append(r)
	}
}

// RequestStop asks the traversal to end before its next page.
func (s *Session) RequestStop() { s.stop.Store(true) }

// StopRequested reports whether RequestStop has been called.
func (s *Session) StopRequested() bool { return s.stop.Load() }

func (s *Session) IsCrawling() bool   { return s.crawling.Load() }
func (s *Session) SetCrawling(v bool) { s.crawling.Store(v) }
