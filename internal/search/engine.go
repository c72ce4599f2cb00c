package search

import (
	"context"
	"fmt"
)

// Fetcher downloads a page and populates its content and links.
// It should bound its own latency; the engine applies no timeout.
type Fetcher interface {
	Fetch(ctx context.Context, page *Page) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, page *Page) error

func (f FetcherFunc) Fetch(ctx context.Context, page *Page) error { return f(ctx, page) }

// Summary describes a finished traversal.
type Summary struct {
	Attempts int
	Matches  int
	Failures int
	Stopped  bool
}

// Engine runs one keyword search over a Frontier. An Engine and its Session
// serve a single Search call.
type Engine struct {
	session  *Session
	frontier Frontier
	fetcher  Fetcher
	notifier Notifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the progress observer.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// NewEngine binds a session, a frontier discipline and a fetcher.
func NewEngine(session *Session, frontier Frontier, fetcher Fetcher, opts ...Option) *Engine {
	e := &Engine{
		session:  session,
		frontier: frontier,
		fetcher:  fetcher,
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the engine's session, for stop requests and polling.
func (e *Engine) Session() *Session { return e.session }

// Search traverses the graph from seed until the frontier drains, a stop is
// requested, or ctx is done. Failures on single pages are recorded and never
// end the search. A failed address stays visited and is not fetched again,
// even when a later page links to it.
func (e *Engine) Search(ctx context.Context, seed string) Summary {
	s := e.session
	s.SetCrawling(true)
	defer s.SetCrawling(false)

	var sum Summary
	e.frontier.Insert(NewPage(seed, 0))

	for !e.frontier.IsEmpty() {
		if s.StopRequested() || ctx.Err() != nil {
			sum.Stopped = true
			break
		}

		page := e.frontier.RemoveNext()
		e.notifier.Visiting(page)

		s.NextSequence()
		sum.Attempts++
		err := e.fetch(ctx, page)
		s.MarkVisited(page.Address())
		if err != nil {
			s.RecordFailure(page, asFetchError(page.Address(), err).Error())
			sum.Failures++
			continue
		}

		matched := page.ContainsKeyword(s.Keyword())
		if matched {
			e.notifier.Matched(page, s.Keyword())
			sum.Matches++
		}
		s.RecordSuccess(page, matched)

		if page.Depth() < s.MaxDepth() {
			e.expand(page)
		}
	}
	return sum
}

// fetch calls the fetcher, turning a panic into an error.
func (e *Engine) fetch(ctx context.Context, page *Page) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetcher panic: %v", r)
		}
	}()
	return e.fetcher.Fetch(ctx, page)
}

// expand pushes unseen outbound links while the frontier holds fewer than
// MaxLinksPerPage pages.
func (e *Engine) expand(page *Page) {
	limit := e.session.MaxLinksPerPage()
	for link := range page.OutboundLinks() {
		if e.frontier.PendingCount() >= limit {
			return
		}
		addr := link.Address()
		if e.session.HasVisited(addr) || e.frontier.ContainsPending(addr) {
			continue
		}
		e.frontier.Insert(link)
	}
}
