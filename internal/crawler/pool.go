package crawler

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/fuzumoe/linktorch-search/internal/repository"
	"github.com/fuzumoe/linktorch-search/internal/search"
)

var (
	ErrQueueFull  = errors.New("search queue is full")
	ErrPoolClosed = errors.New("search pool is shut down")
)

// Pool is injected into the search service so handlers can queue searches.
type Pool interface {
	// Start runs background workers until the passed context is cancelled.
	Start(ctx context.Context)
	Enqueue(searchID string) error
	Shutdown()
}

// Deps are the collaborators every worker shares.
type Deps struct {
	Searches repository.SearchRepository
	Results  repository.SearchResultRepository
	Fetcher  search.Fetcher
	Registry *Registry
	Logger   *zap.Logger
}

// New creates a pool running up to workers searches at once, buffering buf queued IDs.
func New(deps Deps, workers, buf int) Pool {
	if workers <= 0 {
		workers = 4
	}
	if buf <= 0 {
		buf = 128
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Registry == nil {
		deps.Registry = NewRegistry()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &pool{
		deps:    deps,
		workers: workers,
		tasks:   make(chan string, buf),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// pool manages a set of workers that run queued searches.
type pool struct {
	deps    Deps
	workers int
	tasks   chan string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	shutdown sync.Once
}

// Start spins up background workers and blocks until ctx is cancelled or
// Shutdown is called.
func (p *pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		w := newWorker(i+1, p.ctx, p.deps)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run(p.tasks)
		}()
	}
	p.deps.Logger.Info("search pool started", zap.Int("workers", p.workers))

	select {
	case <-ctx.Done():
	case <-p.ctx.Done():
	}
	p.Shutdown()
}

// Enqueue drops a search ID onto the buffered channel without blocking.
func (p *pool) Enqueue(searchID string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- searchID:
		return nil
	default:
		p.deps.Logger.Warn("search queue full", zap.String("search_id", searchID))
		return ErrQueueFull
	}
}

// Shutdown cancels running searches, closes the queue and waits for workers.
func (p *pool) Shutdown() {
	p.shutdown.Do(func() {
		p.cancel()
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
		p.deps.Logger.Info("search pool stopped")
	})
}
