package crawler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fuzumoe/linktorch-search/internal/model"
	"github.com/fuzumoe/linktorch-search/internal/repository"
	"github.com/fuzumoe/linktorch-search/internal/search"
)

// worker runs one search at a time from the pool queue.
type worker struct {
	id   int
	ctx  context.Context
	deps Deps
	log  *zap.Logger
}

func newWorker(id int, ctx context.Context, deps Deps) *worker {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Registry == nil {
		deps.Registry = NewRegistry()
	}
	return &worker{id: id, ctx: ctx, deps: deps, log: deps.Logger.With(zap.Int("worker", id))}
}

// NewWorker creates and returns a new worker instance.
func NewWorker(id int, ctx context.Context, deps Deps) *worker {
	return newWorker(id, ctx, deps)
}

// run processes search IDs until the channel closes or ctx is cancelled.
func (w *worker) run(tasks <-chan string) {
	for {
		select {
		case <-w.ctx.Done():
			return
		case id, ok := <-tasks:
			if !ok {
				return
			}
			if id == "" {
				continue
			}
			w.process(id)
		}
	}
}

// Run is an exported wrapper around the unexported run method.
func (w *worker) Run(tasks <-chan string) {
	w.run(tasks)
}

// Process is an exported wrapper around the unexported process method.
func (w *worker) Process(searchID string) {
	w.process(searchID)
}

// process loads a queued search, runs it to completion and stores the outcome.
func (w *worker) process(id string) {
	log := w.log.With(zap.String("search_id", id))
	repo := w.deps.Searches

	rec, err := repo.FindByID(id)
	if err != nil {
		setErr(repo, id, err)
		log.Error("lookup failed", zap.Error(err))
		return
	}

	// A stop request can land while the search waits in the queue.
	if rec.Status == model.StatusStopped {
		w.deps.Registry.Unregister(id)
		log.Info("skipping stopped search")
		return
	}

	strategy, err := search.ParseStrategy(rec.Strategy)
	if err != nil {
		setErr(repo, id, err)
		log.Error("bad strategy", zap.Error(err))
		return
	}
	frontier, err := search.NewFrontier(strategy)
	if err != nil {
		setErr(repo, id, err)
		log.Error("bad strategy", zap.Error(err))
		return
	}

	if err := repo.UpdateStatus(id, model.StatusRunning); err != nil {
		log.Error("cannot set running", zap.Error(err))
		return
	}

	mem := search.NewMemorySink()
	sess := search.NewSession(rec.Keyword, search.MultiSink(mem, w.persist(id, log)))
	sess.SetMaxDepth(rec.MaxDepth)
	sess.SetMaxLinksPerPage(rec.MaxLinks)

	w.deps.Registry.Register(id, &Live{Session: sess, Results: mem})
	defer w.deps.Registry.Unregister(id)

	engine := search.NewEngine(sess, frontier, w.deps.Fetcher,
		search.WithNotifier(search.NewLogNotifier(log)))

	start := time.Now()
	sum := engine.Search(w.ctx, rec.SeedURL)

	status := model.StatusDone
	if sum.Stopped {
		status = model.StatusStopped
	}
	err = repo.UpdateProgress(id, sum.Attempts, sum.Matches, sum.Failures)
	if err == nil {
		err = repo.UpdateStatus(id, status)
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// deleted while running
		log.Info("search deleted before it finished")
	case err != nil:
		log.Error("cannot save final state", zap.Error(err))
	}

	log.Info("search finished",
		zap.String("status", status),
		zap.Int("pages", sum.Attempts),
		zap.Int("matches", sum.Matches),
		zap.Int("failures", sum.Failures),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)))
}

// persist stores every result row as the engine produces it. A failed insert
// is logged; the search goes on.
func (w *worker) persist(id string, log *zap.Logger) search.ResultSink {
	return search.SinkFunc(func(r search.CrawlResult) {
		if w.deps.Results == nil {
			return
		}
		if err := w.deps.Results.Create(model.SearchResultFromCrawl(id, r)); err != nil {
			log.Warn("cannot save result", zap.Int("sequence", r.Sequence()), zap.Error(err))
		}
	})
}

// setErr updates the status to Error if the error is not a record not found.
func setErr(repo repository.SearchRepository, id string, err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		_ = repo.UpdateStatus(id, model.StatusError)
	}
}
