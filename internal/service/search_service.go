package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/fuzumoe/linktorch-search/internal/crawler"
	"github.com/fuzumoe/linktorch-search/internal/model"
	"github.com/fuzumoe/linktorch-search/internal/repository"
	"github.com/fuzumoe/linktorch-search/internal/search"
)

var (
	ErrSearchNotFound = errors.New("search not found")
	ErrSearchFinished = errors.New("search already finished")
	ErrInvalidInput   = errors.New("invalid search input")
)

// SearchService defines business operations around keyword searches.
type SearchService interface {
	Start(input *model.CreateSearchInput) (*model.SearchDTO, error)
	Get(id string) (*model.SearchDTO, error)
	List(p repository.Pagination) (*model.PaginatedResponse[model.SearchDTO], error)
	Stop(id string) error
	Results(id string, p repository.Pagination) (*model.PaginatedResponse[model.SearchResult], error)
	Delete(id string) error
	Recover() (requeued, failed int, err error)
}

type searchService struct {
	searches repository.SearchRepository
	results  repository.SearchResultRepository
	pool     crawler.Pool
	registry *crawler.Registry
}

// NewSearchService constructs a SearchService.
func NewSearchService(
	s repository.SearchRepository,
	r repository.SearchResultRepository,
	p crawler.Pool,
	reg *crawler.Registry,
) SearchService {
	return &searchService{searches: s, results: r, pool: p, registry: reg}
}

// Start persists a queued search and hands it to the pool.
func (s *searchService) Start(in *model.CreateSearchInput) (*model.SearchDTO, error) {
	strategy, err := search.ParseStrategy(in.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	in.Keyword = strings.TrimSpace(in.Keyword)
	if in.Keyword == "" {
		return nil, fmt.Errorf("%w: keyword is empty", ErrInvalidInput)
	}
	if u, err := url.Parse(in.SeedURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: seed_url must be an absolute http(s) URL", ErrInvalidInput)
	}
	if in.MaxDepth < 0 || in.MaxLinks < 0 {
		return nil, fmt.Errorf("%w: limits must not be negative", ErrInvalidInput)
	}

	rec := model.SearchFromCreateInput(in, string(strategy))
	if err := s.searches.Create(rec); err != nil {
		return nil, fmt.Errorf("cannot create search: %w", err)
	}
	if err := s.pool.Enqueue(rec.ID); err != nil {
		_ = s.searches.UpdateStatus(rec.ID, model.StatusError)
		return nil, fmt.Errorf("cannot queue search: %w", err)
	}
	return rec.ToDTO(), nil
}

// Get returns the stored search, overlaid with live progress while it runs.
func (s *searchService) Get(id string) (*model.SearchDTO, error) {
	rec, err := s.find(id)
	if err != nil {
		return nil, err
	}
	dto := rec.ToDTO()
	if live, ok := s.registry.Get(id); ok {
		dto.Crawling = live.Session.IsCrawling()
		if live.Results != nil {
			dto.PagesVisited, dto.Matches, dto.Failures = tally(live.Results.Results())
		}
	}
	return dto, nil
}

func (s *searchService) List(p repository.Pagination) (*model.PaginatedResponse[model.SearchDTO], error) {
	rows, err := s.searches.List(p)
	if err != nil {
		return nil, err
	}
	total, err := s.searches.Count()
	if err != nil {
		return nil, err
	}

	dtos := make([]model.SearchDTO, len(rows))
	for i := range rows {
		dtos[i] = *rows[i].ToDTO()
		if live, ok := s.registry.Get(rows[i].ID); ok {
			dtos[i].Crawling = live.Session.IsCrawling()
		}
	}
	return &model.PaginatedResponse[model.SearchDTO]{
		Data:       dtos,
		Pagination: model.NewPaginationMeta(p.Number(), p.Limit(), total),
	}, nil
}

// Stop asks a running search to finish after its current page. A search with
// no live session, queued or left running by an earlier process, is marked
// stopped directly; a worker that picks it up later still sees the stop.
func (s *searchService) Stop(id string) error {
	rec, err := s.find(id)
	if err != nil {
		return err
	}
	if rec.Finished() {
		return ErrSearchFinished
	}
	if s.registry.RequestStop(id) {
		return nil
	}
	if err := s.searches.UpdateStatus(id, model.StatusStopped); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSearchNotFound
		}
		return err
	}
	return nil
}

// Recover reconciles searches left unfinished by an earlier process. Queued
// searches go back on the pool; running ones lost their session and are
// marked as errors. It must run before the pool starts taking work.
func (s *searchService) Recover() (requeued, failed int, err error) {
	rows, err := s.searches.ListByStatus(model.StatusQueued, model.StatusRunning)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot list unfinished searches: %w", err)
	}
	for _, rec := range rows {
		if _, live := s.registry.Get(rec.ID); live {
			continue
		}
		if rec.Status == model.StatusQueued {
			if err := s.pool.Enqueue(rec.ID); err == nil {
				requeued++
				continue
			}
		}
		if err := s.searches.UpdateStatus(rec.ID, model.StatusError); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return requeued, failed, fmt.Errorf("cannot fail search %s: %w", rec.ID, err)
		}
		failed++
	}
	return requeued, failed, nil
}

func (s *searchService) Results(id string, p repository.Pagination) (*model.PaginatedResponse[model.SearchResult], error) {
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	rows, err := s.results.ListBySearch(id, p)
	if err != nil {
		return nil, fmt.Errorf("failed to get search results: %w", err)
	}
	total, err := s.results.CountBySearch(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}
	return &model.PaginatedResponse[model.SearchResult]{
		Data:       rows,
		Pagination: model.NewPaginationMeta(p.Number(), p.Limit(), total),
	}, nil
}

// Delete stops the search if it is live and removes it.
func (s *searchService) Delete(id string) error {
	if _, ok := s.registry.Get(id); ok {
		s.registry.RequestStop(id)
	}
	if err := s.searches.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSearchNotFound
		}
		return err
	}
	return nil
}

func (s *searchService) find(id string) (*model.Search, error) {
	rec, err := s.searches.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSearchNotFound
		}
		return nil, err
	}
	return rec, nil
}

// tally counts attempts, matches and failures in results.
func tally(results []search.CrawlResult) (attempts, matches, failures int) {
	for _, r := range results {
		attempts++
		if r.Matched() {
			matches++
		}
		if !r.FetchSucceeded() {
			failures++
		}
	}
	return attempts, matches, failures
}
