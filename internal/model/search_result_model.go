package model

import (
	"time"

	"github.com/fuzumoe/linktorch-search/internal/search"
)

// SearchResult is one page-visit outcome of a Search.
type SearchResult struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SearchID       string    `gorm:"type:char(36);not null;index" json:"search_id"`
	Sequence       int       `gorm:"not null" json:"sequence"`
	Address        string    `gorm:"type:text;not null" json:"address"`
	Depth          int       `json:"depth"`
	Matched        bool      `json:"matched"`
	FetchSucceeded bool      `json:"fetch_succeeded"`
	Error          string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the name of the table for SearchResult.
func (SearchResult) TableName() string {
	return "search_results"
}

// SearchResultFromCrawl maps an engine result to a row of the given search.
func SearchResultFromCrawl(searchID string, r search.CrawlResult) *SearchResult {
	return &SearchResult{
		SearchID:       searchID,
		Sequence:       r.Sequence(),
		Address:        r.Page().Address(),
		Depth:          r.Page().Depth(),
		Matched:        r.Matched(),
		FetchSucceeded: r.FetchSucceeded(),
		Error:          r.Error(),
	}
}
