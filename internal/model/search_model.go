package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Search lifecycle states.
const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusStopped = "stopped"
	StatusError   = "error"
)

// Search is one keyword search request and its progress.
type Search struct {
	ID           string         `gorm:"type:char(36);primaryKey" json:"id"`
	Keyword      string         `gorm:"size:255;not null" json:"keyword"`
	SeedURL      string         `gorm:"type:text;not null" json:"seed_url"`
	Strategy     string         `gorm:"size:16;not null;default:'breadth'" json:"strategy"`
	MaxDepth     int            `gorm:"not null" json:"max_depth"`
	MaxLinks     int            `gorm:"not null" json:"max_links"`
	Status       string         `gorm:"size:16;not null;default:'queued';index" json:"status"`
	PagesVisited int            `json:"pages_visited"`
	Matches      int            `json:"matches"`
	Failures     int            `json:"failures"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for Search.
func (Search) TableName() string {
	return "searches"
}

// BeforeCreate assigns a UUID when the caller did not.
func (s *Search) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Finished reports whether the search has reached a terminal state.
func (s *Search) Finished() bool {
	switch s.Status {
	case StatusDone, StatusStopped, StatusError:
		return true
	}
	return false
}

// SearchDTO is the API view of a Search.
type SearchDTO struct {
	ID           string    `json:"id"`
	Keyword      string    `json:"keyword"`
	SeedURL      string    `json:"seed_url"`
	Strategy     string    `json:"strategy"`
	MaxDepth     int       `json:"max_depth"`
	MaxLinks     int       `json:"max_links"`
	Status       string    `json:"status"`
	Crawling     bool      `json:"crawling"`
	PagesVisited int       `json:"pages_visited"`
	Matches      int       `json:"matches"`
	Failures     int       `json:"failures"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSearchInput is the payload that starts a search.
type CreateSearchInput struct {
	Keyword  string `json:"keyword" binding:"required"`
	SeedURL  string `json:"seed_url" binding:"required,url"`
	Strategy string `json:"strategy"` // parsed by search.ParseStrategy
	MaxDepth int    `json:"max_depth" binding:"gte=0"`
	MaxLinks int    `json:"max_links" binding:"gte=0"`
}

// ToDTO converts a Search model to a SearchDTO.
func (s *Search) ToDTO() *SearchDTO {
	return &SearchDTO{
		ID:           s.ID,
		Keyword:      s.Keyword,
		SeedURL:      s.SeedURL,
		Strategy:     s.Strategy,
		MaxDepth:     s.MaxDepth,
		MaxLinks:     s.MaxLinks,
		Status:       s.Status,
		PagesVisited: s.PagesVisited,
		Matches:      s.Matches,
		Failures:     s.Failures,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// SearchFromCreateInput maps CreateSearchInput to a queued Search.
func SearchFromCreateInput(input *CreateSearchInput, strategy string) *Search {
	now := time.Now()
	return &Search{
		ID:        uuid.NewString(),
		Keyword:   input.Keyword,
		SeedURL:   input.SeedURL,
		Strategy:  strategy,
		MaxDepth:  input.MaxDepth,
		MaxLinks:  input.MaxLinks,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
