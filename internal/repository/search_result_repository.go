package repository

import (
	"gorm.io/gorm"

	"github.com/fuzumoe/linktorch-search/internal/model"
)

// SearchResultRepository defines DB ops for per-page search results.
type SearchResultRepository interface {
	Create(res *model.SearchResult) error
	ListBySearch(searchID string, p Pagination) ([]model.SearchResult, error)
	CountBySearch(searchID string) (int, error)
}

type searchResultRepo struct{ db *gorm.DB }

func NewSearchResultRepo(db *gorm.DB) SearchResultRepository {
	return &searchResultRepo{db: db}
}

func (r *searchResultRepo) Create(res *model.SearchResult) error {
	return r.db.Create(res).Error
}

// ListBySearch returns results in visit order.
func (r *searchResultRepo) ListBySearch(searchID string, p Pagination) ([]model.SearchResult, error) {
	var results []model.SearchResult
	err := r.db.
		Where("search_id = ?", searchID).
		Order("sequence ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&results).Error
	return results, err
}

func (r *searchResultRepo) CountBySearch(searchID string) (int, error) {
	var n int64
	if err := r.db.Model(&model.SearchResult{}).Where("search_id = ?", searchID).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
