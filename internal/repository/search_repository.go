package repository

import (
	"gorm.io/gorm"

	"github.com/fuzumoe/linktorch-search/internal/model"
)

// SearchRepository defines DB ops around Search entities.
type SearchRepository interface {
	Create(s *model.Search) error
	FindByID(id string) (*model.Search, error)
	List(p Pagination) ([]model.Search, error)
	Count() (int, error)
	ListByStatus(statuses ...string) ([]model.Search, error)
	UpdateStatus(id string, status string) error
	UpdateProgress(id string, visited, matches, failures int) error
	Delete(id string) error
}

type searchRepo struct {
	db *gorm.DB
}

func NewSearchRepo(db *gorm.DB) SearchRepository {
	return &searchRepo{db: db}
}

func (r *searchRepo) Create(s *model.Search) error {
	return r.db.Create(s).Error
}

func (r *searchRepo) FindByID(id string) (*model.Search, error) {
	var s model.Search
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns searches newest first.
func (r *searchRepo) List(p Pagination) ([]model.Search, error) {
	var searches []model.Search
	err := r.db.
		Order("created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&searches).Error
	return searches, err
}

func (r *searchRepo) Count() (int, error) {
	var n int64
	if err := r.db.Model(&model.Search{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// ListByStatus returns every search in one of statuses, oldest first.
func (r *searchRepo) ListByStatus(statuses ...string) ([]model.Search, error) {
	var searches []model.Search
	err := r.db.
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Find(&searches).Error
	return searches, err
}

func (r *searchRepo) UpdateStatus(id string, status string) error {
	res := r.db.Model(&model.Search{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *searchRepo) UpdateProgress(id string, visited, matches, failures int) error {
	return r.db.Model(&model.Search{}).Where("id = ?", id).Updates(map[string]any{
		"pages_visited": visited,
		"matches":       matches,
		"failures":      failures,
	}).Error
}

func (r *searchRepo) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Search{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
