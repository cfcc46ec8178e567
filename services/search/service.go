package search

import (
	"context"

	"dormly/apperror"
	dormTypes "dormly/types/dorm"

	"gorm.io/gorm"
)

// Service runs dorm searches against the database.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new search service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Search returns at most PageSize dorms matching f.
func (s *Service) Search(ctx context.Context, f Filters) ([]dormTypes.DormSummary, error) {
	q := Build(f)

	dorms := []dormTypes.DormSummary{}
	if err := s.DB.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&dorms).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	return dorms, nil
}
