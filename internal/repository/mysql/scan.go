package mysql

import (
	"context"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type searchRepository struct {
	DB *gorm.DB
}

var _ domain.SearchRepository = (*searchRepository)(nil)

func NewSearchRepository(db *gorm.DB) *searchRepository {
	return &searchRepository{
		DB: db,
	}
}

// Scan runs an ANDed predicate map against the comment rows. Scalar values
// become equality predicates, slice values become IN. Ordering is fixed at
// (created_at, id) so pages stay stable under concurrent appends.
func (s *searchRepository) Scan(ctx context.Context, predicates map[string]any, after time.Time, afterID string, limit, offset int64) ([]*domain.Comment, int64, error) {
	query := s.DB.WithContext(ctx).Model(&model.Comment{})
	if len(predicates) > 0 {
		query = query.Where(predicates)
	}
	if !after.IsZero() {
		// The boundary must mirror the (created_at, id) ordering, or rows
		// tied on created_at with the last comment of the previous page
		// would never be returned.
		query = query.Where("created_at > ? OR (created_at = ? AND id > ?)", after, after, afterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.
		Order("created_at ASC, id ASC").
		Limit(int(limit)).
		Offset(int(offset)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		comment := comments[i].ToDomain()
		res = append(res, &comment)
	}
	return res, total, nil
}

func (s *searchRepository) ScanTrees(ctx context.Context, predicates map[string]any) ([]*domain.CommentTree, error) {
	var trees []model.CommentTree
	query := s.DB.WithContext(ctx).Model(&model.CommentTree{})
	if len(predicates) > 0 {
		query = query.Where(predicates)
	}
	if err := query.Find(&trees).Error; err != nil {
		return nil, err
	}

	res := make([]*domain.CommentTree, 0, len(trees))
	for i := range trees {
		tree := trees[i].ToDomain()
		res = append(res, &tree)
	}
	return res, nil
}
