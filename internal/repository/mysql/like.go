package mysql

import (
	"context"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/repository/mysql/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{
		DB: db,
	}
}

// Add is idempotent: the composite (comment_id, user_id) key swallows
// duplicate inserts, so re-liking affects zero rows.
func (l *likeRepository) Add(ctx context.Context, like domain.UserLike) (bool, error) {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	likeModel := model.NewUserLikeFromDomain(like)
	result := l.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&likeModel)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (l *likeRepository) Exists(ctx context.Context, commentID, userID string) (bool, error) {
	var count int64
	err := l.DB.WithContext(ctx).Model(&model.UserLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *likeRepository) Count(ctx context.Context, commentID string) (int64, error) {
	var count int64
	err := l.DB.WithContext(ctx).Model(&model.UserLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}
