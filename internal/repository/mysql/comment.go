package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Create(model.NewCommentFromDomain(comment)).Error
}

func (c *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var commentModel model.Comment
	err := c.DB.WithContext(ctx).First(&commentModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	comment := commentModel.ToDomain()
	return &comment, nil
}

// GetByIDs silently omits ids that do not exist; the caller reconciles
// counts itself.
func (c *commentRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error) {
	if len(ids) == 0 {
		return []*domain.Comment{}, nil
	}
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		comment := comments[i].ToDomain()
		res = append(res, &comment)
	}
	return res, nil
}

func (c *commentRepository) FetchByTree(ctx context.Context, treeID string) ([]*domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		comment := comments[i].ToDomain()
		res = append(res, &comment)
	}
	return res, nil
}

func (c *commentRepository) UpdatePayload(ctx context.Context, id string, payload json.RawMessage) error {
	result := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payload":    string(payload),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkDeleted tombstones the row. The guard on deleted = false makes a
// double delete report false instead of decrementing the tree count twice.
func (c *commentRepository) MarkDeleted(ctx context.Context, id string) (bool, error) {
	result := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]any{
			"deleted":    true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (c *commentRepository) SyncLikeCounts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.DB.WithContext(ctx).
		Exec("UPDATE comment SET like_count = (SELECT COUNT(*) FROM user_likes WHERE user_likes.comment_id = comment.id) WHERE id IN ?", ids).
		Error
}
