package mysql

import (
	"context"
	"errors"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/repository/mysql/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type treeRepository struct {
	DB *gorm.DB
}

var _ domain.TreeRepository = (*treeRepository)(nil)

func NewTreeRepository(db *gorm.DB) *treeRepository {
	return &treeRepository{
		DB: db,
	}
}

// CreateIfAbsent relies on the unique signature index: a conflicting insert
// affects zero rows, in which case the winner's row is read back. This is
// the single serialization point for racing first comments.
func (r *treeRepository) CreateIfAbsent(ctx context.Context, t *domain.CommentTree) (bool, *domain.CommentTree, error) {
	treeModel := model.NewCommentTreeFromDomain(t)
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(treeModel)
	if result.Error != nil {
		return false, nil, result.Error
	}
	if result.RowsAffected > 0 {
		created := treeModel.ToDomain()
		return true, &created, nil
	}

	// Lost the race; somebody else owns this signature now.
	existing, err := r.GetBySignature(ctx, t.Signature)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

func (r *treeRepository) GetByID(ctx context.Context, id string) (*domain.CommentTree, error) {
	var treeModel model.CommentTree
	err := r.DB.WithContext(ctx).First(&treeModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	tree := treeModel.ToDomain()
	return &tree, nil
}

func (r *treeRepository) GetBySignature(ctx context.Context, sig domain.EntitySignature) (*domain.CommentTree, error) {
	var treeModel model.CommentTree
	err := r.DB.WithContext(ctx).
		First(&treeModel, "entity_type = ? AND entity_id = ? AND workflow = ?",
			sig.EntityType, sig.EntityID, sig.Workflow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	tree := treeModel.ToDomain()
	return &tree, nil
}

// AppendRoot appends in-place on the server side, so two racing roots on
// the same tree both land without a lost update.
func (r *treeRepository) AppendRoot(ctx context.Context, treeID, commentID string) error {
	result := r.DB.WithContext(ctx).Model(&model.CommentTree{}).
		Where("id = ?", treeID).
		Updates(map[string]any{
			"root_ids":    gorm.Expr("JSON_ARRAY_APPEND(root_ids, '$', ?)", commentID),
			"total_count": gorm.Expr("total_count + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *treeRepository) AddTotalCount(ctx context.Context, treeID string, delta int64) error {
	result := r.DB.WithContext(ctx).Model(&model.CommentTree{}).
		Where("id = ?", treeID).
		Update("total_count", gorm.Expr("total_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *treeRepository) SetStatus(ctx context.Context, treeID, status string) error {
	return r.DB.WithContext(ctx).Model(&model.CommentTree{}).
		Where("id = ?", treeID).
		Update("status", status).Error
}
