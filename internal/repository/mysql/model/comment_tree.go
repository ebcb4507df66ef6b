package model

import (
	"encoding/json"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
)

type CommentTree struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	EntityType string    `gorm:"column:entity_type;type:varchar(64);not null;uniqueIndex:idx_signature"`
	EntityID   string    `gorm:"column:entity_id;type:varchar(128);not null;uniqueIndex:idx_signature"`
	Workflow   string    `gorm:"column:workflow;type:varchar(64);not null;uniqueIndex:idx_signature"`
	Status     string    `gorm:"type:varchar(16);default:'OPEN'"`
	RootIDs    string    `gorm:"column:root_ids;type:text"`
	TotalCount int64     `gorm:"column:total_count;default:0"`
	CreatedAt  time.Time `gorm:"type:datetime"`
	UpdatedAt  time.Time `gorm:"type:datetime"`
}

func (CommentTree) TableName() string {
	return "comment_tree"
}

func NewCommentTreeFromDomain(t *domain.CommentTree) *CommentTree {
	rootIDs, _ := json.Marshal(t.RootIDs)
	return &CommentTree{
		ID:         t.ID,
		EntityType: t.Signature.EntityType,
		EntityID:   t.Signature.EntityID,
		Workflow:   t.Signature.Workflow,
		Status:     t.Status,
		RootIDs:    string(rootIDs),
		TotalCount: t.TotalCount,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (m *CommentTree) ToDomain() domain.CommentTree {
	var rootIDs []string
	if m.RootIDs != "" {
		_ = json.Unmarshal([]byte(m.RootIDs), &rootIDs)
	}
	return domain.CommentTree{
		ID: m.ID,
		Signature: domain.EntitySignature{
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Workflow:   m.Workflow,
		},
		Status:     m.Status,
		RootIDs:    rootIDs,
		TotalCount: m.TotalCount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
