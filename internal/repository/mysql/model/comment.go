package model

import (
	"encoding/json"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	TreeID    string    `gorm:"column:tree_id;type:varchar(36);not null;index"`
	ParentID  string    `gorm:"column:parent_id;type:varchar(36);default:''"`
	Payload   string    `gorm:"type:longtext;not null"`
	AuthorID  string    `gorm:"column:author_id;type:varchar(64);not null;index"`
	Deleted   bool      `gorm:"default:false"`
	LikeCount int64     `gorm:"column:like_count;default:0"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		TreeID:    c.TreeID,
		ParentID:  c.ParentID,
		Payload:   string(c.Payload),
		AuthorID:  c.AuthorID,
		Deleted:   c.Deleted,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		TreeID:    m.TreeID,
		ParentID:  m.ParentID,
		Payload:   json.RawMessage(m.Payload),
		AuthorID:  m.AuthorID,
		Deleted:   m.Deleted,
		LikeCount: m.LikeCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
