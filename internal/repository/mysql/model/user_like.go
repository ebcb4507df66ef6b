package model

import (
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
)

// UserLike has a composite primary key; the key is what makes Like
// idempotent at the store level.
type UserLike struct {
	CommentID string    `gorm:"column:comment_id;type:varchar(36);primaryKey"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (UserLike) TableName() string {
	return "user_likes"
}

func NewUserLikeFromDomain(ul domain.UserLike) UserLike {
	return UserLike{
		CommentID: ul.CommentID,
		UserID:    ul.UserID,
		CreatedAt: ul.CreatedAt,
	}
}
