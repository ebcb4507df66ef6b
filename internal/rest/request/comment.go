package request

import (
	"encoding/json"

	"github.com/Guyuepp/Comment-Hub/domain"
)

type AddFirstComment struct {
	EntityType string          `json:"entity_type" binding:"required"`
	EntityID   string          `json:"entity_id" binding:"required"`
	Workflow   string          `json:"workflow" binding:"required"`
	AuthorID   string          `json:"author_id" binding:"required"`
	Payload    json.RawMessage `json:"payload" binding:"required"`
}

func (r *AddFirstComment) Signature() domain.EntitySignature {
	return domain.EntitySignature{
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Workflow:   r.Workflow,
	}
}

type AddReplyComment struct {
	TreeID   string          `json:"tree_id" binding:"required"`
	ParentID string          `json:"parent_id" binding:"required"`
	AuthorID string          `json:"author_id" binding:"required"`
	Payload  json.RawMessage `json:"payload" binding:"required"`
}

type UpdateComment struct {
	CommentID string          `json:"comment_id" binding:"required"`
	AuthorID  string          `json:"author_id" binding:"required"`
	Payload   json.RawMessage `json:"payload" binding:"required"`
}

type LikeComment struct {
	CommentID string `json:"comment_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
}
