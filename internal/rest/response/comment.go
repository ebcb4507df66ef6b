package response

import (
	"encoding/json"

	"github.com/Guyuepp/Comment-Hub/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type Comment struct {
	ID        string          `json:"id"`
	TreeID    string          `json:"tree_id"`
	ParentID  string          `json:"parent_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	AuthorID  string          `json:"author_id"`
	Deleted   bool            `json:"deleted"`
	LikeCount int64           `json:"like_count"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`

	Replies []*Comment `json:"replies,omitempty"`
}

func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:        c.ID,
		TreeID:    c.TreeID,
		ParentID:  c.ParentID,
		Payload:   c.Payload,
		AuthorID:  c.AuthorID,
		Deleted:   c.Deleted,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt: c.UpdatedAt.Format(DateTimeFormat),
	}
}

// NewCommentFromDomain: Domain -> Response, replies included
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	if len(c.Replies) > 0 {
		replies := make([]*Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, NewCommentFromDomain(r))
		}
		root.Replies = replies
	}
	return root
}

func NewCommentsFromDomain(comments []*domain.Comment) []*Comment {
	res := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		res = append(res, NewCommentFromDomain(c))
	}
	return res
}

type CommentTree struct {
	ID         string   `json:"id"`
	EntityType string   `json:"entity_type"`
	EntityID   string   `json:"entity_id"`
	Workflow   string   `json:"workflow"`
	Status     string   `json:"status"`
	RootIDs    []string `json:"root_ids"`
	TotalCount int64    `json:"total_count"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

func NewCommentTreeFromDomain(t *domain.CommentTree) *CommentTree {
	if t == nil {
		return nil
	}
	rootIDs := t.RootIDs
	if rootIDs == nil {
		rootIDs = []string{}
	}
	return &CommentTree{
		ID:         t.ID,
		EntityType: t.Signature.EntityType,
		EntityID:   t.Signature.EntityID,
		Workflow:   t.Signature.Workflow,
		Status:     t.Status,
		RootIDs:    rootIDs,
		TotalCount: t.TotalCount,
		CreatedAt:  t.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:  t.UpdatedAt.Format(DateTimeFormat),
	}
}

type TreeView struct {
	Tree     *CommentTree `json:"tree,omitempty"`
	Comments []*Comment   `json:"comments"`
}

func NewTreeViewFromDomain(v *domain.TreeView) *TreeView {
	return &TreeView{
		Tree:     NewCommentTreeFromDomain(v.Tree),
		Comments: NewCommentsFromDomain(v.Comments),
	}
}

type SearchPage struct {
	Comments   []*Comment `json:"comments"`
	Limit      int64      `json:"limit"`
	Offset     int64      `json:"offset"`
	Total      int64      `json:"total"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func NewSearchPageFromDomain(p *domain.SearchPage) *SearchPage {
	return &SearchPage{
		Comments:   NewCommentsFromDomain(p.Comments),
		Limit:      p.Limit,
		Offset:     p.Offset,
		Total:      p.Total,
		NextCursor: p.NextCursor,
	}
}
