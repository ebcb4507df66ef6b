package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Tree status values. Status only moves OPEN -> RESOLVED.
const (
	TreeStatusOpen     = "OPEN"
	TreeStatusResolved = "RESOLVED"
)

// EntitySignature identifies exactly one discussion. A signature owns at
// most one CommentTree and is immutable once the tree exists.
type EntitySignature struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Workflow   string `json:"workflow"`
}

func (s EntitySignature) IsZero() bool {
	return s.EntityType == "" && s.EntityID == "" && s.Workflow == ""
}

// CommentTree is the forest of comments attached to one EntitySignature.
type CommentTree struct {
	ID         string          `json:"id"`
	Signature  EntitySignature `json:"signature"`
	Status     string          `json:"status"`
	RootIDs    []string        `json:"root_ids"`
	TotalCount int64           `json:"total_count"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (t *CommentTree) IsResolved() bool {
	return t.Status == TreeStatusResolved
}

// Comment domain model. ParentID == "" means root comment. A deleted
// comment stays in the tree as a tombstone so its replies remain reachable.
type Comment struct {
	ID        string          `json:"id"`
	TreeID    string          `json:"tree_id"`
	ParentID  string          `json:"parent_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	AuthorID  string          `json:"author_id"`
	Deleted   bool            `json:"deleted"`
	LikeCount int64           `json:"like_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Replies is rebuilt on read from the ParentID back-references
	Replies []*Comment `json:"replies,omitempty"`
}

// TreeView is the assembled read model returned by GetComments.
type TreeView struct {
	Tree     *CommentTree `json:"tree,omitempty"`
	Comments []*Comment   `json:"comments"`
}

// ResolvedPolicy decides which writes a RESOLVED tree still accepts.
type ResolvedPolicy int8

const (
	// ResolvedRejectsAll rejects any new content on a resolved tree.
	ResolvedRejectsAll ResolvedPolicy = iota
	// ResolvedRejectsRoots rejects only new root comments; replies stay open.
	ResolvedRejectsRoots
)

// CommentUsecase defines the business logic contract for tree mutations.
type CommentUsecase interface {
	// AddFirst creates the tree for the signature if needed and appends a
	// root comment. A retry after a timeout is serialized by the tree's
	// conditional create; the root comment itself may duplicate on retry.
	AddFirst(ctx context.Context, sig EntitySignature, payload json.RawMessage, authorID string) (*Comment, error)
	AddReply(ctx context.Context, treeID, parentID string, payload json.RawMessage, authorID string) (*Comment, error)
	Update(ctx context.Context, commentID string, payload json.RawMessage, authorID string) (*Comment, error)
	// Delete tombstones the comment. Descendants are kept.
	Delete(ctx context.Context, commentID string, sig EntitySignature) (*Comment, error)
	// Resolve is idempotent; resolving a RESOLVED tree is a no-op.
	Resolve(ctx context.Context, sig EntitySignature) (*CommentTree, error)
	GetComments(ctx context.Context, sig EntitySignature) (*TreeView, error)
}

// CommentRepository defines the contract for comment row persistence.
type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	// GetByIDs returns the comments that exist; unknown ids are omitted.
	GetByIDs(ctx context.Context, ids []string) ([]*Comment, error)
	FetchByTree(ctx context.Context, treeID string) ([]*Comment, error)
	UpdatePayload(ctx context.Context, id string, payload json.RawMessage) error
	// MarkDeleted flips the tombstone flag. Reports false if the comment
	// was already deleted.
	MarkDeleted(ctx context.Context, id string) (bool, error)
	// SyncLikeCounts refreshes the denormalized like counters from the
	// like records.
	SyncLikeCounts(ctx context.Context, ids []string) error
}

// TreeRepository persists tree rows. CreateIfAbsent is the only
// serialization point for concurrent first writes on one signature.
type TreeRepository interface {
	// CreateIfAbsent inserts the tree unless one already exists for its
	// signature. created reports whether this call won; on a lost race the
	// existing row is returned instead.
	CreateIfAbsent(ctx context.Context, t *CommentTree) (created bool, res *CommentTree, err error)
	GetByID(ctx context.Context, id string) (*CommentTree, error)
	GetBySignature(ctx context.Context, sig EntitySignature) (*CommentTree, error)
	// AppendRoot atomically appends a root comment id and bumps total_count.
	AppendRoot(ctx context.Context, treeID, commentID string) error
	AddTotalCount(ctx context.Context, treeID string, delta int64) error
	SetStatus(ctx context.Context, treeID, status string) error
}

// TreeResolver maps an EntitySignature to its unique tree, optionally
// creating it. Two callers racing to create the first comment for one
// signature always observe the same tree id.
type TreeResolver interface {
	// Resolve returns ErrNotFound when the signature has no tree and
	// createIfAbsent is false.
	Resolve(ctx context.Context, sig EntitySignature, createIfAbsent bool) (*CommentTree, error)
}

// CommentStore aggregates tree resolution, tree updates and comment rows
// behind the cache coordinator; the mutation and like engines depend on it
// rather than on the raw repositories.
type CommentStore interface {
	TreeResolver
	CommentRepository
	GetTree(ctx context.Context, id string) (*CommentTree, error)
	AppendRoot(ctx context.Context, treeID, commentID string) error
	AddTotalCount(ctx context.Context, treeID string, delta int64) error
	SetTreeStatus(ctx context.Context, treeID, status string) error
}

// CommentCache is the read-through cache. Mutations invalidate, never write.
type CommentCache interface {
	GetTreeID(ctx context.Context, sig EntitySignature) (string, error)
	SetTreeID(ctx context.Context, sig EntitySignature, treeID string) error
	GetComment(ctx context.Context, id string) (*Comment, error)
	SetComment(ctx context.Context, c *Comment) error
	DeleteComment(ctx context.Context, id string) error
}
