package domain

import (
	"context"
	"time"
)

const (
	SearchMinLimit     = 1
	SearchMaxLimit     = 100
	SearchDefaultLimit = 20
)

// SearchCriteria is a conjunction of equality/membership predicates over
// the indexed comment attributes, plus limit/offset paging.
type SearchCriteria struct {
	EntityType string   `json:"entity_type,omitempty"`
	EntityID   string   `json:"entity_id,omitempty"`
	Workflow   string   `json:"workflow,omitempty"`
	AuthorID   string   `json:"author_id,omitempty"`
	TreeStatus string   `json:"tree_status,omitempty"`
	CommentIDs []string `json:"comment_ids,omitempty"`
	// Deleted filters on the tombstone flag when set.
	Deleted *bool `json:"deleted,omitempty"`
	Limit   int64 `json:"limit,omitempty"`
	Offset  int64 `json:"offset,omitempty"`
	// Cursor pages by creation time instead of Offset when set.
	Cursor string `json:"cursor,omitempty"`
}

// SearchPage is one page of results in stable (created_at, id) order.
// Writes are append-only, so earlier pages never change.
type SearchPage struct {
	Comments []*Comment `json:"comments"`
	Limit    int64      `json:"limit"`
	Offset   int64      `json:"offset"`
	Total    int64      `json:"total"`
	// NextCursor points past the last comment of this page; empty on an
	// empty page.
	NextCursor string `json:"next_cursor,omitempty"`
}

// SearchRepository executes predicate-map scans against the comment rows.
// Values in the predicate map may be scalars (equality) or slices (IN);
// predicates are ANDed together.
type SearchRepository interface {
	// after and afterID narrow the scan to comments past the given
	// (created_at, id) boundary, so ties on created_at fall back to the id
	// ordering; the zero time means no lower bound.
	Scan(ctx context.Context, predicates map[string]any, after time.Time, afterID string, limit, offset int64) ([]*Comment, int64, error)
	// ScanTrees resolves tree-level predicates (signature fields, status)
	// to the matching trees.
	ScanTrees(ctx context.Context, predicates map[string]any) ([]*CommentTree, error)
}

// SearchUsecase defines the search and batch-fetch contract.
type SearchUsecase interface {
	// Search returns an empty page for criteria matching zero rows.
	Search(ctx context.Context, criteria SearchCriteria) (*SearchPage, error)
	// ListByIDs is an unordered batch fetch; unknown ids are omitted.
	ListByIDs(ctx context.Context, commentIDs []string) ([]*Comment, error)
}
