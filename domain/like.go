package domain

import (
	"context"
	"time"
)

// UserLike is representing a like record. Existence of the record is the
// like; there is at most one per (comment, user) pair.
type UserLike struct {
	CommentID string
	UserID    string
	CreatedAt time.Time
}

// LikeStatus is the read model of a single user's like state on a comment.
type LikeStatus struct {
	CommentID string `json:"comment_id"`
	UserID    string `json:"user_id"`
	Liked     bool   `json:"liked"`
	Count     int64  `json:"count"`
}

// LikeRepository defines the contract for like record persistence.
type LikeRepository interface {
	// Add inserts the record unless it already exists. created reports
	// whether a new record was written.
	Add(ctx context.Context, like UserLike) (created bool, err error)
	Exists(ctx context.Context, commentID, userID string) (bool, error)
	Count(ctx context.Context, commentID string) (int64, error)
}

// LikeUsecase defines the like registry contract.
type LikeUsecase interface {
	// Like is idempotent: re-liking an already-liked comment returns the
	// unchanged count. Fails with ErrNotFound on absent or tombstoned
	// comments.
	Like(ctx context.Context, commentID, userID string) (int64, error)
	// ReadLike is a pure read with no side effect. Store failures are
	// logged and reported as a zero status.
	ReadLike(ctx context.Context, commentID, userID string) (LikeStatus, error)
}
