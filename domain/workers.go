package domain

import "context"

// LikeCountSyncer resyncs the denormalized per-comment like counters from
// the like records in the background.
type LikeCountSyncer interface {
	Start(ctx context.Context)

	// Send schedules a resync for the given comment. Best effort: the task
	// is dropped when the worker is saturated.
	Send(commentID string)
}
