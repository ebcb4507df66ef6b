package workers

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/Comment-Hub/domain"
)

type recordingCommentRepo struct {
	mu      sync.Mutex
	batches [][]string
}

var _ domain.CommentRepository = (*recordingCommentRepo)(nil)

func (r *recordingCommentRepo) SyncLikeCounts(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch := append([]string(nil), ids...)
	sort.Strings(batch)
	r.batches = append(r.batches, batch)
	return nil
}

func (r *recordingCommentRepo) synced() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func (r *recordingCommentRepo) Store(context.Context, *domain.Comment) error { return nil }
func (r *recordingCommentRepo) GetByID(context.Context, string) (*domain.Comment, error) {
	return nil, domain.ErrNotFound
}
func (r *recordingCommentRepo) GetByIDs(context.Context, []string) ([]*domain.Comment, error) {
	return nil, nil
}
func (r *recordingCommentRepo) FetchByTree(context.Context, string) ([]*domain.Comment, error) {
	return nil, nil
}
func (r *recordingCommentRepo) UpdatePayload(context.Context, string, json.RawMessage) error {
	return nil
}
func (r *recordingCommentRepo) MarkDeleted(context.Context, string) (bool, error) {
	return false, nil
}

func TestSyncLikeCountsWorkerDeduplicatesBatch(t *testing.T) {
	repo := &recordingCommentRepo{}
	worker := NewSyncLikeCountsWorker(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	worker.Send("c1")
	worker.Send("c2")
	worker.Send("c1") // duplicate within one tick

	// Wait out one ticker interval so the batch flushes.
	time.Sleep(1200 * time.Millisecond)
	cancel()
	<-done

	batches := repo.synced()
	if assert.NotEmpty(t, batches) {
		assert.Equal(t, []string{"c1", "c2"}, batches[0])
	}
}

func TestSyncLikeCountsWorkerFlushesOnShutdown(t *testing.T) {
	repo := &recordingCommentRepo{}
	worker := NewSyncLikeCountsWorker(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	worker.Send("c9")
	// Give the worker loop a moment to pull the task off the channel.
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	batches := repo.synced()
	if assert.NotEmpty(t, batches) {
		assert.Contains(t, batches[len(batches)-1], "c9")
	}
}
