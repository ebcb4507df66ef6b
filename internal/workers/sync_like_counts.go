package workers

import (
	"context"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/sirupsen/logrus"
)

type syncLikeCountsWorker struct {
	commentRepo domain.CommentRepository
	ch          chan string
}

var _ domain.LikeCountSyncer = (*syncLikeCountsWorker)(nil)

func NewSyncLikeCountsWorker(cr domain.CommentRepository) *syncLikeCountsWorker {
	return &syncLikeCountsWorker{
		commentRepo: cr,
		ch:          make(chan string, 1024),
	}
}

// Send schedules a like-count resync. The denormalized counter is best
// effort, so a saturated channel drops the task instead of blocking the
// request path.
func (s *syncLikeCountsWorker) Send(commentID string) {
	select {
	case s.ch <- commentID:
	default:
		logrus.Info("SyncLikeCountsWorker's channel is full, task dropped")
	}
}

func (s *syncLikeCountsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	batch := make(map[string]struct{}, batchSize)
	for {
		select {
		case id := <-s.ch:
			batch[id] = struct{}{}
			if len(batch) == batchSize {
				s.flush(ctx, batch)
				batch = make(map[string]struct{}, batchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make(map[string]struct{}, batchSize)
		case <-ctx.Done():
			logrus.Info("shutting down SyncLikeCountsWorker, flushing remaining tasks...")
			s.flush(context.WithoutCancel(ctx), batch)
			return
		}
	}
}

func (s *syncLikeCountsWorker) flush(ctx context.Context, batch map[string]struct{}) {
	if len(batch) == 0 {
		return
	}
	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	if err := s.commentRepo.SyncLikeCounts(ctx, ids); err != nil {
		logrus.Errorf("failed to sync like counts for %d comments: %v", len(ids), err)
	}
}
