package comment

import (
	"context"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/sirupsen/logrus"
)

type likeService struct {
	store  domain.CommentStore
	likes  domain.LikeRepository
	syncer domain.LikeCountSyncer
}

var _ domain.LikeUsecase = (*likeService)(nil)

func NewLikeService(store domain.CommentStore, likes domain.LikeRepository, syncer domain.LikeCountSyncer) *likeService {
	return &likeService{
		store:  store,
		likes:  likes,
		syncer: syncer,
	}
}

// Like records the (comment, user) pair unless it already exists and
// returns the live record count either way.
func (s *likeService) Like(ctx context.Context, commentID, userID string) (int64, error) {
	if commentID == "" || userID == "" {
		return 0, domain.ErrBadParamInput
	}
	comment, err := s.store.GetByID(ctx, commentID)
	if err != nil {
		return 0, mapStoreErr("like/get", err)
	}
	if comment.Deleted {
		return 0, domain.ErrNotFound
	}

	created, err := s.likes.Add(ctx, domain.UserLike{
		CommentID: commentID,
		UserID:    userID,
	})
	if err != nil {
		return 0, mapStoreErr("like/add", err)
	}
	if created {
		s.syncer.Send(commentID)
	}

	count, err := s.likes.Count(ctx, commentID)
	if err != nil {
		return 0, mapStoreErr("like/count", err)
	}
	return count, nil
}

// ReadLike is best effort: a failing store read is logged and reported as
// a zero status rather than an error.
func (s *likeService) ReadLike(ctx context.Context, commentID, userID string) (domain.LikeStatus, error) {
	if commentID == "" || userID == "" {
		return domain.LikeStatus{}, domain.ErrBadParamInput
	}
	comment, err := s.store.GetByID(ctx, commentID)
	if err != nil {
		return domain.LikeStatus{}, mapStoreErr("readLike/get", err)
	}
	if comment.Deleted {
		return domain.LikeStatus{}, domain.ErrNotFound
	}

	status := domain.LikeStatus{
		CommentID: commentID,
		UserID:    userID,
	}
	liked, err := s.likes.Exists(ctx, commentID, userID)
	if err != nil {
		logrus.Warnf("failed to read like state for comment %s: %v", commentID, err)
		return status, nil
	}
	count, err := s.likes.Count(ctx, commentID)
	if err != nil {
		logrus.Warnf("failed to count likes for comment %s: %v", commentID, err)
		return status, nil
	}
	status.Liked = liked
	status.Count = count
	return status, nil
}
