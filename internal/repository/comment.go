package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// commentStore is the coordinating layer between the cache and the row
// store. The store is always authoritative; the cache only shortcuts
// signature resolution and hot comment reads, and is invalidated (never
// updated) on mutation.
type commentStore struct {
	trees        domain.TreeRepository
	comments     domain.CommentRepository
	cache        domain.CommentCache
	resolveGroup singleflight.Group
}

var _ domain.CommentStore = (*commentStore)(nil)

// NewCommentStore wires the db repositories behind the cache.
func NewCommentStore(trees domain.TreeRepository, comments domain.CommentRepository, cache domain.CommentCache) *commentStore {
	return &commentStore{
		trees:    trees,
		comments: comments,
		cache:    cache,
	}
}

// Resolve looks the signature up in the cache first, then falls through to
// the store. Concurrent misses for the same signature are collapsed with
// singleflight; the conditional create in the tree repository is what
// serializes racing first writes.
func (s *commentStore) Resolve(ctx context.Context, sig domain.EntitySignature, createIfAbsent bool) (*domain.CommentTree, error) {
	if treeID, err := s.cache.GetTreeID(ctx, sig); err == nil {
		tree, err := s.trees.GetByID(ctx, treeID)
		if err == nil {
			return tree, nil
		}
		logrus.Warnf("cached tree id %s for %v is stale: %v", treeID, sig, err)
	}

	key := sig.EntityType + "/" + sig.EntityID + "/" + sig.Workflow
	result, err, _ := s.resolveGroup.Do(key, func() (interface{}, error) {
		tree, err := s.trees.GetBySignature(ctx, sig)
		if err == nil {
			_ = s.cache.SetTreeID(ctx, sig, tree.ID)
			return tree, nil
		}
		if !errors.Is(err, domain.ErrNotFound) || !createIfAbsent {
			return nil, err
		}

		now := time.Now()
		candidate := &domain.CommentTree{
			ID:        uuid.NewString(),
			Signature: sig,
			Status:    domain.TreeStatusOpen,
			RootIDs:   []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		created, tree, err := s.trees.CreateIfAbsent(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if !created {
			logrus.Infof("lost tree-create race for %v, adopting tree %s", sig, tree.ID)
		}
		_ = s.cache.SetTreeID(ctx, sig, tree.ID)
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.CommentTree), nil
}

// GetByID reads the comment through the cache.
func (s *commentStore) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	if comment, err := s.cache.GetComment(ctx, id); err == nil {
		return comment, nil
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetComment(ctx, comment); err != nil {
		logrus.Warnf("failed to cache comment %s: %v", id, err)
	}
	return comment, nil
}

func (s *commentStore) Store(ctx context.Context, c *domain.Comment) error {
	return s.comments.Store(ctx, c)
}

func (s *commentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error) {
	return s.comments.GetByIDs(ctx, ids)
}

func (s *commentStore) FetchByTree(ctx context.Context, treeID string) ([]*domain.Comment, error) {
	return s.comments.FetchByTree(ctx, treeID)
}

func (s *commentStore) UpdatePayload(ctx context.Context, id string, payload json.RawMessage) error {
	if err := s.comments.UpdatePayload(ctx, id, payload); err != nil {
		return err
	}
	s.invalidateComment(ctx, id)
	return nil
}

func (s *commentStore) MarkDeleted(ctx context.Context, id string) (bool, error) {
	flipped, err := s.comments.MarkDeleted(ctx, id)
	if err != nil {
		return false, err
	}
	s.invalidateComment(ctx, id)
	return flipped, nil
}

func (s *commentStore) SyncLikeCounts(ctx context.Context, ids []string) error {
	if err := s.comments.SyncLikeCounts(ctx, ids); err != nil {
		return err
	}
	for _, id := range ids {
		s.invalidateComment(ctx, id)
	}
	return nil
}

func (s *commentStore) GetTree(ctx context.Context, id string) (*domain.CommentTree, error) {
	return s.trees.GetByID(ctx, id)
}

func (s *commentStore) AppendRoot(ctx context.Context, treeID, commentID string) error {
	return s.trees.AppendRoot(ctx, treeID, commentID)
}

func (s *commentStore) AddTotalCount(ctx context.Context, treeID string, delta int64) error {
	return s.trees.AddTotalCount(ctx, treeID, delta)
}

func (s *commentStore) SetTreeStatus(ctx context.Context, treeID, status string) error {
	return s.trees.SetStatus(ctx, treeID, status)
}

func (s *commentStore) invalidateComment(ctx context.Context, id string) {
	if err := s.cache.DeleteComment(ctx, id); err != nil {
		logrus.Warnf("failed to invalidate cached comment %s: %v", id, err)
	}
}
