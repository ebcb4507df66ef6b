package comment

import (
	"context"
	"encoding/json"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/stretchr/testify/mock"
)

type mockCommentStore struct {
	mock.Mock
}

var _ domain.CommentStore = (*mockCommentStore)(nil)

func (m *mockCommentStore) Resolve(ctx context.Context, sig domain.EntitySignature, createIfAbsent bool) (*domain.CommentTree, error) {
	args := m.Called(ctx, sig, createIfAbsent)
	if tree, ok := args.Get(0).(*domain.CommentTree); ok {
		return tree, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentStore) Store(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentStore) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error) {
	args := m.Called(ctx, ids)
	if cs, ok := args.Get(0).([]*domain.Comment); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentStore) FetchByTree(ctx context.Context, treeID string) ([]*domain.Comment, error) {
	args := m.Called(ctx, treeID)
	if cs, ok := args.Get(0).([]*domain.Comment); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentStore) UpdatePayload(ctx context.Context, id string, payload json.RawMessage) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *mockCommentStore) MarkDeleted(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCommentStore) SyncLikeCounts(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *mockCommentStore) GetTree(ctx context.Context, id string) (*domain.CommentTree, error) {
	args := m.Called(ctx, id)
	if tree, ok := args.Get(0).(*domain.CommentTree); ok {
		return tree, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentStore) AppendRoot(ctx context.Context, treeID, commentID string) error {
	args := m.Called(ctx, treeID, commentID)
	return args.Error(0)
}

func (m *mockCommentStore) AddTotalCount(ctx context.Context, treeID string, delta int64) error {
	args := m.Called(ctx, treeID, delta)
	return args.Error(0)
}

func (m *mockCommentStore) SetTreeStatus(ctx context.Context, treeID, status string) error {
	args := m.Called(ctx, treeID, status)
	return args.Error(0)
}

type mockLikeRepository struct {
	mock.Mock
}

var _ domain.LikeRepository = (*mockLikeRepository)(nil)

func (m *mockLikeRepository) Add(ctx context.Context, like domain.UserLike) (bool, error) {
	args := m.Called(ctx, like)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepository) Exists(ctx context.Context, commentID, userID string) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepository) Count(ctx context.Context, commentID string) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

type mockLikeCountSyncer struct {
	mock.Mock
}

var _ domain.LikeCountSyncer = (*mockLikeCountSyncer)(nil)

func (m *mockLikeCountSyncer) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockLikeCountSyncer) Send(commentID string) {
	m.Called(commentID)
}
