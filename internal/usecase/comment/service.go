package comment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type service struct {
	store  domain.CommentStore
	policy domain.ResolvedPolicy
}

var _ domain.CommentUsecase = (*service)(nil)

// NewService will create a new comment tree service object
func NewService(store domain.CommentStore, policy domain.ResolvedPolicy) *service {
	return &service{
		store:  store,
		policy: policy,
	}
}

// validatePayload rejects empty or malformed payloads. The payload stays
// opaque beyond being well-formed JSON.
func validatePayload(payload json.RawMessage) error {
	if len(payload) == 0 {
		return domain.ErrBadParamInput
	}
	if !json.Valid(payload) {
		return domain.ErrBadParamInput
	}
	var probe any
	if err := json.Unmarshal(payload, &probe); err != nil || probe == nil {
		return domain.ErrBadParamInput
	}
	return nil
}

// mapStoreErr keeps the caller-error sentinels and turns everything else
// into ErrStoreUnavailable so a lost mutation is never silent.
func mapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrBadParamInput) {
		return err
	}
	logrus.Errorf("store failure during %s: %v", op, err)
	return domain.ErrStoreUnavailable
}

func (s *service) AddFirst(ctx context.Context, sig domain.EntitySignature, payload json.RawMessage, authorID string) (*domain.Comment, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	if sig.IsZero() || authorID == "" {
		return nil, domain.ErrBadParamInput
	}

	tree, err := s.store.Resolve(ctx, sig, true)
	if err != nil {
		return nil, mapStoreErr("addFirst/resolve", err)
	}
	// A resolved tree takes no new roots under either policy.
	if tree.IsResolved() {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		TreeID:    tree.ID,
		Payload:   payload,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Store(ctx, comment); err != nil {
		return nil, mapStoreErr("addFirst/store", err)
	}
	if err := s.store.AppendRoot(ctx, tree.ID, comment.ID); err != nil {
		return nil, mapStoreErr("addFirst/appendRoot", err)
	}
	return comment, nil
}

func (s *service) AddReply(ctx context.Context, treeID, parentID string, payload json.RawMessage, authorID string) (*domain.Comment, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	if treeID == "" || parentID == "" || authorID == "" {
		return nil, domain.ErrBadParamInput
	}

	tree, err := s.store.GetTree(ctx, treeID)
	if err != nil {
		return nil, mapStoreErr("addReply/getTree", err)
	}
	if tree.IsResolved() && s.policy == domain.ResolvedRejectsAll {
		return nil, domain.ErrConflict
	}

	parent, err := s.store.GetByID(ctx, parentID)
	if err != nil {
		return nil, mapStoreErr("addReply/getParent", err)
	}
	// A tombstoned parent still accepts replies; a parent from another
	// tree does not.
	if parent.TreeID != treeID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		TreeID:    treeID,
		ParentID:  parent.ID,
		Payload:   payload,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Store(ctx, comment); err != nil {
		return nil, mapStoreErr("addReply/store", err)
	}
	if err := s.store.AddTotalCount(ctx, treeID, 1); err != nil {
		return nil, mapStoreErr("addReply/count", err)
	}
	return comment, nil
}

func (s *service) Update(ctx context.Context, commentID string, payload json.RawMessage, authorID string) (*domain.Comment, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	comment, err := s.store.GetByID(ctx, commentID)
	if err != nil {
		return nil, mapStoreErr("update/get", err)
	}
	if comment.Deleted {
		return nil, domain.ErrConflict
	}
	if comment.AuthorID != authorID {
		return nil, domain.ErrForbidden
	}

	if err := s.store.UpdatePayload(ctx, commentID, payload); err != nil {
		return nil, mapStoreErr("update/store", err)
	}
	comment.Payload = payload
	comment.UpdatedAt = time.Now()
	return comment, nil
}

func (s *service) Delete(ctx context.Context, commentID string, sig domain.EntitySignature) (*domain.Comment, error) {
	comment, err := s.store.GetByID(ctx, commentID)
	if err != nil {
		return nil, mapStoreErr("delete/get", err)
	}

	tree, err := s.store.GetTree(ctx, comment.TreeID)
	if err != nil {
		return nil, mapStoreErr("delete/getTree", err)
	}
	// Cross-tree deletion guard: the caller must name the tree it thinks
	// it is deleting from.
	if tree.Signature != sig {
		return nil, domain.ErrConflict
	}

	flipped, err := s.store.MarkDeleted(ctx, commentID)
	if err != nil {
		return nil, mapStoreErr("delete/mark", err)
	}
	if flipped {
		if err := s.store.AddTotalCount(ctx, tree.ID, -1); err != nil {
			return nil, mapStoreErr("delete/count", err)
		}
	}
	comment.Deleted = true
	return comment, nil
}

func (s *service) Resolve(ctx context.Context, sig domain.EntitySignature) (*domain.CommentTree, error) {
	tree, err := s.store.Resolve(ctx, sig, false)
	if err != nil {
		return nil, mapStoreErr("resolve/resolve", err)
	}
	if tree.IsResolved() {
		// Idempotent: already resolved is a no-op, not an error.
		return tree, nil
	}
	if err := s.store.SetTreeStatus(ctx, tree.ID, domain.TreeStatusResolved); err != nil {
		return nil, mapStoreErr("resolve/setStatus", err)
	}
	tree.Status = domain.TreeStatusResolved
	return tree, nil
}

// GetComments assembles the tree view. The reply structure is rebuilt from
// the parent back-references on every read; no in-memory tree is shared
// across requests.
func (s *service) GetComments(ctx context.Context, sig domain.EntitySignature) (*domain.TreeView, error) {
	tree, err := s.store.Resolve(ctx, sig, false)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.TreeView{Comments: []*domain.Comment{}}, nil
	} else if err != nil {
		return nil, mapStoreErr("getComments/resolve", err)
	}

	comments, err := s.store.FetchByTree(ctx, tree.ID)
	if err != nil {
		return nil, mapStoreErr("getComments/fetch", err)
	}

	return &domain.TreeView{
		Tree:     tree,
		Comments: assembleTree(tree, comments),
	}, nil
}

// assembleTree links flat rows into nested roots. Roots come out in the
// order recorded on the tree; roots missing from that list (a root append
// that raced a crash) are appended in creation order.
func assembleTree(tree *domain.CommentTree, comments []*domain.Comment) []*domain.Comment {
	byID := make(map[string]*domain.Comment, len(comments))
	children := make(map[string][]*domain.Comment)
	for _, c := range comments {
		byID[c.ID] = c
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}
	for _, c := range comments {
		if list, ok := children[c.ID]; ok {
			c.Replies = list
		}
	}

	roots := make([]*domain.Comment, 0, len(tree.RootIDs))
	seen := make(map[string]bool, len(tree.RootIDs))
	for _, id := range tree.RootIDs {
		if c, ok := byID[id]; ok {
			roots = append(roots, c)
			seen[id] = true
		}
	}
	for _, c := range comments {
		if c.ParentID == "" && !seen[c.ID] {
			roots = append(roots, c)
		}
	}
	return roots
}
