package search

import (
	"context"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/repository"
	"github.com/sirupsen/logrus"
)

type service struct {
	searchRepo  domain.SearchRepository
	commentRepo domain.CommentRepository
}

var _ domain.SearchUsecase = (*service)(nil)

// NewService will create a new search service object
func NewService(searchRepo domain.SearchRepository, commentRepo domain.CommentRepository) *service {
	return &service{
		searchRepo:  searchRepo,
		commentRepo: commentRepo,
	}
}

func emptyPage(limit, offset int64) *domain.SearchPage {
	return &domain.SearchPage{
		Comments: []*domain.Comment{},
		Limit:    limit,
		Offset:   offset,
	}
}

// Search runs the criteria as one ANDed predicate scan. Tree-level fields
// (signature, status) are resolved to a tree_id membership predicate
// first. Search is best effort: store failures are logged and come back as
// an empty page.
func (s *service) Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchPage, error) {
	limit := criteria.Limit
	if limit < domain.SearchMinLimit || limit > domain.SearchMaxLimit {
		limit = domain.SearchDefaultLimit
	}
	offset := criteria.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		after   time.Time
		afterID string
	)
	if criteria.Cursor != "" {
		decodedTime, decodedID, err := repository.DecodeCursor(criteria.Cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		after = decodedTime
		afterID = decodedID
		offset = 0
	}

	predicates := map[string]any{}
	treePredicates := map[string]any{}
	if criteria.EntityType != "" {
		treePredicates["entity_type"] = criteria.EntityType
	}
	if criteria.EntityID != "" {
		treePredicates["entity_id"] = criteria.EntityID
	}
	if criteria.Workflow != "" {
		treePredicates["workflow"] = criteria.Workflow
	}
	if criteria.TreeStatus != "" {
		treePredicates["status"] = criteria.TreeStatus
	}

	if len(treePredicates) > 0 {
		trees, err := s.searchRepo.ScanTrees(ctx, treePredicates)
		if err != nil {
			logrus.Warnf("tree scan failed, returning empty page: %v", err)
			return emptyPage(limit, offset), nil
		}
		if len(trees) == 0 {
			return emptyPage(limit, offset), nil
		}
		treeIDs := make([]string, len(trees))
		for i, t := range trees {
			treeIDs[i] = t.ID
		}
		predicates["tree_id"] = treeIDs
	}

	if criteria.AuthorID != "" {
		predicates["author_id"] = criteria.AuthorID
	}
	if len(criteria.CommentIDs) > 0 {
		predicates["id"] = criteria.CommentIDs
	}
	if criteria.Deleted != nil {
		predicates["deleted"] = *criteria.Deleted
	}

	comments, total, err := s.searchRepo.Scan(ctx, predicates, after, afterID, limit, offset)
	if err != nil {
		logrus.Warnf("comment scan failed, returning empty page: %v", err)
		return emptyPage(limit, offset), nil
	}

	page := &domain.SearchPage{
		Comments: comments,
		Limit:    limit,
		Offset:   offset,
		Total:    total,
	}
	if len(comments) > 0 {
		last := comments[len(comments)-1]
		page.NextCursor = repository.EncodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

// ListByIDs batch-fetches comments; ids that do not exist are omitted
// without error.
func (s *service) ListByIDs(ctx context.Context, commentIDs []string) ([]*domain.Comment, error) {
	if len(commentIDs) == 0 {
		return []*domain.Comment{}, nil
	}
	comments, err := s.commentRepo.GetByIDs(ctx, commentIDs)
	if err != nil {
		logrus.Errorf("batch comment fetch failed: %v", err)
		return nil, domain.ErrStoreUnavailable
	}
	return comments, nil
}
