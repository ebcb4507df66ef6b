package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/redis/go-redis/v9"
)

const (
	KeyTreeBySignature = "comment:tree:%s:%s:%s"
	KeyComment         = "comment:%s"

	treeIDTTL  = 24 * time.Hour
	commentTTL = 10 * time.Minute
)

type commentCache struct {
	client *redis.Client
}

var _ domain.CommentCache = (*commentCache)(nil)

func NewCommentCache(client *redis.Client) *commentCache {
	return &commentCache{
		client,
	}
}

func signatureKey(sig domain.EntitySignature) string {
	return fmt.Sprintf(KeyTreeBySignature, sig.EntityType, sig.EntityID, sig.Workflow)
}

func (c *commentCache) GetTreeID(ctx context.Context, sig domain.EntitySignature) (string, error) {
	treeID, err := c.client.Get(ctx, signatureKey(sig)).Result()
	if errors.Is(err, redis.Nil) {
		return "", redis.Nil
	} else if err != nil {
		return "", err
	}
	return treeID, nil
}

// SetTreeID caches the signature mapping. The mapping is immutable once the
// tree exists, so a long TTL is safe.
func (c *commentCache) SetTreeID(ctx context.Context, sig domain.EntitySignature, treeID string) error {
	return c.client.Set(ctx, signatureKey(sig), treeID, treeIDTTL).Err()
}

func (c *commentCache) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	key := fmt.Sprintf(KeyComment, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, redis.Nil
	} else if err != nil {
		return nil, err
	}
	var res domain.Comment
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *commentCache) SetComment(ctx context.Context, comment *domain.Comment) error {
	key := fmt.Sprintf(KeyComment, comment.ID)
	data, err := json.Marshal(comment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, commentTTL).Err()
}

func (c *commentCache) DeleteComment(ctx context.Context, id string) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyComment, id)).Err()
}
