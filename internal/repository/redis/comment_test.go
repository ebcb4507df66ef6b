package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/Comment-Hub/domain"
)

func testSignature() domain.EntitySignature {
	return domain.EntitySignature{
		EntityType: "article",
		EntityID:   "42",
		Workflow:   "review",
	}
}

func TestTreeIDMapping(t *testing.T) {
	sig := testSignature()
	key := signatureKey(sig)

	t.Run("set and get", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCommentCache(client)

		mock.ExpectSet(key, "t1", treeIDTTL).SetVal("OK")
		require.NoError(t, cache.SetTreeID(context.Background(), sig, "t1"))

		mock.ExpectGet(key).SetVal("t1")
		treeID, err := cache.GetTreeID(context.Background(), sig)
		require.NoError(t, err)
		assert.Equal(t, "t1", treeID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss reports redis.Nil", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCommentCache(client)

		mock.ExpectGet(key).RedisNil()
		_, err := cache.GetTreeID(context.Background(), sig)
		assert.ErrorIs(t, err, redis.Nil)
	})
}

func TestCommentCaching(t *testing.T) {
	comment := &domain.Comment{
		ID:       "c1",
		TreeID:   "t1",
		Payload:  json.RawMessage(`{"text":"first"}`),
		AuthorID: "u1",
	}
	key := "comment:c1"

	t.Run("round trip", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCommentCache(client)

		data, err := json.Marshal(comment)
		require.NoError(t, err)

		mock.ExpectSet(key, data, commentTTL).SetVal("OK")
		require.NoError(t, cache.SetComment(context.Background(), comment))

		mock.ExpectGet(key).SetVal(string(data))
		got, err := cache.GetComment(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, comment.ID, got.ID)
		assert.Equal(t, comment.Payload, got.Payload)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalidate deletes the key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCommentCache(client)

		mock.ExpectDel(key).SetVal(1)
		require.NoError(t, cache.DeleteComment(context.Background(), "c1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss reports redis.Nil", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCommentCache(client)

		mock.ExpectGet(key).RedisNil()
		_, err := cache.GetComment(context.Background(), "c1")
		assert.ErrorIs(t, err, redis.Nil)
	})
}
