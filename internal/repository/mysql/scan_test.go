package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
)

func TestScan(t *testing.T) {
	t.Run("orders by creation time then id", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT (.+) FROM `comment` (.+) ORDER BY created_at ASC, id ASC").
			WillReturnRows(sqlmock.NewRows(commentColumns()).
				AddRow("c1", "t1", "", `{}`, "u1", false, 0, time.Now(), time.Now()).
				AddRow("c2", "t1", "", `{}`, "u2", false, 0, time.Now(), time.Now()))

		repo := NewSearchRepository(db)
		comments, total, err := repo.Scan(context.Background(), map[string]any{"tree_id": []string{"t1"}}, time.Time{}, "", 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, comments, 2)
		assert.Equal(t, "c1", comments[0].ID)
	})

	t.Run("zero matches is an empty page, not an error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM `comment`").
			WillReturnRows(sqlmock.NewRows(commentColumns()))

		repo := NewSearchRepository(db)
		comments, total, err := repo.Scan(context.Background(), map[string]any{"author_id": "nobody"}, time.Time{}, "", 20, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, comments)
	})

	t.Run("boundary breaks created_at ties by id", func(t *testing.T) {
		db, mock := newMockDB(t)
		boundary := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT count(.+)created_at > \? OR \(created_at = \? AND id > \?\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT (.+) FROM .comment.(.+)created_at > \? OR \(created_at = \? AND id > \?\)(.+)ORDER BY created_at ASC, id ASC`).
			WillReturnRows(sqlmock.NewRows(commentColumns()).
				AddRow("c2", "t1", "", `{}`, "u1", false, 0, boundary, boundary))

		repo := NewSearchRepository(db)
		comments, total, err := repo.Scan(context.Background(), map[string]any{"tree_id": []string{"t1"}}, boundary, "c1", 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, comments, 1)
		assert.Equal(t, "c2", comments[0].ID)
	})
}

func TestScanTrees(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `comment_tree`").
		WillReturnRows(sqlmock.NewRows(treeColumns()).
			AddRow("t1", "article", "42", "review", "OPEN", `[]`, 0, time.Now(), time.Now()))

	repo := NewSearchRepository(db)
	trees, err := repo.ScanTrees(context.Background(), map[string]any{"entity_type": "article"})
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, "t1", trees[0].ID)
}
