package mysql

import (
	"testing"

	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gdb, mock
}

func treeColumns() []string {
	return []string{"id", "entity_type", "entity_id", "workflow", "status", "root_ids", "total_count", "created_at", "updated_at"}
}

func commentColumns() []string {
	return []string{"id", "tree_id", "parent_id", "payload", "author_id", "deleted", "like_count", "created_at", "updated_at"}
}
