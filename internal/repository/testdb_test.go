package repository

import (
	"os"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alemsite/internal/model"
)

// openTestDB connects to the database named by TEST_MYSQL_DSN and starts the
// test from empty tables. Tests exercising real SQL are skipped when the
// variable is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
		&model.Category{},
		&model.Opinion{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	for _, table := range []string{"reactions", "comments", "posts", "categories", "opinions", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean table %s: %v", table, err)
		}
	}
	return db
}

func createTestPost(t *testing.T, db *gorm.DB) *model.Post {
	t.Helper()

	post := &model.Post{
		Title:    "On the merits of seeking knowledge",
		Content:  "A question about the chapter order",
		Author:   "01712345678",
		Category: "General",
		Status:   model.PostStatusActive,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return post
}
