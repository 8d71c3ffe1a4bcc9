package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alemsite/internal/model"
)

// Scope selects how much a listing query may see.
type Scope string

const (
	// ScopePublic hides closed posts from listings.
	ScopePublic Scope = "public"
	// ScopeAll applies no status filter (dashboard use).
	ScopeAll Scope = "all"
)

// PostFilter restricts a post listing query. Category "all" or empty means
// no category restriction; Search matches title or author case-insensitively.
type PostFilter struct {
	Scope    Scope
	Category string
	Search   string
}

// PostRepository defines forum post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Post, error)
	// DeleteCascade removes the post together with its comments and
	// reactions in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	CountByStatus(ctx context.Context, status model.PostStatus) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Post, error) {
	res := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *postRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&model.Reaction{}).Error
	})
}

func applyPostFilter(q *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Scope != ScopeAll {
		q = q.Where("status <> ?", model.PostStatusClosed)
	}
	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}
	return q
}

// List returns matching posts newest first.
func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.Post, error) {
	q := applyPostFilter(r.db.WithContext(ctx).Model(&model.Post{}), filter)

	var posts []model.Post
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	q := applyPostFilter(r.db.WithContext(ctx).Model(&model.Post{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepository) CountByStatus(ctx context.Context, status model.PostStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
