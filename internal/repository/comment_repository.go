package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alemsite/internal/model"
)

// CommentRepository defines comment persistence operations. Creating and
// deleting a comment adjust the parent post's comments_count in the same
// transaction; the counter is never left to drift.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	List(ctx context.Context, scope Scope) ([]model.Comment, error)
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and increments the parent post's counter
// atomically. Returns gorm.ErrRecordNotFound if the post does not exist.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			Update("comments_count", gorm.Expr("comments_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(comment).Error
	})
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Comment, error) {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the comment and decrements the parent post's counter in the
// same transaction. The counter is floored at zero.
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			Update("comments_count", gorm.Expr("GREATEST(comments_count - 1, 0)")).Error
	})
}

// ListByPost returns a post's comments newest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// List returns all comments newest first. In public scope, comments whose
// parent post is closed are dropped.
func (r *commentRepository) List(ctx context.Context, scope Scope) ([]model.Comment, error) {
	q := r.db.WithContext(ctx).Model(&model.Comment{})
	if scope != ScopeAll {
		q = q.Joins("LEFT JOIN posts ON posts.id = comments.post_id AND posts.deleted_at IS NULL").
			Where("posts.id IS NULL OR posts.status <> ?", model.PostStatusClosed)
	}

	var comments []model.Comment
	if err := q.Order("comments.created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
