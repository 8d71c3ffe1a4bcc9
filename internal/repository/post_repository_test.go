package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"alemsite/internal/model"
)

func TestPostRepository_DeleteCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	reactions := NewReactionRepository(db)

	user := &model.User{Phone: "01712345678", Name: "Omar", PasswordHash: "x", Role: model.RoleUser}
	assert.NoError(t, NewUserRepository(db).Create(ctx, user))

	post := createTestPost(t, db)
	assert.NoError(t, comments.Create(ctx, newTestComment(post.ID)))
	assert.NoError(t, comments.Create(ctx, newTestComment(post.ID)))
	assert.NoError(t, reactions.Upsert(ctx, &model.Reaction{
		PostID:       post.ID,
		UserID:       user.ID,
		ReactionType: model.ReactionLike,
	}))

	assert.NoError(t, posts.DeleteCascade(ctx, post.ID))

	_, err := posts.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	orphans, err := comments.ListByPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Empty(t, orphans)

	tallies, err := reactions.TallyByPosts(ctx, []uuid.UUID{post.ID})
	assert.NoError(t, err)
	assert.Zero(t, tallies[post.ID].Likes)

	// A second delete finds nothing.
	assert.ErrorIs(t, posts.DeleteCascade(ctx, post.ID), gorm.ErrRecordNotFound)
}

func TestReactionRepository_UpsertReplaces(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	reactions := NewReactionRepository(db)

	user := &model.User{Phone: "01712345678", Name: "Omar", PasswordHash: "x", Role: model.RoleUser}
	assert.NoError(t, NewUserRepository(db).Create(ctx, user))
	post := createTestPost(t, db)

	assert.NoError(t, reactions.Upsert(ctx, &model.Reaction{
		PostID: post.ID, UserID: user.ID, ReactionType: model.ReactionLike,
	}))
	assert.NoError(t, reactions.Upsert(ctx, &model.Reaction{
		PostID: post.ID, UserID: user.ID, ReactionType: model.ReactionDislike,
	}))

	tallies, err := reactions.TallyByPosts(ctx, []uuid.UUID{post.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), tallies[post.ID].Likes)
	assert.Equal(t, int64(1), tallies[post.ID].Dislikes)

	byUser, err := reactions.ByUser(ctx, []uuid.UUID{post.ID}, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ReactionDislike, byUser[post.ID])
}
