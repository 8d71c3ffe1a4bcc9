package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
	"alemsite/internal/repository"
)

// AnonymousAuthor is the author label used when neither the payload nor the
// caller identity provides one.
const AnonymousAuthor = "Anonymous"

// Pagination describes a page of a listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasMore     bool  `json:"hasMore"`
}

// PostView is a post enriched with reaction aggregates. Individual reactions
// of other users are never exposed, only the tallies and the viewer's own.
type PostView struct {
	model.Post
	LikeCount    int64               `json:"likeCount"`
	UnlikeCount  int64               `json:"unlikeCount"`
	UserReaction *model.ReactionType `json:"userReaction"`
}

// ForumStats aggregates forum-wide counters.
type ForumStats struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalComments int64 `json:"totalComments"`
	ReportedPosts int64 `json:"reportedPosts"`
	ActiveUsers   int64 `json:"activeUsers"`
}

// ListPostsInput restricts and pages a post listing. Viewer, when set, is
// used to compute that caller's own reaction per post.
type ListPostsInput struct {
	Category string
	Search   string
	Page     int
	Limit    int
	Scope    repository.Scope
	Viewer   *model.User
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Author   string
}

// UpdatePostInput carries a partial post update; nil fields are untouched.
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Category *string
	Status   *model.PostStatus
}

// CreateCommentInput is the payload for creating a comment.
type CreateCommentInput struct {
	PostID  uuid.UUID
	Content string
	Author  string
}

// UpdateCommentInput carries a partial comment update; nil fields are untouched.
type UpdateCommentInput struct {
	Content *string
	Status  *model.CommentStatus
}

// UpdateCategoryInput carries a partial category update. Renaming recomputes
// the slug.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// ForumService owns posts, comments, categories and reactions, and enforces
// their consistency: comment counters move with comment writes, post deletion
// cascades, and a user holds at most one reaction per post.
type ForumService interface {
	ListPosts(ctx context.Context, in ListPostsInput) ([]PostView, *Pagination, error)
	CreatePost(ctx context.Context, in CreatePostInput, viewer *model.User) (*model.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	React(ctx context.Context, postID uuid.UUID, viewer *model.User, reactionType model.ReactionType) (*PostView, error)

	ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	ListComments(ctx context.Context, scope repository.Scope) ([]model.Comment, error)
	CreateComment(ctx context.Context, in CreateCommentInput, viewer *model.User) (*model.Comment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, in UpdateCommentInput) (*model.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*model.Category, error)

	Stats(ctx context.Context) (*ForumStats, error)
}

type forumService struct {
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	categoryRepo    repository.CategoryRepository
	reactionRepo    repository.ReactionRepository
	userRepo        repository.UserRepository
	defaultPageSize int
}

// NewForumService creates a new forum service. defaultPageSize is used when a
// listing request does not specify a limit.
func NewForumService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	reactionRepo repository.ReactionRepository,
	userRepo repository.UserRepository,
	defaultPageSize int,
) ForumService {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &forumService{
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		categoryRepo:    categoryRepo,
		reactionRepo:    reactionRepo,
		userRepo:        userRepo,
		defaultPageSize: defaultPageSize,
	}
}

// ListPosts returns one page of posts newest first, with reaction aggregates
// attached. Public scope excludes closed posts.
func (s *forumService) ListPosts(ctx context.Context, in ListPostsInput) ([]PostView, *Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.defaultPageSize
	}

	filter := repository.PostFilter{
		Scope:    in.Scope,
		Category: in.Category,
		Search:   in.Search,
	}

	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("count posts: %w", err)
	}

	posts, err := s.postRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list posts: %w", err)
	}

	views, err := s.enrichPosts(ctx, posts, in.Viewer)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasMore:     int64(page)*int64(limit) < total,
	}
	return views, pagination, nil
}

// enrichPosts attaches like/dislike tallies and the viewer's own reaction.
func (s *forumService) enrichPosts(ctx context.Context, posts []model.Post, viewer *model.User) ([]PostView, error) {
	postIDs := make([]uuid.UUID, len(posts))
	for i, post := range posts {
		postIDs[i] = post.ID
	}

	tallies, err := s.reactionRepo.TallyByPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("tally reactions: %w", err)
	}

	var viewerReactions map[uuid.UUID]model.ReactionType
	if viewer != nil {
		viewerReactions, err = s.reactionRepo.ByUser(ctx, postIDs, viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("load viewer reactions: %w", err)
		}
	}

	views := make([]PostView, len(posts))
	for i, post := range posts {
		tally := tallies[post.ID]
		view := PostView{
			Post:        post,
			LikeCount:   tally.Likes,
			UnlikeCount: tally.Dislikes,
		}
		if reaction, ok := viewerReactions[post.ID]; ok {
			view.UserReaction = &reaction
		}
		views[i] = view
	}
	return views, nil
}

// CreatePost stores a new post. The author label falls back to the caller's
// phone when authenticated, else to "Anonymous".
func (s *forumService) CreatePost(ctx context.Context, in CreatePostInput, viewer *model.User) (*model.Post, error) {
	author := in.Author
	if author == "" && viewer != nil {
		author = viewer.Phone
	}
	if author == "" {
		author = AnonymousAuthor
	}

	post := &model.Post{
		Title:    in.Title,
		Content:  in.Content,
		Author:   author,
		Category: in.Category,
		Status:   model.PostStatusActive,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost applies a partial update to a post.
func (s *forumService) UpdatePost(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*model.Post, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if len(updates) == 0 {
		return s.findPost(ctx, id)
	}

	post, err := s.postRepo.Update(ctx, id, updates)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes the post and everything referencing it: comments and
// reactions go in the same transaction, never leaving orphans behind.
func (s *forumService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.DeleteCascade(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// React records the caller's reaction on a post, replacing any earlier one
// from the same caller. Reacting twice with the same type is a no-op beyond
// refreshing the timestamp.
func (s *forumService) React(ctx context.Context, postID uuid.UUID, viewer *model.User, reactionType model.ReactionType) (*PostView, error) {
	if viewer == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if !reactionType.Valid() {
		return nil, apperrors.ErrInvalidReaction
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	reaction := &model.Reaction{
		PostID:       post.ID,
		UserID:       viewer.ID,
		ReactionType: reactionType,
	}
	if err := s.reactionRepo.Upsert(ctx, reaction); err != nil {
		return nil, fmt.Errorf("upsert reaction: %w", err)
	}

	views, err := s.enrichPosts(ctx, []model.Post{*post}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *forumService) findPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// ListCommentsByPost returns a post's comments newest first.
func (s *forumService) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ListComments returns all comments newest first. In public scope, comments
// whose parent post is closed are dropped.
func (s *forumService) ListComments(ctx context.Context, scope repository.Scope) ([]model.Comment, error) {
	comments, err := s.commentRepo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// CreateComment stores a comment and bumps the parent post's counter in the
// same transaction.
func (s *forumService) CreateComment(ctx context.Context, in CreateCommentInput, viewer *model.User) (*model.Comment, error) {
	author := in.Author
	if author == "" && viewer != nil {
		author = viewer.Phone
	}
	if author == "" {
		author = AnonymousAuthor
	}

	comment := &model.Comment{
		PostID:  in.PostID,
		Content: in.Content,
		Author:  author,
		Status:  model.CommentStatusApproved,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// UpdateComment applies a partial update to a comment.
func (s *forumService) UpdateComment(ctx context.Context, id uuid.UUID, in UpdateCommentInput) (*model.Comment, error) {
	updates := map[string]interface{}{}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if len(updates) == 0 {
		comment, err := s.commentRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrCommentNotFound
			}
			return nil, fmt.Errorf("find comment: %w", err)
		}
		return comment, nil
	}

	comment, err := s.commentRepo.Update(ctx, id, updates)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment and decrements the parent post's counter,
// floored at zero, in the same transaction.
func (s *forumService) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// ListCategories returns all categories alphabetically.
func (s *forumService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory stores a new category. The slug is derived from the name.
func (s *forumService) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, apperrors.ErrCategoryExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	category := &model.Category{
		Name:        name,
		Description: description,
		Slug:        model.Slugify(name),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// UpdateCategory applies a partial update; renaming recomputes the slug.
func (s *forumService) UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if in.Name != nil && *in.Name != category.Name {
		existing, err := s.categoryRepo.FindByName(ctx, *in.Name)
		if err == nil && existing != nil {
			return nil, apperrors.ErrCategoryExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check category existence: %w", err)
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.Slug = model.Slugify(category.Name)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Stats returns forum-wide aggregate counters.
func (s *forumService) Stats(ctx context.Context) (*ForumStats, error) {
	totalPosts, err := s.postRepo.Count(ctx, repository.PostFilter{Scope: repository.ScopeAll})
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	totalComments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	reported, err := s.postRepo.CountByStatus(ctx, model.PostStatusReported)
	if err != nil {
		return nil, fmt.Errorf("count reported posts: %w", err)
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return &ForumStats{
		TotalPosts:    totalPosts,
		TotalComments: totalComments,
		ReportedPosts: reported,
		ActiveUsers:   users,
	}, nil
}
