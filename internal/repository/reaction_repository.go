package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alemsite/internal/model"
)

// ReactionTally aggregates a post's reactions by type.
type ReactionTally struct {
	Likes    int64
	Dislikes int64
}

// ReactionRepository defines reaction persistence operations. A user holds at
// most one reaction per post; writes replace any prior reaction.
type ReactionRepository interface {
	// Upsert inserts the reaction or replaces the caller's existing one on
	// the same post, as a single atomic statement.
	Upsert(ctx context.Context, reaction *model.Reaction) error
	TallyByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]ReactionTally, error)
	ByUser(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]model.ReactionType, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Upsert(ctx context.Context, reaction *model.Reaction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction_type", "created_at"}),
	}).Create(reaction).Error
}

func (r *reactionRepository) TallyByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]ReactionTally, error) {
	tallies := make(map[uuid.UUID]ReactionTally, len(postIDs))
	if len(postIDs) == 0 {
		return tallies, nil
	}

	var rows []struct {
		PostID       uuid.UUID
		ReactionType model.ReactionType
		Total        int64
	}
	err := r.db.WithContext(ctx).Model(&model.Reaction{}).
		Select("post_id, reaction_type, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").Group("reaction_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		tally := tallies[row.PostID]
		switch row.ReactionType {
		case model.ReactionLike:
			tally.Likes = row.Total
		case model.ReactionDislike:
			tally.Dislikes = row.Total
		}
		tallies[row.PostID] = tally
	}
	return tallies, nil
}

func (r *reactionRepository) ByUser(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]model.ReactionType, error) {
	out := make(map[uuid.UUID]model.ReactionType, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var reactions []model.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id IN ? AND user_id = ?", postIDs, userID).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}

	for _, reaction := range reactions {
		out[reaction.PostID] = reaction.ReactionType
	}
	return out, nil
}
