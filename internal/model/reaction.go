package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionType is the kind of reaction a user can leave on a post.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid reports whether t is one of the accepted reaction types.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is a single user's reaction to a post. The (post_id, user_id)
// unique index makes the replace-on-conflict upsert a single atomic statement;
// a user can hold at most one reaction per post.
type Reaction struct {
	ID           uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	PostID       uuid.UUID    `json:"postId" gorm:"type:char(36);not null;uniqueIndex:idx_reaction_post_user"`
	UserID       uuid.UUID    `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_reaction_post_user"`
	ReactionType ReactionType `json:"reactionType" gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
