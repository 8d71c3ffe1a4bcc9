package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStatus represents the moderation status of a comment.
type CommentStatus string

const (
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusRejected CommentStatus = "rejected"
)

// Comment represents a comment on a forum post. Comments reference their post
// but live independently of it, except for the cascade on post deletion.
type Comment struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID      `json:"postId" gorm:"type:char(36);not null;index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Author    string         `json:"author" gorm:"size:255;not null"`
	Status    CommentStatus  `json:"status" gorm:"type:varchar(20);not null;default:'approved';index"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
