package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus represents the moderation status of a forum post.
type PostStatus string

const (
	PostStatusActive   PostStatus = "active"
	PostStatusPending  PostStatus = "pending"
	PostStatusReported PostStatus = "reported"
	PostStatusClosed   PostStatus = "closed"
)

// Post represents a forum post. CommentsCount is a denormalized counter kept
// in step with the comments table by atomic increments, never recomputed on read.
type Post struct {
	ID            uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string         `json:"title" gorm:"size:255;not null"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	Author        string         `json:"author" gorm:"size:255;not null;index"`
	Category      string         `json:"category" gorm:"size:255;not null;index"`
	Views         int64          `json:"views" gorm:"not null;default:0"`
	Status        PostStatus     `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CommentsCount int64          `json:"commentsCount" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Comments  []Comment  `json:"-" gorm:"foreignKey:PostID"`
	Reactions []Reaction `json:"-" gorm:"foreignKey:PostID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
