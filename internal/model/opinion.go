package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Opinion is a visitor-submitted testimonial. Submissions start unapproved
// and only show up publicly after a moderator approves them.
type Opinion struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string         `json:"name" gorm:"size:255;not null"`
	Email      string         `json:"email,omitempty" gorm:"size:255;not null"`
	Location   string         `json:"location" gorm:"size:255"`
	Title      string         `json:"title" gorm:"size:255;default:'Visitor'"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	Rating     int            `json:"rating" gorm:"not null;default:5"`
	IsApproved bool           `json:"isApproved" gorm:"not null;default:false;index"`
	CreatedAt  time.Time      `json:"createdAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Opinion) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
