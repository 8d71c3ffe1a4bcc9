package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a forum category. Posts reference it by name as a free-text
// label, not a foreign key.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Slug        string    `json:"slug" gorm:"size:255;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Slugify derives a URL slug from a category name: lowercased, spaces
// replaced by hyphens.
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// BeforeSave recomputes the slug from the name so the two never drift apart.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Slug = Slugify(c.Name)
	return nil
}
