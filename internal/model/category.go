package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a known expense category. The breakdown report seeds one
// zero bucket per category; transactions with an unrecognized category
// fall into the "other" bucket.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
