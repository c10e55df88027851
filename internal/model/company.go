package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Address       string    `json:"address"`
	ContactEmail  string    `json:"contactEmail" gorm:"index"`
	ContactPhone  string    `json:"contactPhone"`
	ManagerIDs    UUIDList  `json:"managers" gorm:"type:text"`
	ProjectIDs    UUIDList  `json:"projects" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
