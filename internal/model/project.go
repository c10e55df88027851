package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID                uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Name              string        `json:"name" gorm:"not null"`
	CompanyID         uuid.UUID     `json:"companyId" gorm:"type:uuid;not null;index"`
	Description       string        `json:"description"`
	StartDate         time.Time     `json:"startDate"`
	EndDate           *time.Time    `json:"endDate,omitempty"`
	Status            ProjectStatus `json:"status" gorm:"type:varchar(16);not null;default:'planning'"`
	Budget            float64       `json:"budget"`
	ManagerIDs        UUIDList      `json:"managers" gorm:"type:text"`
	TeamIDs           UUIDList      `json:"team" gorm:"type:text"`
	ManpowerAllocated int           `json:"manpowerAllocated" gorm:"not null;default:0"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
