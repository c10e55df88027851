package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resource struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	HourlyRate float64   `json:"hourlyRate" gorm:"not null;default:0"`
	Skills     StringList `json:"skills" gorm:"type:text"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Allocation binds a resource to a project for a bounded period. At most
// one allocation per resource may be active at a time; the partial
// unique index on (resource_id) WHERE is_active is the authoritative
// guard, the service-level pre-check only produces a friendlier error.
type Allocation struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ResourceID     uuid.UUID  `json:"resourceId" gorm:"type:uuid;not null;index"`
	ProjectID      uuid.UUID  `json:"projectId" gorm:"type:uuid;not null;index"`
	HoursAllocated float64    `json:"hoursAllocated"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	IsActive       bool       `json:"isActive" gorm:"not null;default:true"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Resource *Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
