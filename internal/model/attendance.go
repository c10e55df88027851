package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is one check-in/check-out record per allocation per day.
// The unique index on (allocation_id, date) rejects duplicates at the
// storage level.
type Attendance struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	AllocationID uuid.UUID  `json:"projectResourceId" gorm:"type:uuid;not null;uniqueIndex:uq_attendance_allocation_date"`
	Date         time.Time  `json:"date" gorm:"type:date;not null;uniqueIndex:uq_attendance_allocation_date"`
	CheckIn      time.Time  `json:"checkIn" gorm:"not null"`
	CheckOut     time.Time  `json:"checkOut" gorm:"not null"`
	TotalHours   float64    `json:"totalHours" gorm:"not null"`
	Notes        string     `json:"notes"`
	CreatedByID  uuid.UUID  `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Allocation *Allocation `json:"allocation,omitempty" gorm:"foreignKey:AllocationID"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
