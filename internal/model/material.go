package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRequestStatus string

const (
	MaterialRequestPending   MaterialRequestStatus = "pending"
	MaterialRequestApproved  MaterialRequestStatus = "approved"
	MaterialRequestRejected  MaterialRequestStatus = "rejected"
	MaterialRequestPurchased MaterialRequestStatus = "purchased"
)

type MaterialUrgency string

const (
	MaterialUrgencyLow    MaterialUrgency = "low"
	MaterialUrgencyMedium MaterialUrgency = "medium"
	MaterialUrgencyHigh   MaterialUrgency = "high"
)

// MaterialCategory is the transaction category assigned to expenses that
// purchases create.
const MaterialCategory = "materials"

type MaterialRequest struct {
	ID              uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID             `json:"projectId" gorm:"type:uuid;not null;index"`
	ItemName        string                `json:"itemName" gorm:"not null"`
	Quantity        float64               `json:"quantity" gorm:"not null"`
	Unit            string                `json:"unit"`
	Urgency         MaterialUrgency       `json:"urgency" gorm:"type:varchar(16);not null;default:'medium'"`
	Status          MaterialRequestStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	Notes           string                `json:"notes"`
	RejectionReason string                `json:"rejectionReason,omitempty"`
	RequestedByID   uuid.UUID             `json:"requestedBy" gorm:"type:uuid;not null"`
	ReviewedByID    *uuid.UUID            `json:"reviewedBy,omitempty" gorm:"type:uuid"`
	ReviewedAt      *time.Time            `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func (m *MaterialRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MaterialPurchase records are created in two phases: the purchase row
// first, then the linked expense transaction. TransactionID is kept so
// that deleting the purchase cascades to its expense.
type MaterialPurchase struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	RequestID     *uuid.UUID `json:"requestId,omitempty" gorm:"type:uuid;index"`
	ProjectID     uuid.UUID  `json:"projectId" gorm:"type:uuid;not null;index"`
	ItemName      string     `json:"itemName" gorm:"not null"`
	Quantity      float64    `json:"quantity" gorm:"not null"`
	Unit          string     `json:"unit"`
	UnitPrice     float64    `json:"unitPrice" gorm:"not null"`
	TotalAmount   float64    `json:"totalAmount" gorm:"not null"`
	Supplier      string     `json:"supplier"`
	PurchaseDate  time.Time  `json:"purchaseDate" gorm:"not null"`
	TransactionID *uuid.UUID `json:"transactionId,omitempty" gorm:"type:uuid"`
	CreatedByID   uuid.UUID  `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (m *MaterialPurchase) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
