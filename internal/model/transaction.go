package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionPayment TransactionType = "payment"
	TransactionIncome  TransactionType = "income"
)

// PaymentStatus tracks the money side of a transaction, independently of
// the approval workflow.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

const DefaultCategory = "other"

type Transaction struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type            TransactionType `json:"type" gorm:"type:varchar(16);not null;index"`
	Amount          float64         `json:"amount" gorm:"not null"`
	Description     string          `json:"description"`
	Category        string          `json:"category" gorm:"not null;default:'other';index"`
	ProjectID       uuid.UUID       `json:"projectId" gorm:"type:uuid;not null;index"`
	Date            time.Time       `json:"date" gorm:"not null;index"`
	Status          PaymentStatus   `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	ApprovalStatus  ApprovalStatus  `json:"approvalStatus" gorm:"type:varchar(16);not null;default:'pending';index"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedByID     uuid.UUID       `json:"createdBy" gorm:"type:uuid;not null"`
	ApprovedByID    *uuid.UUID      `json:"approvedBy,omitempty" gorm:"type:uuid"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectedByID    *uuid.UUID      `json:"rejectedBy,omitempty" gorm:"type:uuid"`
	RejectedAt      *time.Time      `json:"rejectedAt,omitempty"`
	Attachments     []Attachment    `json:"attachments,omitempty" gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Attachment struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	FileName      string    `json:"fileName" gorm:"not null"`
	ContentType   string    `json:"contentType"`
	Size          int64     `json:"size"`
	Data          []byte    `json:"-" gorm:"type:bytea"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// InitialApprovalStatus decides the approval state a new transaction is
// born with. Payments and income auto-approve; expenses start pending
// unless the creator is an admin.
func InitialApprovalStatus(txType TransactionType, creatorRole Role) ApprovalStatus {
	if txType == TransactionExpense && creatorRole != RoleAdmin {
		return ApprovalPending
	}
	return ApprovalApproved
}
