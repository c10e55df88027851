package model

import (
	"time"

	"github.com/google/uuid"
)

// FinancialSummary is derived per request from the filtered transaction
// set. Expenses only count once approved.
type FinancialSummary struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalExpenses   float64 `json:"totalExpenses"`
	Profit          float64 `json:"profit"`
	PendingPayments float64 `json:"pendingPayments"`
	OverduePayments float64 `json:"overduePayments"`
}

type CategoryExpense struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthlyPoint is one month of the current-year chart series.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// AttendanceReportRow aggregates attendance per (resource, project)
// pair. Cost applies the resource's current hourly rate to the summed
// hours, so a rate change affects past periods too.
type AttendanceReportRow struct {
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	ProjectID    uuid.UUID `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	HourlyRate   float64   `json:"hourlyRate"`
	TotalHours   float64   `json:"totalHours"`
	TotalDays    int64     `json:"totalDays"`
	Cost         float64   `json:"cost"`
}

// TransactionFilter narrows list/report queries. Zero values mean
// "no constraint".
type TransactionFilter struct {
	ProjectID      uuid.UUID
	Type           TransactionType
	Status         PaymentStatus
	ApprovalStatus ApprovalStatus
	Category       string
	DateFrom       time.Time
	DateTo         time.Time
}

// FinanceExport bundles what the spreadsheet/PDF generators render.
type FinanceExport struct {
	GeneratedAt  time.Time
	Filter       TransactionFilter
	Summary      FinancialSummary
	Categories   []CategoryExpense
	Transactions []Transaction
	ProjectNames map[uuid.UUID]string
}
