package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dkenzh/buildops/internal/model"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Allocation").Preload("Allocation.Resource").Preload("Allocation.Project").
		First(&attendance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *AttendanceRepository) List(ctx context.Context, allocationID uuid.UUID, from, to time.Time) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).
		Preload("Allocation").Preload("Allocation.Resource").Preload("Allocation.Project").
		Order("date DESC")
	if allocationID != uuid.Nil {
		query = query.Where("allocation_id = ?", allocationID)
	}
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	var rows []model.Attendance
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Exists backs the duplicate-day pre-check; the unique index on
// (allocation_id, date) is the hard stop.
func (r *AttendanceRepository) Exists(ctx context.Context, allocationID uuid.UUID, date time.Time, exclude uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("allocation_id = ? AND date = ?", allocationID, date)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *AttendanceRepository) Update(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(attendance).Error
}

func (r *AttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Attendance{}, "id = ?", id).Error
}

// ListForReport loads the period's records with their allocation,
// resource and project; grouping happens in the service.
func (r *AttendanceRepository) ListForReport(ctx context.Context, from, to time.Time) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).
		Preload("Allocation").Preload("Allocation.Resource").Preload("Allocation.Project")
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	var rows []model.Attendance
	if err := query.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
