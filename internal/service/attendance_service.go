package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

type AttendanceService struct {
	attendance *repository.AttendanceRepository
	resources  *repository.ResourceRepository
}

func NewAttendanceService(attendance *repository.AttendanceRepository, resources *repository.ResourceRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance, resources: resources}
}

type AttendanceInput struct {
	AllocationID uuid.UUID
	Date         time.Time
	CheckIn      time.Time
	CheckOut     time.Time
	Notes        string
}

func (s *AttendanceService) Create(ctx context.Context, principal model.Principal, input AttendanceInput) (*model.Attendance, error) {
	if input.AllocationID == uuid.Nil {
		return nil, fmt.Errorf("%w: projectResourceId is required", ErrInvalidInput)
	}
	if _, err := s.resources.GetAllocation(ctx, input.AllocationID); err != nil {
		return nil, translate(err)
	}
	hours, err := workedHours(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	date := dateOnly(input.Date)
	if date.IsZero() {
		date = dateOnly(input.CheckIn)
	}

	duplicate, err := s.attendance.Exists(ctx, input.AllocationID, date, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, fmt.Errorf("%w: attendance for this resource and date already exists", ErrConflict)
	}

	record := &model.Attendance{
		AllocationID: input.AllocationID,
		Date:         date,
		CheckIn:      input.CheckIn,
		CheckOut:     input.CheckOut,
		TotalHours:   hours,
		Notes:        input.Notes,
		CreatedByID:  principal.UserID,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: attendance for this resource and date already exists", ErrConflict)
		}
		return nil, err
	}
	return record, nil
}

func (s *AttendanceService) Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	record, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return record, nil
}

func (s *AttendanceService) List(ctx context.Context, allocationID uuid.UUID, from, to time.Time) ([]model.Attendance, error) {
	return s.attendance.List(ctx, allocationID, dateOnly(from), dateOnly(to))
}

func (s *AttendanceService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input AttendanceInput) (*model.Attendance, error) {
	record, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if record.CreatedByID != principal.UserID && !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}

	if !input.CheckIn.IsZero() {
		record.CheckIn = input.CheckIn
	}
	if !input.CheckOut.IsZero() {
		record.CheckOut = input.CheckOut
	}
	hours, err := workedHours(record.CheckIn, record.CheckOut)
	if err != nil {
		return nil, err
	}
	record.TotalHours = hours
	if input.Notes != "" {
		record.Notes = input.Notes
	}
	if date := dateOnly(input.Date); !date.IsZero() && !date.Equal(record.Date) {
		duplicate, err := s.attendance.Exists(ctx, record.AllocationID, date, record.ID)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, fmt.Errorf("%w: attendance for this resource and date already exists", ErrConflict)
		}
		record.Date = date
	}

	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *AttendanceService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsElevated() {
		return ErrPermissionDenied
	}
	if _, err := s.attendance.GetByID(ctx, id); err != nil {
		return translate(err)
	}
	return s.attendance.Delete(ctx, id)
}

// Report groups the period's attendance per (resource, project) pair.
// Cost multiplies the summed hours by the resource's current hourly
// rate, so a rate change applies retroactively to the whole period.
func (s *AttendanceService) Report(ctx context.Context, from, to time.Time) ([]model.AttendanceReportRow, error) {
	records, err := s.attendance.ListForReport(ctx, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}

	type pairKey struct {
		resource uuid.UUID
		project  uuid.UUID
	}
	groups := make(map[pairKey]*model.AttendanceReportRow)
	order := make([]pairKey, 0)
	for _, record := range records {
		if record.Allocation == nil || record.Allocation.Resource == nil {
			continue
		}
		key := pairKey{resource: record.Allocation.ResourceID, project: record.Allocation.ProjectID}
		row, ok := groups[key]
		if !ok {
			row = &model.AttendanceReportRow{
				ResourceID:   record.Allocation.ResourceID,
				ResourceName: record.Allocation.Resource.Name,
				ProjectID:    record.Allocation.ProjectID,
				HourlyRate:   record.Allocation.Resource.HourlyRate,
			}
			if record.Allocation.Project != nil {
				row.ProjectName = record.Allocation.Project.Name
			}
			groups[key] = row
			order = append(order, key)
		}
		row.TotalHours = round2(row.TotalHours + record.TotalHours)
		row.TotalDays++
	}

	result := make([]model.AttendanceReportRow, 0, len(groups))
	for _, key := range order {
		row := groups[key]
		row.Cost = round2(row.TotalHours * row.HourlyRate)
		result = append(result, *row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ResourceName != result[j].ResourceName {
			return result[i].ResourceName < result[j].ResourceName
		}
		return result[i].ProjectName < result[j].ProjectName
	})
	return result, nil
}

func workedHours(checkIn, checkOut time.Time) (float64, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0, fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}
	hours := round2(checkOut.Sub(checkIn).Hours())
	if hours <= 0 {
		return 0, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}
	return hours, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
