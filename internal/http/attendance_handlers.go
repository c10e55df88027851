package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/service"
)

type attendanceRequest struct {
	AllocationID uuid.UUID `json:"projectResourceId"`
	Date         string    `json:"date"`
	CheckIn      string    `json:"checkIn"`
	CheckOut     string    `json:"checkOut"`
	Notes        string    `json:"notes"`
}

func (r attendanceRequest) toInput() (service.AttendanceInput, error) {
	input := service.AttendanceInput{
		AllocationID: r.AllocationID,
		Notes:        r.Notes,
	}
	var err error
	if r.Date != "" {
		if input.Date, err = parseDate(r.Date); err != nil {
			return input, err
		}
	}
	if r.CheckIn != "" {
		if input.CheckIn, err = parseDate(r.CheckIn); err != nil {
			return input, err
		}
	}
	if r.CheckOut != "" {
		if input.CheckOut, err = parseDate(r.CheckOut); err != nil {
			return input, err
		}
	}
	return input, nil
}

func (h *Handler) listAttendance(c *gin.Context) {
	allocationID, ok := parseUUIDQuery(c, "projectResourceId")
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "startDate")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "endDate")
	if !ok {
		return
	}
	records, err := h.attendance.List(c.Request.Context(), allocationID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, records)
}

func (h *Handler) getAttendance(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.attendance.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, record)
}

func (h *Handler) createAttendance(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date format")
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, record)
}

func (h *Handler) updateAttendance(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date format")
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, record)
}

func (h *Handler) deleteAttendance(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.attendance.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "attendance deleted")
}

func (h *Handler) attendanceReport(c *gin.Context) {
	var from, to time.Time
	var ok bool
	if from, ok = parseDateQuery(c, "startDate"); !ok {
		return
	}
	if to, ok = parseDateQuery(c, "endDate"); !ok {
		return
	}
	rows, err := h.attendance.Report(c.Request.Context(), from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, rows)
}
