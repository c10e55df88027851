package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/service"
)

type resourceRequest struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	HourlyRate *float64 `json:"hourlyRate"`
	Skills     []string `json:"skills"`
}

func (r resourceRequest) toInput() service.ResourceInput {
	return service.ResourceInput{
		Name:       r.Name,
		Role:       r.Role,
		Email:      r.Email,
		Phone:      r.Phone,
		HourlyRate: r.HourlyRate,
		Skills:     r.Skills,
	}
}

func (h *Handler) listResources(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	resources, err := h.resources.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, resources)
}

func (h *Handler) getResource(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resource, err := h.resources.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, resource)
}

func (h *Handler) createResource(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	resource, err := h.resources.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, resource)
}

func (h *Handler) updateResource(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	resource, err := h.resources.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, resource)
}

func (h *Handler) deactivateResource(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.resources.Deactivate(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "resource deactivated")
}

type allocateRequest struct {
	ResourceID     uuid.UUID `json:"resourceId"`
	HoursAllocated float64   `json:"hoursAllocated"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
}

func (h *Handler) allocateResource(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	projectID, ok := parseUUIDParam(c, "projectId")
	if !ok {
		return
	}
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input := service.AllocationInput{
		ResourceID:     req.ResourceID,
		HoursAllocated: req.HoursAllocated,
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid startDate")
			return
		}
		input.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid endDate")
			return
		}
		input.EndDate = &end
	}
	allocation, err := h.resources.Allocate(c.Request.Context(), principal, projectID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, allocation)
}

func (h *Handler) listProjectAllocations(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId")
	if !ok {
		return
	}
	allocations, err := h.resources.ListAllocations(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, allocations)
}

type allocationUpdateRequest struct {
	HoursAllocated *float64 `json:"hoursAllocated"`
	EndDate        string   `json:"endDate"`
}

func (h *Handler) updateAllocation(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req allocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input := service.AllocationUpdateInput{HoursAllocated: req.HoursAllocated}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid endDate")
			return
		}
		input.EndDate = &end
	}
	allocation, err := h.resources.UpdateAllocation(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, allocation)
}

func (h *Handler) deallocateResource(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.resources.Deallocate(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "resource deallocated")
}
