package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/service"
)

type projectRequest struct {
	Name        string      `json:"name"`
	CompanyID   uuid.UUID   `json:"companyId"`
	Description string      `json:"description"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Status      string      `json:"status"`
	Budget      float64     `json:"budget"`
	Managers    []uuid.UUID `json:"managers"`
	Team        []uuid.UUID `json:"team"`
}

func (r projectRequest) toInput() (service.ProjectInput, error) {
	input := service.ProjectInput{
		Name:        r.Name,
		CompanyID:   r.CompanyID,
		Description: r.Description,
		Status:      model.ProjectStatus(r.Status),
		Budget:      r.Budget,
		ManagerIDs:  r.Managers,
		TeamIDs:     r.Team,
	}
	if r.StartDate != "" {
		start, err := parseDate(r.StartDate)
		if err != nil {
			return input, err
		}
		input.StartDate = start
	}
	if r.EndDate != "" {
		end, err := parseDate(r.EndDate)
		if err != nil {
			return input, err
		}
		input.EndDate = &end
	}
	return input, nil
}

func (h *Handler) listProjects(c *gin.Context) {
	companyID, ok := parseUUIDQuery(c, "companyId")
	if !ok {
		return
	}
	projects, err := h.projects.List(c.Request.Context(), companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, projects)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, project)
}

func (h *Handler) createProject(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date format")
		return
	}
	project, err := h.projects.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, project)
}

func (h *Handler) updateProject(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date format")
		return
	}
	project, err := h.projects.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, project)
}

func (h *Handler) deleteProject(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "project deleted")
}
