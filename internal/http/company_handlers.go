package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/service"
)

type companyRequest struct {
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	ContactEmail string      `json:"contactEmail"`
	ContactPhone string      `json:"contactPhone"`
	Managers     []uuid.UUID `json:"managers"`
}

func (r companyRequest) toInput() service.CompanyInput {
	return service.CompanyInput{
		Name:         r.Name,
		Address:      r.Address,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		ManagerIDs:   r.Managers,
	}
}

func (h *Handler) listCompanies(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, companies)
}

func (h *Handler) getCompany(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companies.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, company)
}

func (h *Handler) createCompany(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	company, err := h.companies.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, company)
}

func (h *Handler) updateCompany(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	company, err := h.companies.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, company)
}

func (h *Handler) deleteCompany(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.companies.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "company deleted")
}
