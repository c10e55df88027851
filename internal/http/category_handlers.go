package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkenzh/buildops/internal/http/middleware"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}

func (h *Handler) createCategory(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	category, err := h.categories.Create(c.Request.Context(), principal, req.Name, req.Description)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "category deleted")
}
