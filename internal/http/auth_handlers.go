package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func (h *Handler) listUsers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing principal")
		return
	}
	users, err := h.auth.ListUsers(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, users)
}

type userStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *Handler) setUserStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing principal")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.auth.SetUserActive(c.Request.Context(), principal, id, *req.IsActive)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing principal")
		return
	}
	user, err := h.auth.Me(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}
