package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/service"
)

type materialRequestRequest struct {
	ProjectID uuid.UUID `json:"projectId"`
	ItemName  string    `json:"itemName"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Urgency   string    `json:"urgency"`
	Notes     string    `json:"notes"`
}

func (h *Handler) listMaterialRequests(c *gin.Context) {
	projectID, ok := parseUUIDQuery(c, "projectId")
	if !ok {
		return
	}
	status := model.MaterialRequestStatus(c.Query("status"))
	requests, err := h.materials.ListRequests(c.Request.Context(), projectID, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, requests)
}

func (h *Handler) createMaterialRequest(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req materialRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	request, err := h.materials.CreateRequest(c.Request.Context(), principal, service.MaterialRequestInput{
		ProjectID: req.ProjectID,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Urgency:   model.MaterialUrgency(req.Urgency),
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, request)
}

func (h *Handler) approveMaterialRequest(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	request, err := h.materials.ApproveRequest(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, request)
}

func (h *Handler) rejectMaterialRequest(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	request, err := h.materials.RejectRequest(c.Request.Context(), principal, id, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, request)
}

func (h *Handler) deleteMaterialRequest(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.materials.DeleteRequest(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "material request deleted")
}

type materialPurchaseRequest struct {
	RequestID    *uuid.UUID `json:"requestId"`
	ProjectID    uuid.UUID  `json:"projectId"`
	ItemName     string     `json:"itemName"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	UnitPrice    float64    `json:"unitPrice"`
	Supplier     string     `json:"supplier"`
	PurchaseDate string     `json:"purchaseDate"`
}

func (h *Handler) listMaterialPurchases(c *gin.Context) {
	projectID, ok := parseUUIDQuery(c, "projectId")
	if !ok {
		return
	}
	purchases, err := h.materials.ListPurchases(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, purchases)
}

func (h *Handler) createMaterialPurchase(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req materialPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input := service.MaterialPurchaseInput{
		RequestID: req.RequestID,
		ProjectID: req.ProjectID,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		Supplier:  req.Supplier,
	}
	if req.PurchaseDate != "" {
		date, err := parseDate(req.PurchaseDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid purchaseDate")
			return
		}
		input.PurchaseDate = date
	}
	purchase, err := h.materials.CreatePurchase(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, purchase)
}

func (h *Handler) deleteMaterialPurchase(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.materials.DeletePurchase(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "material purchase deleted")
}

func (h *Handler) listMaterialExpenses(c *gin.Context) {
	projectID, ok := parseUUIDQuery(c, "projectId")
	if !ok {
		return
	}
	expenses, err := h.materials.ListExpenses(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, expenses)
}
