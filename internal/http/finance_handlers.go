package http

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/service"
)

// ExcelGenerator and PDFGenerator render the finance export; the
// concrete implementations live in internal/excel and internal/pdf.
type ExcelGenerator interface {
	Generate(export model.FinanceExport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(export model.FinanceExport) ([]byte, error)
}

type attachmentRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

type transactionRequest struct {
	Type        string              `json:"type"`
	Amount      *float64            `json:"amount"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	ProjectID   uuid.UUID           `json:"projectId"`
	Date        string              `json:"date"`
	Status      string              `json:"status"`
	Attachments []attachmentRequest `json:"attachments"`
}

func (r transactionRequest) toInput() (service.TransactionInput, error) {
	input := service.TransactionInput{
		Type:        model.TransactionType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		ProjectID:   r.ProjectID,
		Status:      model.PaymentStatus(r.Status),
	}
	if r.Date != "" {
		date, err := parseDate(r.Date)
		if err != nil {
			return input, err
		}
		input.Date = date
	}
	for _, att := range r.Attachments {
		data, err := base64.StdEncoding.DecodeString(att.Data)
		if err != nil {
			return input, err
		}
		input.Attachments = append(input.Attachments, model.Attachment{
			FileName:    att.FileName,
			ContentType: att.ContentType,
			Size:        int64(len(data)),
			Data:        data,
		})
	}
	return input, nil
}

func transactionFilterFromQuery(c *gin.Context) (model.TransactionFilter, bool) {
	filter := model.TransactionFilter{
		Type:           model.TransactionType(c.Query("type")),
		Status:         model.PaymentStatus(c.Query("status")),
		ApprovalStatus: model.ApprovalStatus(c.Query("approvalStatus")),
		Category:       c.Query("category"),
	}
	projectID, ok := parseUUIDQuery(c, "projectId")
	if !ok {
		return filter, false
	}
	filter.ProjectID = projectID
	from, ok := parseDateQuery(c, "startDate")
	if !ok {
		return filter, false
	}
	filter.DateFrom = from
	to, ok := parseDateQuery(c, "endDate")
	if !ok {
		return filter, false
	}
	filter.DateTo = to
	return filter, true
}

func (h *Handler) listTransactions(c *gin.Context) {
	filter, ok := transactionFilterFromQuery(c)
	if !ok {
		return
	}
	transactions, err := h.finances.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, transactions)
}

func (h *Handler) getTransaction(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	transaction, err := h.finances.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, transaction)
}

func (h *Handler) createTransaction(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid transaction payload")
		return
	}
	transaction, err := h.finances.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, transaction)
}

func (h *Handler) updateTransaction(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid transaction payload")
		return
	}
	transaction, err := h.finances.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, transaction)
}

func (h *Handler) deleteTransaction(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.finances.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "transaction deleted")
}

func (h *Handler) approveTransaction(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	transaction, err := h.finances.Approve(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, transaction)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) rejectTransaction(c *gin.Context) {
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
	transaction, err := h.finances.Reject(c.Request.Context(), principal, id, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, transaction)
}

func (h *Handler) pendingApprovals(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	transactions, err := h.finances.PendingApprovals(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, transactions)
}

func (h *Handler) financialSummary(c *gin.Context) {
	filter, ok := transactionFilterFromQuery(c)
	if !ok {
		return
	}
	summary, err := h.finances.Summary(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, summary)
}

func (h *Handler) chartData(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}
	points, err := h.finances.ChartData(c.Request.Context(), year)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, points)
}

func (h *Handler) categoryExpenses(c *gin.Context) {
	filter, ok := transactionFilterFromQuery(c)
	if !ok {
		return
	}
	breakdown, err := h.finances.CategoryExpenses(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, breakdown)
}

func (h *Handler) exportFinances(c *gin.Context) {
	filter, ok := transactionFilterFromQuery(c)
	if !ok {
		return
	}
	export, err := h.finances.BuildExport(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.excel.Generate(*export)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := "finances-" + export.GeneratedAt.Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) exportFinancesPDF(c *gin.Context) {
	filter, ok := transactionFilterFromQuery(c)
	if !ok {
		return
	}
	export, err := h.finances.BuildExport(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.pdf.Generate(*export)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := "finances-" + export.GeneratedAt.Format("20060102-150405") + ".pdf"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}
