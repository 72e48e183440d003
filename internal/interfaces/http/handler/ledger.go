package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
)

// LedgerHandler handles transaction recording API endpoints. Writes go
// through the khata database's bookkeeping procedures, never raw inserts.
type LedgerHandler struct {
	BaseHandler
	records *ledgerapp.RecordService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(records *ledgerapp.RecordService) *LedgerHandler {
	return &LedgerHandler{
		records: records,
	}
}

// ===================== Request/Response DTOs =====================

// RecordSaleRequest represents a request to record a sale
// @Description Request body for recording a sale
type RecordSaleRequest struct {
	CustomerID string  `json:"customer_id" binding:"required" example:"42"`
	BatchID    string  `json:"batch_id" example:"7"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0" example:"25.5"`
	Rate       float64 `json:"rate" binding:"required,gt=0" example:"240"`
	PaidAmount float64 `json:"paid_amount" binding:"omitempty,gte=0" example:"2000"`
	DueDate    string  `json:"due_date" binding:"omitempty" example:"2026-09-15"`
	Note       string  `json:"note" binding:"max=500" example:"Morning pickup, Assam CTC"`
}

// RecordPaymentRequest represents a request to record a standalone payment
// @Description Request body for recording a payment
type RecordPaymentRequest struct {
	CustomerID    string  `json:"customer_id" binding:"required" example:"42"`
	Amount        float64 `json:"amount" binding:"required,gt=0" example:"1500"`
	Mode          string  `json:"mode" binding:"omitempty,oneof=full partial" example:"partial"`
	RelatedSaleID string  `json:"related_sale_id" example:"118"`
	Note          string  `json:"note" binding:"max=500" example:"GPay transfer"`
}

// RecordSale godoc
// @ID           recordSale
// @Summary      Record a sale
// @Description  Records a sale through the bookkeeping procedure and returns the new entry id
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request body RecordSaleRequest true "Sale to record"
// @Success      201 {object} APIResponse[ledgerapp.RecordResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /ledger/sales [post]
func (h *LedgerHandler) RecordSale(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	in := ledgerapp.RecordSaleInput{
		CustomerID: req.CustomerID,
		BatchID:    req.BatchID,
		Quantity:   toDecimal(req.Quantity),
		Rate:       toDecimal(req.Rate),
		PaidAmount: toDecimal(req.PaidAmount),
		Note:       req.Note,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			h.BadRequest(c, "Invalid due_date format. Expected YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}

	result, err := h.records.RecordSale(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RecordPayment godoc
// @ID           recordPayment
// @Summary      Record a payment
// @Description  Records a standalone payment through the bookkeeping procedure and returns the new entry id
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request body RecordPaymentRequest true "Payment to record"
// @Success      201 {object} APIResponse[ledgerapp.RecordResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /ledger/payments [post]
func (h *LedgerHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.records.RecordPayment(c.Request.Context(), ledgerapp.RecordPaymentInput{
		CustomerID:    req.CustomerID,
		Amount:        toDecimal(req.Amount),
		Mode:          req.Mode,
		RelatedSaleID: req.RelatedSaleID,
		Note:          req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
