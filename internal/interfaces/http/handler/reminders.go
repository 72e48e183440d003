package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	reminderapp "github.com/teakhata/backend/internal/application/reminder"
)

// ReminderHandler handles WhatsApp dues reminder API endpoints
type ReminderHandler struct {
	BaseHandler
	reminders *reminderapp.Service
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminders *reminderapp.Service) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
	}
}

// ===================== Request/Response DTOs =====================

// ReminderPreviewFilter selects the customer to draft a reminder for
// @Description Query parameters for previewing a reminder
type ReminderPreviewFilter struct {
	CustomerID string `form:"customer_id" binding:"required" example:"42"`
}

// DispatchRemindersRequest represents a request to send dues reminders
// @Description Request body for dispatching reminders. An empty body reminds every eligible customer.
type DispatchRemindersRequest struct {
	CustomerID string   `json:"customer_id" example:"42"`
	MinAmount  *float64 `json:"min_amount" binding:"omitempty,gt=0" example:"500"`
}

// ReminderLogFilter represents filter options for the reminder log
// @Description Filter options for listing reminder log entries
type ReminderLogFilter struct {
	CustomerID string `form:"customer_id" example:"42"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=200" example:"50"`
}

// Preview godoc
// @ID           previewReminder
// @Summary      Preview a dues reminder
// @Description  Returns the reminder draft for one customer without sending it
// @Tags         reminders
// @Produce      json
// @Param        customer_id query string true "Customer ID"
// @Success      200 {object} APIResponse[reminderapp.PreviewResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/preview [get]
func (h *ReminderHandler) Preview(c *gin.Context) {
	var filter ReminderPreviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preview, err := h.reminders.Preview(c.Request.Context(), filter.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preview)
}

// Dispatch godoc
// @ID           dispatchReminders
// @Summary      Dispatch dues reminders
// @Description  Sends WhatsApp reminders to customers with outstanding dues and returns the per-customer outcomes
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        request body DispatchRemindersRequest false "Dispatch options"
// @Success      200 {object} APIResponse[reminderapp.DispatchSummary]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/dispatch [post]
func (h *ReminderHandler) Dispatch(c *gin.Context) {
	// Body is optional; an absent body means "remind everyone".
	var req DispatchRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	send := reminderapp.SendRequest{CustomerID: req.CustomerID}
	if req.MinAmount != nil {
		send.MinAmount = toDecimalPtr(*req.MinAmount)
	}

	summary, err := h.reminders.SendDue(c.Request.Context(), send)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListLog godoc
// @ID           listReminderLog
// @Summary      List sent reminders
// @Description  Returns the reminder dispatch log, newest first
// @Tags         reminders
// @Produce      json
// @Param        customer_id query string false "Scope to one customer"
// @Param        limit query int false "Maximum entries to return" default(50)
// @Success      200 {object} APIResponse[[]reminderapp.LogEntry]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reminders/log [get]
func (h *ReminderHandler) ListLog(c *gin.Context) {
	var filter ReminderLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.reminders.ListLogs(c.Request.Context(), filter.CustomerID, filter.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
