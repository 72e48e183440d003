package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/teakhata/backend/internal/application/report"
)

// AnalyticsHandler handles dashboard and breakdown API endpoints
type AnalyticsHandler struct {
	BaseHandler
	analytics *reportapp.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *reportapp.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
	}
}

// ===================== Request/Response DTOs =====================

// CollectionsFilter represents filter options for the collections breakdown
// @Description Filter options for the collections breakdown
type CollectionsFilter struct {
	CustomerID string `form:"customer_id" example:"42"`
	From       string `form:"from" example:"2026-08-01"`
	To         string `form:"to" example:"2026-08-31"`
}

// GetDashboard godoc
// @ID           getDashboardSummary
// @Summary      Get dashboard summary
// @Description  Returns the reconciled business overview: totals, top dues, recent collections and the next due customer
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.DashboardResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	resp, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCollections godoc
// @ID           listCollections
// @Summary      Get collections breakdown
// @Description  Returns money received grouped by customer, optionally narrowed to a date range
// @Tags         analytics
// @Produce      json
// @Param        customer_id query string false "Scope to one customer"
// @Param        from query string false "Start date (inclusive)" example(2026-08-01)
// @Param        to query string false "End date (inclusive)" example(2026-08-31)
// @Success      200 {object} APIResponse[report.CollectionBreakdown]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /collections [get]
func (h *AnalyticsHandler) GetCollections(c *gin.Context) {
	var filter CollectionsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q := reportapp.AnalyticsQuery{CustomerID: filter.CustomerID}
	if filter.From != "" {
		from, err := parseDate(filter.From)
		if err != nil {
			h.BadRequest(c, "Invalid from format. Expected YYYY-MM-DD")
			return
		}
		q.From = &from
	}
	if filter.To != "" {
		to, err := parseDate(filter.To)
		if err != nil {
			h.BadRequest(c, "Invalid to format. Expected YYYY-MM-DD")
			return
		}
		end := nextDay(to)
		q.To = &end
	}

	breakdown, err := h.analytics.Collections(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, breakdown)
}

// GetOutstanding godoc
// @ID           listOutstanding
// @Summary      Get outstanding dues
// @Description  Returns every customer who still owes money, largest due first
// @Tags         analytics
// @Produce      json
// @Success      200 {object} APIResponse[[]report.OutstandingEntry]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /outstanding [get]
func (h *AnalyticsHandler) GetOutstanding(c *gin.Context) {
	entries, err := h.analytics.Outstanding(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetInventoryPnl godoc
// @ID           getInventoryPnl
// @Summary      Get inventory profit and loss
// @Description  Returns per-sale profit when the ledger carries sale rows, per-batch figures otherwise
// @Tags         analytics
// @Produce      json
// @Success      200 {object} APIResponse[report.PnlBreakdown]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/pnl [get]
func (h *AnalyticsHandler) GetInventoryPnl(c *gin.Context) {
	pnl, err := h.analytics.Pnl(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pnl)
}
