package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles read-side customer API endpoints. Customers are
// owned by the khata database; this surface only lists and reconciles them.
type CustomerHandler struct {
	BaseHandler
	analytics *reportapp.AnalyticsService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(analytics *reportapp.AnalyticsService) *CustomerHandler {
	return &CustomerHandler{
		analytics: analytics,
	}
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Returns customers with their reconciled totals, owing customers first. Search matches name, shop and phone.
// @Tags         customers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search term"
// @Success      200 {object} APIResponse[[]reportapp.CustomerOverview]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	overviews, err := h.analytics.Customers(c.Request.Context(), req.Search)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// The snapshot already holds every customer, so paging is a slice here.
	total := len(overviews)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	h.SuccessWithMeta(c, overviews[start:end], int64(total), req.Page, req.PageSize)
}

// GetStatement godoc
// @ID           getCustomerStatement
// @Summary      Get a customer's ledger statement
// @Description  Replays the customer's entries oldest first with a running balance
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[report.Statement]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/statement [get]
func (h *CustomerHandler) GetStatement(c *gin.Context) {
	// Khata customer ids are opaque strings, not UUIDs.
	statement, err := h.analytics.Statement(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}
