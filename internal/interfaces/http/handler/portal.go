package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/teakhata/backend/internal/application/report"
)

// PortalHandler handles the partner self-service endpoints. Every route is
// scoped to the customer id carried by the caller's token; partners never
// pass ids of their own.
type PortalHandler struct {
	BaseHandler
	analytics *reportapp.AnalyticsService
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(analytics *reportapp.AnalyticsService) *PortalHandler {
	return &PortalHandler{
		analytics: analytics,
	}
}

// GetMySummary godoc
// @ID           getMySummary
// @Summary      Get my account summary
// @Description  Returns the calling partner's reconciled totals and outstanding balance
// @Tags         portal
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.CustomerOverview]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /portal/me/summary [get]
func (h *PortalHandler) GetMySummary(c *gin.Context) {
	customerID, err := callerCustomerID(c)
	if err != nil {
		h.Forbidden(c, "Token carries no customer scope")
		return
	}

	overview, err := h.analytics.CustomerSummary(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}

// GetMyStatement godoc
// @ID           getMyStatement
// @Summary      Get my ledger statement
// @Description  Returns the calling partner's khata statement with a running balance
// @Tags         portal
// @Produce      json
// @Success      200 {object} APIResponse[report.Statement]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /portal/me/statement [get]
func (h *PortalHandler) GetMyStatement(c *gin.Context) {
	customerID, err := callerCustomerID(c)
	if err != nil {
		h.Forbidden(c, "Token carries no customer scope")
		return
	}

	statement, err := h.analytics.Statement(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}
