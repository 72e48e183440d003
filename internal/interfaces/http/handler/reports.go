package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/interfaces/http/dto"
)

// ReportHandler handles report export API endpoints
type ReportHandler struct {
	BaseHandler
	exports *reportapp.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(exports *reportapp.ExportService) *ReportHandler {
	return &ReportHandler{
		exports: exports,
	}
}

// ===================== Request/Response DTOs =====================

// ExportReportRequest represents a request to export a report file
// @Description Request body for exporting a report. The ledger template requires a customer_id.
type ExportReportRequest struct {
	Template   string `json:"template" binding:"required" example:"comprehensive"`
	Format     string `json:"format" binding:"required" example:"xlsx"`
	CustomerID string `json:"customer_id" example:"42"`
}

// ReportRunsFilter represents filter options for the export run history
// @Description Filter options for listing report runs
type ReportRunsFilter struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// Export godoc
// @ID           exportReport
// @Summary      Export a report
// @Description  Assembles a report document, renders it to the requested format, stores the file and returns a presigned download link
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        request body ExportReportRequest true "Report to export"
// @Success      201 {object} APIResponse[reportapp.ExportResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports [post]
func (h *ReportHandler) Export(c *gin.Context) {
	var req ExportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.exports.Export(c.Request.Context(), reportapp.ExportRequest{
		Template:    req.Template,
		Format:      req.Format,
		CustomerID:  req.CustomerID,
		RequestedBy: callerSubject(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListRuns godoc
// @ID           listReportRuns
// @Summary      List report runs
// @Description  Returns recent export runs, newest first
// @Tags         reports
// @Produce      json
// @Param        limit query int false "Maximum runs to return" default(20)
// @Success      200 {object} APIResponse[[]reportapp.RunSummary]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/runs [get]
func (h *ReportHandler) ListRuns(c *gin.Context) {
	var filter ReportRunsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	runs, err := h.exports.ListRuns(c.Request.Context(), filter.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, runs)
}

// GetRunURL godoc
// @ID           getReportRunURL
// @Summary      Get a fresh download link for a run
// @Description  Returns a new presigned download URL for a completed export run
// @Tags         reports
// @Produce      json
// @Param        id path string true "Run ID" format(uuid)
// @Success      200 {object} APIResponse[reportapp.DownloadResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/runs/{id}/url [get]
func (h *ReportHandler) GetRunURL(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid run ID format")
		return
	}

	runID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid run ID format")
		return
	}

	resp, err := h.exports.DownloadURL(c.Request.Context(), runID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
