package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type summaryResponse struct {
	Visitors     int64              `json:"visitors"`
	Appointments int64              `json:"appointments"`
	Passes       int64              `json:"passes"`
	RecentLogs   []checkLogResponse `json:"recent_logs"`
}

// Summary handles GET /api/reports/summary.
//
// @Summary      Dashboard summary
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	s, err := h.service.Summary(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{
		Visitors:     s.Visitors,
		Appointments: s.Appointments,
		Passes:       s.Passes,
		RecentLogs:   toCheckLogResponses(s.RecentLogs),
	})
}
