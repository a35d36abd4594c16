package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/api/metrics"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// CheckLogHandler handles the checkpoint endpoints: manual check log entries
// and QR scans.
type CheckLogHandler struct {
	logs ports.CheckLogService
	scan ports.ScanService
}

func NewCheckLogHandler(logs ports.CheckLogService, scan ports.ScanService) *CheckLogHandler {
	return &CheckLogHandler{logs: logs, scan: scan}
}

// Record handles POST /api/check-logs. It does not verify any pass.
//
// @Summary      Record a check-in or check-out
// @Tags         check-logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordCheckLogRequest  true  "Checkpoint event"
// @Success      201   {object}  checkLogResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/check-logs [post]
func (h *CheckLogHandler) Record(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req recordCheckLogRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	entry, err := h.logs.Record(c.Request().Context(), p, ports.RecordInput{
		VisitorID: req.VisitorID,
		PassID:    req.PassID,
		Action:    domain.CheckAction(req.Action),
		Location:  req.Location,
	})
	if err != nil {
		return err
	}
	metrics.CheckLogsRecordedTotal.WithLabelValues(string(entry.Action)).Inc()
	return c.JSON(http.StatusCreated, toCheckLogResponse(entry))
}

// List handles GET /api/check-logs?visitor_id=&pass_id=&limit=.
//
// @Summary      List check log entries, newest first
// @Tags         check-logs
// @Produce      json
// @Security     BearerAuth
// @Param        visitor_id  query     string  false  "Filter by visitor"
// @Param        pass_id     query     string  false  "Filter by pass"
// @Param        limit       query     int     false  "Maximum number of entries"
// @Success      200         {array}   checkLogResponse
// @Failure      400         {object}  errorResponse
// @Router       /api/check-logs [get]
func (h *CheckLogHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	filter := ports.CheckLogFilter{
		VisitorID: c.QueryParam("visitor_id"),
		PassID:    c.QueryParam("pass_id"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.Validationf("limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	entries, err := h.logs.List(c.Request().Context(), p, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCheckLogResponses(entries))
}

// Scan handles POST /api/scan: verify the scanned payload, then record the
// event. A re-read of the same pass and action inside the dedup window
// returns 200 without writing a new entry.
//
// @Summary      Scan a pass QR code at a checkpoint
// @Tags         check-logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scanRequest   true  "Scanned payload and optional overrides"
// @Success      201   {object}  scanResponse
// @Success      200   {object}  scanResponse  "duplicate scan"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/scan [post]
func (h *CheckLogHandler) Scan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req scanRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	result, err := h.scan.Scan(c.Request().Context(), p, ports.ScanInput{
		Payload:  req.Payload,
		Action:   domain.CheckAction(req.Action),
		Location: req.Location,
	})
	if label, ok := verificationResult(err); ok {
		metrics.PassVerificationsTotal.WithLabelValues(label).Inc()
	}
	if err != nil {
		return err
	}

	if result.Duplicate {
		metrics.ScanDuplicatesTotal.Inc()
		return c.JSON(http.StatusOK, toScanResponse(result))
	}
	if result.Log != nil {
		metrics.CheckLogsRecordedTotal.WithLabelValues(string(result.Log.Action)).Inc()
	}
	return c.JSON(http.StatusCreated, toScanResponse(result))
}
