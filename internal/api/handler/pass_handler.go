package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/api/metrics"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// PassHandler handles HTTP requests for pass issuance and verification.
type PassHandler struct {
	service ports.PassService
}

func NewPassHandler(service ports.PassService) *PassHandler {
	return &PassHandler{service: service}
}

// Issue handles POST /api/passes.
//
// @Summary      Issue a pass
// @Description  Visitor must be approved; a referenced appointment must be approved too.
// @Tags         passes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      issuePassRequest  true  "Pass parameters"
// @Success      201   {object}  passResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/passes [post]
func (h *PassHandler) Issue(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req issuePassRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	detail, err := h.service.Issue(c.Request().Context(), p, ports.IssuePassInput{
		VisitorID:     req.VisitorID,
		AppointmentID: req.AppointmentID,
		ExpiryHours:   req.ExpiryHours,
	})
	if err != nil {
		return err
	}
	metrics.PassesIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, toPassResponse(detail))
}

// List handles GET /api/passes?visitor_id=&status=.
//
// @Summary      List passes
// @Tags         passes
// @Produce      json
// @Security     BearerAuth
// @Param        visitor_id  query     string  false  "Filter by visitor"
// @Param        status      query     string  false  "issued, revoked or expired"
// @Success      200         {array}   passResponse
// @Router       /api/passes [get]
func (h *PassHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	passes, err := h.service.List(c.Request().Context(), p, ports.PassFilter{
		VisitorID: c.QueryParam("visitor_id"),
		Status:    domain.PassStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPassResponses(passes))
}

// Get handles GET /api/passes/:id.
//
// @Summary      Get a pass
// @Tags         passes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Pass ID"
// @Success      200  {object}  passResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/passes/{id} [get]
func (h *PassHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPassResponse(detail))
}

// SetStatus handles PATCH /api/passes/:id/status.
//
// @Summary      Change a pass status
// @Description  A pass whose validity window has closed may only be revoked.
// @Tags         passes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Pass ID"
// @Param        body  body      passStatusRequest  true  "New status"
// @Success      200   {object}  domain.Pass
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/passes/{id}/status [patch]
func (h *PassHandler) SetStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req passStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	pass, err := h.service.SetStatus(c.Request().Context(), p, c.Param("id"), domain.PassStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pass)
}

// Verify handles POST /api/passes/verify.
//
// @Summary      Verify a pass at a checkpoint
// @Tags         passes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyPassRequest  true  "Pass to verify"
// @Success      200   {object}  verificationResponse
// @Failure      403   {object}  errorResponse  "pass expired or revoked"
// @Failure      404   {object}  errorResponse
// @Router       /api/passes/verify [post]
func (h *PassHandler) Verify(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req verifyPassRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	v, err := h.service.VerifyAndConsume(c.Request().Context(), p, req.PassID)
	if result, ok := verificationResult(err); ok {
		metrics.PassVerificationsTotal.WithLabelValues(result).Inc()
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVerificationResponse(v))
}

// ExpireOld handles POST /api/passes/expire-old, meant to be called by cron.
//
// @Summary      Expire every issued pass whose window has closed
// @Tags         passes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sweepResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/passes/expire-old [post]
func (h *PassHandler) ExpireOld(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	n, err := h.service.SweepExpired(c.Request().Context(), p)
	if err != nil {
		return err
	}
	metrics.PassesExpiredTotal.Add(float64(n))
	return c.JSON(http.StatusOK, sweepResponse{Message: "Expired passes updated", Count: n})
}
