package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// VisitorHandler handles HTTP requests for the visitor registry.
type VisitorHandler struct {
	service ports.VisitorService
}

func NewVisitorHandler(service ports.VisitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// Create handles POST /api/visitors.
//
// @Summary      Register a visitor
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVisitorRequest  true  "Visitor details"
// @Success      201   {object}  domain.Visitor
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/visitors [post]
func (h *VisitorHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createVisitorRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	v, err := h.service.Create(c.Request().Context(), p, toCreateVisitorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// PreRegister handles POST /api/visitors/pre-register. No credentials required.
//
// @Summary      Visitor self pre-registration
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Param        body  body      preRegisterRequest  true  "Visitor and optional appointment date"
// @Success      201   {object}  preRegisterResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/visitors/pre-register [post]
func (h *VisitorHandler) PreRegister(c echo.Context) error {
	var req preRegisterRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	reg, err := h.service.PreRegister(c.Request().Context(), toPreRegisterInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, preRegisterResponse{
		Message:     "Pre-registration received. You will be contacted once approved.",
		Visitor:     reg.Visitor,
		Appointment: reg.Appointment,
	})
}

// List handles GET /api/visitors?search=&status=.
//
// @Summary      List visitors
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive match on name, email or phone"
// @Param        status  query     string  false  "pending, approved or denied"
// @Success      200     {array}   domain.Visitor
// @Failure      400     {object}  errorResponse
// @Router       /api/visitors [get]
func (h *VisitorHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	visitors, err := h.service.List(c.Request().Context(), p, ports.VisitorFilter{
		Search: c.QueryParam("search"),
		Status: domain.VisitorStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visitors)
}

// Get handles GET /api/visitors/:id.
//
// @Summary      Get a visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visitor ID"
// @Success      200  {object}  domain.Visitor
// @Failure      404  {object}  errorResponse
// @Router       /api/visitors/{id} [get]
func (h *VisitorHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	v, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Update handles PUT /api/visitors/:id. Omitted fields are left unchanged.
//
// @Summary      Update a visitor
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Visitor ID"
// @Param        body  body      updateVisitorRequest  true  "Fields to change"
// @Success      200   {object}  domain.Visitor
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/visitors/{id} [put]
func (h *VisitorHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req updateVisitorRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	v, err := h.service.Update(c.Request().Context(), p, c.Param("id"), ports.UpdateVisitorInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Host:     req.Host,
		Purpose:  req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SetStatus handles PATCH /api/visitors/:id/status.
//
// @Summary      Approve or deny a visitor
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Visitor ID"
// @Param        body  body      visitorStatusRequest  true  "New status"
// @Success      200   {object}  domain.Visitor
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/visitors/{id}/status [patch]
func (h *VisitorHandler) SetStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req visitorStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	v, err := h.service.SetStatus(c.Request().Context(), p, c.Param("id"), domain.VisitorStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Delete handles DELETE /api/visitors/:id.
//
// @Summary      Delete a visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visitor ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/visitors/{id} [delete]
func (h *VisitorHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Deleted"})
}
