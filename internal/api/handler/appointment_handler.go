package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for the appointment scheduler.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Schedule handles POST /api/appointments.
//
// @Summary      Schedule an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scheduleRequest  true  "Appointment details"
// @Success      201   {object}  appointmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Schedule(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req scheduleRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	in, err := toScheduleInput(req)
	if err != nil {
		return err
	}

	detail, err := h.service.Schedule(c.Request().Context(), p, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAppointmentResponse(detail))
}

// List handles GET /api/appointments?visitor_id=&status=.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        visitor_id  query     string  false  "Filter by visitor"
// @Param        status      query     string  false  "Filter by status"
// @Success      200         {array}   appointmentResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), p, ports.AppointmentFilter{
		VisitorID: c.QueryParam("visitor_id"),
		Status:    domain.AppointmentStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponses(list))
}

// Get handles GET /api/appointments/:id.
//
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  appointmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(detail))
}

// SetStatus handles PATCH /api/appointments/:id/status.
//
// @Summary      Approve, decline, complete or cancel an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Appointment ID"
// @Param        body  body      appointmentStatusRequest  true  "New status"
// @Success      200   {object}  appointmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) SetStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req appointmentStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	detail, err := h.service.SetStatus(c.Request().Context(), p, c.Param("id"), ports.SetAppointmentStatusInput{
		Status:         domain.AppointmentStatus(req.Status),
		Notes:          req.Notes,
		DeclinedReason: req.DeclinedReason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(detail))
}
