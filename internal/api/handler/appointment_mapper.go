package handler

import (
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// --- Request → Service input ---

func toScheduleInput(req scheduleRequest) (ports.ScheduleInput, error) {
	at, err := domain.ParseVisitTime(req.ScheduledAt)
	if err != nil {
		return ports.ScheduleInput{}, err
	}
	return ports.ScheduleInput{
		VisitorID:      req.VisitorID,
		HostName:       req.HostName,
		HostEmail:      req.HostEmail,
		HostDepartment: req.HostDepartment,
		ScheduledAt:    at,
		Notes:          req.Notes,
	}, nil
}

// --- Service output → Response ---

func toAppointmentResponse(d *ports.AppointmentDetail) appointmentResponse {
	return appointmentResponse{
		Appointment: d.Appointment,
		Visitor:     d.Visitor,
		Creator:     d.Creator,
		Approver:    d.Approver,
	}
}

func toAppointmentResponses(ds []*ports.AppointmentDetail) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toAppointmentResponse(d))
	}
	return out
}
