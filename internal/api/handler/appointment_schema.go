package handler

import "github.com/frontdesk/visitor-pass/internal/core/domain"

type scheduleRequest struct {
	VisitorID      string `json:"visitor_id"      validate:"required"`
	HostName       string `json:"host_name"       validate:"required"`
	HostEmail      string `json:"host_email"      validate:"omitempty,email"`
	HostDepartment string `json:"host_department"`
	ScheduledAt    string `json:"scheduled_at"    validate:"required"`
	Notes          string `json:"notes"`
}

type appointmentStatusRequest struct {
	Status         string  `json:"status"          validate:"required,oneof=approved declined completed cancelled"`
	Notes          *string `json:"notes"`
	DeclinedReason *string `json:"declined_reason"`
}

type appointmentResponse struct {
	*domain.Appointment
	Visitor  *domain.Visitor `json:"visitor,omitempty"`
	Creator  *domain.UserRef `json:"creator,omitempty"`
	Approver *domain.UserRef `json:"approver,omitempty"`
}
