package handler

import (
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// --- Request / Response types ---

type createVisitorRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Phone    string `json:"phone"     validate:"omitempty,phone"`
	PhotoURL string `json:"photo_url"`
	Host     string `json:"host"`
	Purpose  string `json:"purpose"`
	Status   string `json:"status"    validate:"omitempty,oneof=pending approved denied"`
}

type updateVisitorRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"     validate:"omitempty,phone"`
	PhotoURL *string `json:"photo_url"`
	Host     *string `json:"host"`
	Purpose  *string `json:"purpose"`
}

type visitorStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved denied"`
}

type preRegisterRequest struct {
	FullName        string `json:"full_name"        validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required,phone"`
	Host            string `json:"host"             validate:"required"`
	Purpose         string `json:"purpose"          validate:"required"`
	AppointmentDate string `json:"appointment_date"`
	HostEmail       string `json:"host_email"       validate:"omitempty,email"`
	HostDepartment  string `json:"host_department"`
}

type preRegisterResponse struct {
	Message     string              `json:"message"`
	Visitor     *domain.Visitor     `json:"visitor"`
	Appointment *domain.Appointment `json:"appointment,omitempty"`
}

func toCreateVisitorInput(req createVisitorRequest) ports.CreateVisitorInput {
	return ports.CreateVisitorInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Host:     req.Host,
		Purpose:  req.Purpose,
		Status:   domain.VisitorStatus(req.Status),
	}
}

func toPreRegisterInput(req preRegisterRequest) ports.PreRegisterInput {
	return ports.PreRegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Host:            req.Host,
		Purpose:         req.Purpose,
		AppointmentDate: req.AppointmentDate,
		HostEmail:       req.HostEmail,
		HostDepartment:  req.HostDepartment,
	}
}
