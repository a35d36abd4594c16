package handler

import (
	"errors"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

type issuePassRequest struct {
	VisitorID     string `json:"visitor_id"     validate:"required"`
	AppointmentID string `json:"appointment_id"`
	ExpiryHours   int    `json:"expiry_hours"   validate:"gte=0"`
}

type passStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=issued revoked expired"`
}

type verifyPassRequest struct {
	PassID string `json:"pass_id" validate:"required"`
}

type passResponse struct {
	*domain.Pass
	Visitor     *domain.Visitor     `json:"visitor,omitempty"`
	Appointment *domain.Appointment `json:"appointment,omitempty"`
}

type verificationResponse struct {
	Valid          bool            `json:"valid"`
	Pass           *domain.Pass    `json:"pass"`
	Visitor        *domain.Visitor `json:"visitor,omitempty"`
	ValidUntil     time.Time       `json:"valid_until"`
	RemainingHours int             `json:"remaining_hours"`
}

type sweepResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

func toPassResponse(d *ports.PassDetail) passResponse {
	return passResponse{Pass: d.Pass, Visitor: d.Visitor, Appointment: d.Appointment}
}

func toPassResponses(ds []*ports.PassDetail) []passResponse {
	out := make([]passResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toPassResponse(d))
	}
	return out
}

func toVerificationResponse(v *ports.Verification) verificationResponse {
	return verificationResponse{
		Valid:          v.Valid,
		Pass:           v.Pass,
		Visitor:        v.Visitor,
		ValidUntil:     v.Pass.ValidUntil,
		RemainingHours: v.RemainingHours,
	}
}

// verificationResult labels a verification outcome for metrics. Callers
// rejected by the authorizer never reached a pass and are not counted.
func verificationResult(err error) (string, bool) {
	switch {
	case err == nil:
		return "valid", true
	case errors.Is(err, domain.ErrPassExpired):
		return "expired", true
	case errors.Is(err, domain.ErrPassRevoked):
		return "revoked", true
	case errors.Is(err, domain.ErrNotFound):
		return "not_found", true
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthenticated):
		return "", false
	default:
		return "invalid", true
	}
}
