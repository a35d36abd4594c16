package handler

import (
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

type recordCheckLogRequest struct {
	VisitorID string `json:"visitor_id" validate:"required"`
	PassID    string `json:"pass_id"`
	Action    string `json:"action"     validate:"required,oneof=checkin checkout"`
	Location  string `json:"location"`
}

type scanRequest struct {
	Payload  string `json:"payload"  validate:"required"`
	Action   string `json:"action"   validate:"omitempty,oneof=checkin checkout"`
	Location string `json:"location"`
}

type checkLogResponse struct {
	*domain.CheckLog
	Visitor *domain.Visitor `json:"visitor,omitempty"`
}

type scanResponse struct {
	verificationResponse
	Log       *checkLogResponse `json:"log,omitempty"`
	Duplicate bool              `json:"duplicate"`
}

func toCheckLogResponse(d *ports.CheckLogDetail) checkLogResponse {
	return checkLogResponse{CheckLog: d.CheckLog, Visitor: d.Visitor}
}

func toCheckLogResponses(ds []*ports.CheckLogDetail) []checkLogResponse {
	out := make([]checkLogResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toCheckLogResponse(d))
	}
	return out
}

func toScanResponse(r *ports.ScanResult) scanResponse {
	resp := scanResponse{
		verificationResponse: toVerificationResponse(r.Verification),
		Duplicate:            r.Duplicate,
	}
	if r.Log != nil {
		l := toCheckLogResponse(r.Log)
		resp.Log = &l
	}
	return resp
}
