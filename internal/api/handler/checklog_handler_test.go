package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

func sampleEntry(action domain.CheckAction) *ports.CheckLogDetail {
	return &ports.CheckLogDetail{
		CheckLog: &domain.CheckLog{
			ID:        "l1",
			VisitorID: "v1",
			PassID:    "p1",
			Action:    action,
			Location:  "lobby",
			Timestamp: time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC),
		},
		Visitor: &domain.Visitor{ID: "v1", FullName: "Alice"},
	}
}

func TestCheckLogHandler_Record(t *testing.T) {
	stub := &stubCheckLogService{
		recordFn: func(ctx context.Context, p domain.Principal, in ports.RecordInput) (*ports.CheckLogDetail, error) {
			if in.VisitorID != "v1" || in.Action != domain.CheckOut || in.Location != "lobby" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleEntry(in.Action), nil
		},
	}
	handler := NewCheckLogHandler(stub, &stubScanService{})

	c, rec := newContext(http.MethodPost, "/api/check-logs", `{"visitor_id":"v1","action":"checkout","location":"lobby"}`, domain.RoleSecurity)
	if err := handler.Record(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["action"] != "checkout" || resp["visitor"] == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCheckLogHandler_Record_RequiresAction(t *testing.T) {
	handler := NewCheckLogHandler(&stubCheckLogService{}, &stubScanService{})

	c, _ := newContext(http.MethodPost, "/api/check-logs", `{"visitor_id":"v1","action":"wander"}`, domain.RoleSecurity)
	if err := handler.Record(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckLogHandler_List_Limit(t *testing.T) {
	stub := &stubCheckLogService{
		listFn: func(ctx context.Context, p domain.Principal, f ports.CheckLogFilter) ([]*ports.CheckLogDetail, error) {
			if f.Limit != 10 || f.PassID != "p1" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return []*ports.CheckLogDetail{sampleEntry(domain.CheckIn)}, nil
		},
	}
	handler := NewCheckLogHandler(stub, &stubScanService{})

	c, rec := newContext(http.MethodGet, "/api/check-logs?pass_id=p1&limit=10", "", domain.RoleEmployee)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeList(t, rec); len(got) != 1 {
		t.Fatalf("expected one entry, got %d", len(got))
	}

	for _, raw := range []string{"-1", "ten"} {
		bad, _ := newContext(http.MethodGet, "/api/check-logs?limit="+raw, "", domain.RoleEmployee)
		if err := handler.List(bad); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("limit %q: expected validation error, got %v", raw, err)
		}
	}
}

func TestCheckLogHandler_Scan(t *testing.T) {
	verification := &ports.Verification{Valid: true, Pass: samplePass(domain.PassIssued), Visitor: &domain.Visitor{ID: "v1"}, RemainingHours: 3}

	recorded := &stubScanService{
		scanFn: func(ctx context.Context, p domain.Principal, in ports.ScanInput) (*ports.ScanResult, error) {
			if in.Payload != `{"passId":"p1"}` || in.Action != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ScanResult{Verification: verification, Log: sampleEntry(domain.CheckIn)}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/scan", `{"payload":"{\"passId\":\"p1\"}"}`, domain.RoleSecurity)
	if err := NewCheckLogHandler(&stubCheckLogService{}, recorded).Scan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["valid"] != true || resp["duplicate"] != false || resp["log"] == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	duplicate := &stubScanService{
		scanFn: func(ctx context.Context, p domain.Principal, in ports.ScanInput) (*ports.ScanResult, error) {
			return &ports.ScanResult{Verification: verification, Duplicate: true}, nil
		},
	}
	c, rec = newContext(http.MethodPost, "/api/scan", `{"payload":"x","action":"checkin"}`, domain.RoleSecurity)
	if err := NewCheckLogHandler(&stubCheckLogService{}, duplicate).Scan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for duplicate, got %d", rec.Code)
	}
	resp = decode(t, rec)
	if resp["duplicate"] != true {
		t.Fatalf("expected duplicate flag, got %+v", resp)
	}
	if _, ok := resp["log"]; ok {
		t.Fatalf("duplicate scan must not carry a log entry")
	}
}

func TestCheckLogHandler_Scan_Rejected(t *testing.T) {
	stub := &stubScanService{
		scanFn: func(ctx context.Context, p domain.Principal, in ports.ScanInput) (*ports.ScanResult, error) {
			return nil, domain.ErrPassRevoked
		},
	}
	c, _ := newContext(http.MethodPost, "/api/scan", `{"payload":"x"}`, domain.RoleSecurity)
	if err := NewCheckLogHandler(&stubCheckLogService{}, stub).Scan(c); !errors.Is(err, domain.ErrPassRevoked) {
		t.Fatalf("expected pass revoked, got %v", err)
	}
}
