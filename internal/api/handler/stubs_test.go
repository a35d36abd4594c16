package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/api/middleware"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// newContext builds an echo context for a JSON request. A non-empty role
// simulates the Auth middleware having run.
func newContext(method, target, body, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(middleware.CtxUserID, "u-"+role)
		c.Set(middleware.CtxRole, role)
		c.Set(middleware.CtxEmail, role+"@example.com")
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	profileFn  func(ctx context.Context, p domain.Principal) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.profileFn(ctx, p)
}

type stubVisitorService struct {
	createFn      func(ctx context.Context, p domain.Principal, in ports.CreateVisitorInput) (*domain.Visitor, error)
	preRegisterFn func(ctx context.Context, in ports.PreRegisterInput) (*ports.PreRegistration, error)
	listFn        func(ctx context.Context, p domain.Principal, f ports.VisitorFilter) ([]*domain.Visitor, error)
	getFn         func(ctx context.Context, p domain.Principal, id string) (*domain.Visitor, error)
	updateFn      func(ctx context.Context, p domain.Principal, id string, in ports.UpdateVisitorInput) (*domain.Visitor, error)
	setStatusFn   func(ctx context.Context, p domain.Principal, id string, s domain.VisitorStatus) (*domain.Visitor, error)
	deleteFn      func(ctx context.Context, p domain.Principal, id string) error
}

func (s *stubVisitorService) Create(ctx context.Context, p domain.Principal, in ports.CreateVisitorInput) (*domain.Visitor, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubVisitorService) PreRegister(ctx context.Context, in ports.PreRegisterInput) (*ports.PreRegistration, error) {
	return s.preRegisterFn(ctx, in)
}

func (s *stubVisitorService) List(ctx context.Context, p domain.Principal, f ports.VisitorFilter) ([]*domain.Visitor, error) {
	return s.listFn(ctx, p, f)
}

func (s *stubVisitorService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Visitor, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubVisitorService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateVisitorInput) (*domain.Visitor, error) {
	return s.updateFn(ctx, p, id, in)
}

func (s *stubVisitorService) SetStatus(ctx context.Context, p domain.Principal, id string, st domain.VisitorStatus) (*domain.Visitor, error) {
	return s.setStatusFn(ctx, p, id, st)
}

func (s *stubVisitorService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

type stubAppointmentService struct {
	scheduleFn  func(ctx context.Context, p domain.Principal, in ports.ScheduleInput) (*ports.AppointmentDetail, error)
	setStatusFn func(ctx context.Context, p domain.Principal, id string, in ports.SetAppointmentStatusInput) (*ports.AppointmentDetail, error)
	getFn       func(ctx context.Context, p domain.Principal, id string) (*ports.AppointmentDetail, error)
	listFn      func(ctx context.Context, p domain.Principal, f ports.AppointmentFilter) ([]*ports.AppointmentDetail, error)
}

func (s *stubAppointmentService) Schedule(ctx context.Context, p domain.Principal, in ports.ScheduleInput) (*ports.AppointmentDetail, error) {
	return s.scheduleFn(ctx, p, in)
}

func (s *stubAppointmentService) SetStatus(ctx context.Context, p domain.Principal, id string, in ports.SetAppointmentStatusInput) (*ports.AppointmentDetail, error) {
	return s.setStatusFn(ctx, p, id, in)
}

func (s *stubAppointmentService) Get(ctx context.Context, p domain.Principal, id string) (*ports.AppointmentDetail, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubAppointmentService) List(ctx context.Context, p domain.Principal, f ports.AppointmentFilter) ([]*ports.AppointmentDetail, error) {
	return s.listFn(ctx, p, f)
}

type stubPassService struct {
	issueFn     func(ctx context.Context, p domain.Principal, in ports.IssuePassInput) (*ports.PassDetail, error)
	verifyFn    func(ctx context.Context, p domain.Principal, id string) (*ports.Verification, error)
	setStatusFn func(ctx context.Context, p domain.Principal, id string, s domain.PassStatus) (*domain.Pass, error)
	sweepFn     func(ctx context.Context, p domain.Principal) (int64, error)
	listFn      func(ctx context.Context, p domain.Principal, f ports.PassFilter) ([]*ports.PassDetail, error)
	getFn       func(ctx context.Context, p domain.Principal, id string) (*ports.PassDetail, error)
}

func (s *stubPassService) Issue(ctx context.Context, p domain.Principal, in ports.IssuePassInput) (*ports.PassDetail, error) {
	return s.issueFn(ctx, p, in)
}

func (s *stubPassService) VerifyAndConsume(ctx context.Context, p domain.Principal, id string) (*ports.Verification, error) {
	return s.verifyFn(ctx, p, id)
}

func (s *stubPassService) SetStatus(ctx context.Context, p domain.Principal, id string, st domain.PassStatus) (*domain.Pass, error) {
	return s.setStatusFn(ctx, p, id, st)
}

func (s *stubPassService) SweepExpired(ctx context.Context, p domain.Principal) (int64, error) {
	return s.sweepFn(ctx, p)
}

func (s *stubPassService) List(ctx context.Context, p domain.Principal, f ports.PassFilter) ([]*ports.PassDetail, error) {
	return s.listFn(ctx, p, f)
}

func (s *stubPassService) Get(ctx context.Context, p domain.Principal, id string) (*ports.PassDetail, error) {
	return s.getFn(ctx, p, id)
}

type stubCheckLogService struct {
	recordFn func(ctx context.Context, p domain.Principal, in ports.RecordInput) (*ports.CheckLogDetail, error)
	listFn   func(ctx context.Context, p domain.Principal, f ports.CheckLogFilter) ([]*ports.CheckLogDetail, error)
}

func (s *stubCheckLogService) Record(ctx context.Context, p domain.Principal, in ports.RecordInput) (*ports.CheckLogDetail, error) {
	return s.recordFn(ctx, p, in)
}

func (s *stubCheckLogService) List(ctx context.Context, p domain.Principal, f ports.CheckLogFilter) ([]*ports.CheckLogDetail, error) {
	return s.listFn(ctx, p, f)
}

type stubScanService struct {
	scanFn func(ctx context.Context, p domain.Principal, in ports.ScanInput) (*ports.ScanResult, error)
}

func (s *stubScanService) Scan(ctx context.Context, p domain.Principal, in ports.ScanInput) (*ports.ScanResult, error) {
	return s.scanFn(ctx, p, in)
}

type stubUserService struct {
	listFn   func(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	createFn func(ctx context.Context, p domain.Principal, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, p domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, p domain.Principal, id string) error
}

func (s *stubUserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	return s.listFn(ctx, p)
}

func (s *stubUserService) Create(ctx context.Context, p domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubUserService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, p, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

type stubReportService struct {
	summaryFn func(ctx context.Context, p domain.Principal) (*ports.Summary, error)
}

func (s *stubReportService) Summary(ctx context.Context, p domain.Principal) (*ports.Summary, error) {
	return s.summaryFn(ctx, p)
}
