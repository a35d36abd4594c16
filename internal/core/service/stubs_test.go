package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Clock and ids
// ---------------------------------------------------------------------------

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func testOpts(clock *fakeClock, prefix string) []Option {
	return []Option{WithClock(clock.Now), WithIDGenerator(seqIDs(prefix))}
}

// ---------------------------------------------------------------------------
// Authorizer
// ---------------------------------------------------------------------------

type authzFunc func(p domain.Principal, resource, action string) error

func (f authzFunc) Authorize(p domain.Principal, resource, action string) error {
	return f(p, resource, action)
}

var allowAll = authzFunc(func(domain.Principal, string, string) error { return nil })

// denyRoles rejects the listed roles for resource:action and allows the rest.
func denyRoles(key string, roles ...string) authzFunc {
	return func(p domain.Principal, resource, action string) error {
		if resource+":"+action != key {
			return nil
		}
		for _, r := range roles {
			if p.Role == r {
				return domain.Forbiddenf("role %s may not %s %s", p.Role, action, resource)
			}
		}
		return nil
	}
}

var (
	adminP    = domain.Principal{UserID: "u-admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	securityP = domain.Principal{UserID: "u-sec", Email: "security@example.com", Role: domain.RoleSecurity}
	employeeP = domain.Principal{UserID: "u-emp", Email: "john@example.com", Role: domain.RoleEmployee}
)

// ---------------------------------------------------------------------------
// Visitors
// ---------------------------------------------------------------------------

type stubVisitorRepo struct {
	items     map[string]*domain.Visitor
	createErr error
}

func newStubVisitorRepo(vs ...*domain.Visitor) *stubVisitorRepo {
	r := &stubVisitorRepo{items: make(map[string]*domain.Visitor)}
	for _, v := range vs {
		clone := *v
		r.items[v.ID] = &clone
	}
	return r
}

func (r *stubVisitorRepo) Create(_ context.Context, v *domain.Visitor) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *v
	r.items[v.ID] = &clone
	return nil
}

func (r *stubVisitorRepo) FindByID(_ context.Context, id string) (*domain.Visitor, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, domain.ErrVisitorNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVisitorRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Visitor, error) {
	out := make(map[string]*domain.Visitor)
	for _, id := range ids {
		if v, ok := r.items[id]; ok {
			clone := *v
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubVisitorRepo) List(_ context.Context, f ports.VisitorFilter) ([]*domain.Visitor, error) {
	var out []*domain.Visitor
	q := strings.ToLower(f.Search)
	for _, v := range r.items {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(v.FullName), q) &&
			!strings.Contains(strings.ToLower(v.Email), q) &&
			!strings.Contains(strings.ToLower(v.Phone), q) {
			continue
		}
		clone := *v
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubVisitorRepo) Update(_ context.Context, v *domain.Visitor) error {
	if _, ok := r.items[v.ID]; !ok {
		return domain.ErrVisitorNotFound
	}
	clone := *v
	r.items[v.ID] = &clone
	return nil
}

func (r *stubVisitorRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrVisitorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubVisitorRepo) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }

// ---------------------------------------------------------------------------
// Appointments
// ---------------------------------------------------------------------------

type stubAppointmentRepo struct {
	items map[string]*domain.Appointment
}

func newStubAppointmentRepo(as ...*domain.Appointment) *stubAppointmentRepo {
	r := &stubAppointmentRepo{items: make(map[string]*domain.Appointment)}
	for _, a := range as {
		clone := *a
		r.items[a.ID] = &clone
	}
	return r
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	clone := *a
	r.items[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Appointment, error) {
	out := make(map[string]*domain.Appointment)
	for _, id := range ids {
		if a, ok := r.items[id]; ok {
			clone := *a
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) List(_ context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.items {
		if f.VisitorID != "" && a.VisitorID != f.VisitorID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.After(out[j].ScheduledAt) })
	return out, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	if _, ok := r.items[a.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	clone := *a
	r.items[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }

// ---------------------------------------------------------------------------
// Passes
// ---------------------------------------------------------------------------

type stubPassRepo struct {
	items           map[string]*domain.Pass
	creates         int
	markExpiredRuns int
	createErr       error
	updateStatusErr error
}

func newStubPassRepo(ps ...*domain.Pass) *stubPassRepo {
	r := &stubPassRepo{items: make(map[string]*domain.Pass)}
	for _, p := range ps {
		clone := *p
		r.items[p.ID] = &clone
	}
	return r
}

func (r *stubPassRepo) Create(_ context.Context, p *domain.Pass) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.creates++
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *stubPassRepo) FindByID(_ context.Context, id string) (*domain.Pass, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPassNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPassRepo) List(_ context.Context, f ports.PassFilter) ([]*domain.Pass, error) {
	var out []*domain.Pass
	for _, p := range r.items {
		if f.VisitorID != "" && p.VisitorID != f.VisitorID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPassRepo) UpdateStatus(_ context.Context, id string, status domain.PassStatus, at time.Time) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	p, ok := r.items[id]
	if !ok {
		return domain.ErrPassNotFound
	}
	p.Status = status
	p.UpdatedAt = at
	return nil
}

// MarkExpired mirrors the conditional update of the real store.
func (r *stubPassRepo) MarkExpired(_ context.Context, ids []string, at time.Time) (int64, error) {
	r.markExpiredRuns++
	var n int64
	for _, id := range ids {
		if p, ok := r.items[id]; ok && p.Status == domain.PassIssued {
			p.Status = domain.PassExpired
			p.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (r *stubPassRepo) ExpireIssuedBefore(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range r.items {
		if p.Status == domain.PassIssued && p.ValidUntil.Before(now) {
			p.Status = domain.PassExpired
			p.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (r *stubPassRepo) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }

// ---------------------------------------------------------------------------
// Check logs
// ---------------------------------------------------------------------------

type stubCheckLogRepo struct {
	entries   []*domain.CheckLog
	appendErr error
}

func (r *stubCheckLogRepo) Append(_ context.Context, l *domain.CheckLog) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	clone := *l
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubCheckLogRepo) List(_ context.Context, f ports.CheckLogFilter) ([]*domain.CheckLog, error) {
	var out []*domain.CheckLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if f.VisitorID != "" && e.VisitorID != f.VisitorID {
			continue
		}
		if f.PassID != "" && e.PassID != f.PassID {
			continue
		}
		clone := *e
		out = append(out, &clone)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubCheckLogRepo) Count(context.Context) (int64, error) { return int64(len(r.entries)), nil }

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(us ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range us {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	sent []domain.Message
}

func (n *recordingNotifier) Notify(_ context.Context, m domain.Message) {
	n.sent = append(n.sent, m)
}

func (n *recordingNotifier) to(addr string) []domain.Message {
	var out []domain.Message
	for _, m := range n.sent {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

type stubEncoder struct {
	encodeErr error
}

func (e *stubEncoder) Encode(p domain.PassPayload) (*ports.EncodedPass, error) {
	if e.encodeErr != nil {
		return nil, e.encodeErr
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &ports.EncodedPass{Payload: string(raw), QRCode: "data:image/png;base64,UVI=", PNG: []byte("QR")}, nil
}

func (e *stubEncoder) Decode(raw string) (domain.PassPayload, error) {
	var p domain.PassPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil || p.PassID == "" {
		return domain.PassPayload{}, domain.Validationf("invalid pass payload")
	}
	return p, nil
}

type stubRenderer struct {
	renderErr error
	inputs    []ports.ArtifactInput
	discarded []string
}

func (r *stubRenderer) Render(_ context.Context, in ports.ArtifactInput) (string, error) {
	r.inputs = append(r.inputs, in)
	if r.renderErr != nil {
		return "", r.renderErr
	}
	return "http://localhost:8080/uploads/passes/pass-" + in.PassID + ".pdf", nil
}

func (r *stubRenderer) Discard(_ context.Context, passID string) error {
	r.discarded = append(r.discarded, passID)
	return nil
}

type stubGuard struct {
	seen map[string]bool
	err  error
}

func (g *stubGuard) Acquire(_ context.Context, passID, action string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.seen == nil {
		g.seen = make(map[string]bool)
	}
	key := passID + ":" + action
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

var errBoom = errors.New("boom")
