package domain

import (
	"math"
	"time"
)

// PassStatus represents the lifecycle state of a pass.
type PassStatus string

const (
	PassIssued  PassStatus = "issued"
	PassRevoked PassStatus = "revoked"
	PassExpired PassStatus = "expired"
)

const (
	DefaultExpiryHours = 24
	DefaultAction      = CheckIn
	DefaultLocation    = "frontdesk"
)

// passTransitions is forward-only: a revoked pass stays revoked and an
// expired pass can only be revoked.
var passTransitions = map[PassStatus][]PassStatus{
	PassIssued:  {PassIssued, PassRevoked, PassExpired},
	PassExpired: {PassRevoked},
}

func (s PassStatus) Valid() bool {
	switch s {
	case PassIssued, PassRevoked, PassExpired:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s PassStatus) CanTransitionTo(next PassStatus) bool {
	for _, allowed := range passTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Pass is a time-bounded authorization for a visitor to enter the premises.
type Pass struct {
	ID            string     `json:"id" bson:"_id"`
	VisitorID     string     `json:"visitor_id" bson:"visitor_id"`
	AppointmentID string     `json:"appointment_id,omitempty" bson:"appointment_id,omitempty"`
	Payload       string     `json:"payload" bson:"payload"`
	QRCode        string     `json:"qr_code" bson:"qr_code"`
	ArtifactURL   string     `json:"artifact_url,omitempty" bson:"artifact_url,omitempty"`
	Status        PassStatus `json:"status" bson:"status"`
	ValidFrom     time.Time  `json:"valid_from" bson:"valid_from"`
	ValidUntil    time.Time  `json:"valid_until" bson:"valid_until"`
	ExpiryHours   int        `json:"expiry_hours" bson:"expiry_hours"`
	IssuedBy      string     `json:"issued_by,omitempty" bson:"issued_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

// ValidityWindow returns the window of a pass issued at from for hours hours.
func ValidityWindow(from time.Time, hours int) (time.Time, time.Time) {
	return from, from.Add(time.Duration(hours) * time.Hour)
}

// IsExpired reports whether the validity window has closed at now.
func (p *Pass) IsExpired(now time.Time) bool {
	return p.ValidUntil.Before(now)
}

// RemainingHours returns the whole hours left in the validity window.
func (p *Pass) RemainingHours(now time.Time) int {
	left := p.ValidUntil.Sub(now).Hours()
	if left <= 0 {
		return 0
	}
	return int(math.Floor(left))
}

// EvaluateExpiry is the lazy-expiry transition. It returns the status the
// pass should hold at now and whether that differs from the stored one.
// Only issued passes flip; revoked and expired passes are left alone.
func EvaluateExpiry(p *Pass, now time.Time) (PassStatus, bool) {
	if p.Status == PassIssued && p.IsExpired(now) {
		return PassExpired, true
	}
	return p.Status, false
}

// Admit reports whether the pass grants entry at now. The stored status must
// already have been brought up to date with EvaluateExpiry.
func (p *Pass) Admit() error {
	switch p.Status {
	case PassRevoked:
		return ErrPassRevoked
	case PassExpired:
		return ErrPassExpired
	}
	return nil
}

// TransitionTo applies a requested status change. A pass whose window has
// closed may only be revoked, whatever its stored status.
func (p *Pass) TransitionTo(next PassStatus, now time.Time) error {
	if !next.Valid() {
		return Validationf("status must be one of: issued revoked expired")
	}
	if p.IsExpired(now) && next != PassRevoked {
		return ErrPassExpiredImmutable
	}
	current, _ := EvaluateExpiry(p, now)
	if !current.CanTransitionTo(next) {
		return InvalidStatef("cannot move pass from %s to %s", current, next)
	}
	p.Status = next
	p.UpdatedAt = now
	return nil
}

// PassPayload is the structure embedded in the scannable code. It only locates
// a pass; timestamps inside it are informational and never trusted.
type PassPayload struct {
	VisitorID     string      `json:"visitorId"`
	PassID        string      `json:"passId"`
	IssuedAt      int64       `json:"issuedAt"`
	ValidUntil    int64       `json:"validUntil"`
	AppointmentID string      `json:"appointmentId,omitempty"`
	Action        CheckAction `json:"action"`
	Location      string      `json:"location"`
	Signature     string      `json:"sig,omitempty"`
}

// NewPassPayload derives the payload from a fully built pass record.
func NewPassPayload(p *Pass) PassPayload {
	return PassPayload{
		VisitorID:     p.VisitorID,
		PassID:        p.ID,
		IssuedAt:      p.ValidFrom.UnixMilli(),
		ValidUntil:    p.ValidUntil.UnixMilli(),
		AppointmentID: p.AppointmentID,
		Action:        DefaultAction,
		Location:      DefaultLocation,
	}
}
