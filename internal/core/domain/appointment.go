package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentApproved  AppointmentStatus = "approved"
	AppointmentDeclined  AppointmentStatus = "declined"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// appointmentTargets are the statuses a caller may request. Scheduled is only
// ever assigned at creation.
var appointmentTargets = map[AppointmentStatus]struct{}{
	AppointmentApproved:  {},
	AppointmentDeclined:  {},
	AppointmentCompleted: {},
	AppointmentCancelled: {},
}

// Settable reports whether s may be requested through a status change.
func (s AppointmentStatus) Settable() bool {
	_, ok := appointmentTargets[s]
	return ok
}

// IsTerminal reports whether s ends the normal appointment flow. Terminal
// appointments can still be re-transitioned.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentDeclined || s == AppointmentCompleted || s == AppointmentCancelled
}

// Appointment is a request for a visitor to meet a host at a given time.
type Appointment struct {
	ID             string            `json:"id" bson:"_id"`
	VisitorID      string            `json:"visitor_id" bson:"visitor_id"`
	HostName       string            `json:"host_name" bson:"host_name"`
	HostEmail      string            `json:"host_email,omitempty" bson:"host_email,omitempty"`
	HostDepartment string            `json:"host_department,omitempty" bson:"host_department,omitempty"`
	ScheduledAt    time.Time         `json:"scheduled_at" bson:"scheduled_at"`
	Status         AppointmentStatus `json:"status" bson:"status"`
	Notes          string            `json:"notes,omitempty" bson:"notes,omitempty"`
	DeclinedReason string            `json:"declined_reason,omitempty" bson:"declined_reason,omitempty"`
	ApprovedBy     string            `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt     *time.Time        `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedBy      string            `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" bson:"updated_at"`
}

// AppointmentChange describes a requested status change. Nil pointers leave
// the corresponding field untouched.
type AppointmentChange struct {
	Status         AppointmentStatus
	Notes          *string
	DeclinedReason *string
	Actor          string
}

// Apply moves the appointment to c.Status. Any settable status is accepted
// from any current state. Approval stamps the actor and time; decline stores
// the reason, which may be empty. Stamps from earlier transitions are kept.
func (a *Appointment) Apply(c AppointmentChange, now time.Time) error {
	if !c.Status.Settable() {
		return Validationf("status must be one of: approved declined completed cancelled")
	}

	a.Status = c.Status
	switch c.Status {
	case AppointmentApproved:
		a.ApprovedBy = c.Actor
		at := now
		a.ApprovedAt = &at
	case AppointmentDeclined:
		if c.DeclinedReason != nil {
			a.DeclinedReason = *c.DeclinedReason
		}
	}
	if c.Notes != nil {
		a.Notes = *c.Notes
	}
	a.UpdatedAt = now
	return nil
}

// ParseVisitTime accepts the formats browsers and API clients send for a
// requested visit time.
func ParseVisitTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, Validationf("appointment date %q is not a valid date", s)
}
