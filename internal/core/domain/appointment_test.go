package domain

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestAppointmentApply_ApproveThenDecline(t *testing.T) {
	a := &Appointment{ID: "a1", Status: AppointmentScheduled, Notes: "original"}

	approvedAt := t0.Add(time.Minute)
	if err := a.Apply(AppointmentChange{Status: AppointmentApproved, Actor: "u1"}, approvedAt); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if a.ApprovedBy != "u1" || a.ApprovedAt == nil || !a.ApprovedAt.Equal(approvedAt) {
		t.Fatalf("approval not stamped: %+v", a)
	}
	if a.Notes != "original" {
		t.Fatalf("notes overwritten without being provided")
	}

	if err := a.Apply(AppointmentChange{Status: AppointmentDeclined, DeclinedReason: strPtr("double booked"), Actor: "u2"}, t0.Add(time.Hour)); err != nil {
		t.Fatalf("decline after approve: %v", err)
	}
	if a.Status != AppointmentDeclined || a.DeclinedReason != "double booked" {
		t.Fatalf("decline not applied: %+v", a)
	}
	if a.ApprovedBy != "u1" || !a.ApprovedAt.Equal(approvedAt) {
		t.Fatalf("earlier approval stamp lost: %+v", a)
	}
}

func TestAppointmentApply_DeclineWithoutReason(t *testing.T) {
	a := &Appointment{Status: AppointmentScheduled}
	if err := a.Apply(AppointmentChange{Status: AppointmentDeclined}, t0); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if a.DeclinedReason != "" || a.ApprovedBy != "" || a.ApprovedAt != nil {
		t.Fatalf("unexpected stamps: %+v", a)
	}
}

func TestAppointmentApply_RejectsScheduled(t *testing.T) {
	a := &Appointment{Status: AppointmentApproved}
	err := a.Apply(AppointmentChange{Status: AppointmentScheduled}, t0)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if a.Status != AppointmentApproved {
		t.Fatalf("status changed on rejected request")
	}
}

func TestAppointmentApply_UpdatesNotes(t *testing.T) {
	a := &Appointment{Status: AppointmentApproved, Notes: "old"}
	if err := a.Apply(AppointmentChange{Status: AppointmentCompleted, Notes: strPtr("left at 5pm")}, t0); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if a.Notes != "left at 5pm" || !a.Status.IsTerminal() {
		t.Fatalf("unexpected appointment: %+v", a)
	}
}

func TestParseVisitTime(t *testing.T) {
	for _, in := range []string{"2026-03-05T14:30:00Z", "2026-03-05T14:30", "2026-03-05"} {
		if _, err := ParseVisitTime(in); err != nil {
			t.Fatalf("ParseVisitTime(%q): %v", in, err)
		}
	}
	got, _ := ParseVisitTime("2026-03-05T16:30:00+02:00")
	if got.Hour() != 14 || got.Location() != time.UTC {
		t.Fatalf("expected normalised UTC time, got %v", got)
	}
	if _, err := ParseVisitTime("next tuesday"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
