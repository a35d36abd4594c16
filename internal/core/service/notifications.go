package service

import (
	"context"
	"fmt"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const displayTime = "Mon, 02 Jan 2006 15:04 MST"

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// notify hands every message to the sink. Messages without a recipient are
// skipped.
func notify(ctx context.Context, n ports.Notifier, msgs ...domain.Message) {
	if n == nil {
		return
	}
	for _, m := range msgs {
		if m.To == "" {
			continue
		}
		n.Notify(ctx, m)
	}
}

func scheduledMessages(v *domain.Visitor, a *domain.Appointment) []domain.Message {
	when := a.ScheduledAt.Format(displayTime)
	return []domain.Message{
		{
			Channel: domain.ChannelEmail,
			To:      v.Email,
			Subject: "Appointment Scheduled - Awaiting Approval",
			Body: fmt.Sprintf("Dear %s,\n\nYour appointment with %s is scheduled for %s and is awaiting approval from the host.\n\nThank you!",
				v.FullName, a.HostName, when),
		},
		{
			Channel: domain.ChannelEmail,
			To:      a.HostEmail,
			Subject: "New Appointment Request - Action Required",
			Body: fmt.Sprintf("Hello %s,\n\n%s has requested an appointment with you on %s.\n\nPurpose: %s\nNotes: %s\n\nPlease sign in to approve or decline it.",
				a.HostName, v.FullName, when, orDefault(v.Purpose, "Not specified"), orDefault(a.Notes, "None")),
		},
		{
			Channel: domain.ChannelSMS,
			To:      v.Phone,
			Body:    fmt.Sprintf("Appointment with %s scheduled for %s. Awaiting approval.", a.HostName, when),
		},
	}
}

// statusMessages returns the visitor notifications for a status change.
// Only approval and decline are announced.
func statusMessages(v *domain.Visitor, a *domain.Appointment) []domain.Message {
	when := a.ScheduledAt.Format(displayTime)
	switch a.Status {
	case domain.AppointmentApproved:
		return []domain.Message{
			{
				Channel: domain.ChannelEmail,
				To:      v.Email,
				Subject: "Appointment Approved",
				Body: fmt.Sprintf("Dear %s,\n\nYour appointment with %s on %s has been approved. You can now obtain your visitor pass.\n\nThank you!",
					v.FullName, a.HostName, when),
			},
			{
				Channel: domain.ChannelSMS,
				To:      v.Phone,
				Body:    fmt.Sprintf("Appointment approved! Visit %s on %s", a.HostName, when),
			},
		}
	case domain.AppointmentDeclined:
		reason := orDefault(a.DeclinedReason, "Not specified")
		return []domain.Message{
			{
				Channel: domain.ChannelEmail,
				To:      v.Email,
				Subject: "Appointment Declined",
				Body: fmt.Sprintf("Dear %s,\n\nYour appointment with %s on %s has been declined.\n\nReason: %s\n\nPlease contact %s for more information.",
					v.FullName, a.HostName, when, reason, a.HostName),
			},
			{
				Channel: domain.ChannelSMS,
				To:      v.Phone,
				Body:    fmt.Sprintf("Appointment with %s has been declined. Reason: %s", a.HostName, reason),
			},
		}
	}
	return nil
}

func passIssuedMessages(v *domain.Visitor, p *domain.Pass) []domain.Message {
	from, until := p.ValidFrom.Format(displayTime), p.ValidUntil.Format(displayTime)
	return []domain.Message{
		{
			Channel: domain.ChannelEmail,
			To:      v.Email,
			Subject: "Your Visitor Pass - Access Granted",
			Body: fmt.Sprintf("Dear %s,\n\nYour digital visitor pass has been issued.\n\nValid from: %s\nValid until: %s\n\nDownload your pass: %s\n\nPlease present it on arrival.",
				v.FullName, from, until, p.ArtifactURL),
		},
		{
			Channel: domain.ChannelSMS,
			To:      v.Phone,
			Body:    fmt.Sprintf("Your visitor pass has been issued. Valid until %s. Download: %s", until, p.ArtifactURL),
		},
	}
}

func preRegisteredMessage(v *domain.Visitor) domain.Message {
	return domain.Message{
		Channel: domain.ChannelEmail,
		To:      v.Email,
		Subject: "Pre-Registration Received",
		Body:    fmt.Sprintf("Thank you %s! Your visit request is pending approval. You will be notified once it is approved.", v.FullName),
	}
}
