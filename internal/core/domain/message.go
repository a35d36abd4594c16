package domain

// Channel identifies the transport a notification is delivered over.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Message is a single outbound notification.
type Message struct {
	Channel Channel
	To      string
	Subject string
	Body    string
}
