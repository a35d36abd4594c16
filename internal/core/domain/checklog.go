package domain

import "time"

// CheckAction is the direction of a checkpoint event.
type CheckAction string

const (
	CheckIn  CheckAction = "checkin"
	CheckOut CheckAction = "checkout"
)

func (a CheckAction) Valid() bool {
	return a == CheckIn || a == CheckOut
}

// CheckLog is an append-only record of a visitor passing a checkpoint.
type CheckLog struct {
	ID         string      `json:"id" bson:"_id"`
	VisitorID  string      `json:"visitor_id" bson:"visitor_id"`
	PassID     string      `json:"pass_id,omitempty" bson:"pass_id,omitempty"`
	Action     CheckAction `json:"action" bson:"action"`
	Location   string      `json:"location,omitempty" bson:"location,omitempty"`
	Timestamp  time.Time   `json:"timestamp" bson:"timestamp"`
	RecordedBy string      `json:"recorded_by,omitempty" bson:"recorded_by,omitempty"`
}
