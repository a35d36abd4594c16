package domain

import (
	"regexp"
	"time"
)

// VisitorStatus is the approval state of a visitor record.
type VisitorStatus string

const (
	VisitorPending  VisitorStatus = "pending"
	VisitorApproved VisitorStatus = "approved"
	VisitorDenied   VisitorStatus = "denied"
)

func (s VisitorStatus) Valid() bool {
	switch s {
	case VisitorPending, VisitorApproved, VisitorDenied:
		return true
	}
	return false
}

// phonePattern accepts an optional leading +, up to two bracketed or
// separated area groups and a subscriber number.
var phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)

// ValidPhone reports whether s looks like a dialable phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Visitor is a person expected at, or present in, the building.
type Visitor struct {
	ID        string        `json:"id" bson:"_id"`
	FullName  string        `json:"full_name" bson:"full_name"`
	Email     string        `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string        `json:"phone,omitempty" bson:"phone,omitempty"`
	PhotoURL  string        `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Host      string        `json:"host,omitempty" bson:"host,omitempty"`
	Purpose   string        `json:"purpose,omitempty" bson:"purpose,omitempty"`
	Status    VisitorStatus `json:"status" bson:"status"`
	CreatedBy string        `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}
