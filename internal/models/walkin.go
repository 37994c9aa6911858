package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriveStatus string

const (
	DriveStatusOpen   DriveStatus = "Open"
	DriveStatusClosed DriveStatus = "Closed"
)

func (s DriveStatus) Valid() bool {
	return s == DriveStatusOpen || s == DriveStatusClosed
}

type DriveMode string

const (
	DriveModeOnline  DriveMode = "Online"
	DriveModeOffline DriveMode = "Offline"
)

func (m DriveMode) Valid() bool {
	return m == DriveModeOnline || m == DriveModeOffline
}

// WalkInDrive is a scheduled, capacity-limited group hiring event.
// Attendees never exceeds Slots; the repository enforces that at commit time.
type WalkInDrive struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DriveID string             `bson:"drive_id" json:"id"` // uuid v4

	Title   string      `bson:"title" json:"title"`
	Company string      `bson:"company" json:"company"`
	Date    time.Time   `bson:"date" json:"date"`
	Slots   int64       `bson:"slots" json:"slots"`
	Roles   []string    `bson:"roles" json:"roles"`
	Mode    DriveMode   `bson:"mode" json:"mode"`
	Status  DriveStatus `bson:"status" json:"status"`

	Attendees   int64     `bson:"attendees" json:"attendees"`
	RecruiterID string    `bson:"recruiter_id" json:"recruiter_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type WalkInAttendee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AttendeeID string             `bson:"attendee_id" json:"id"` // uuid v4

	DriveID    string `bson:"drive_id" json:"drive_id"`
	DriveTitle string `bson:"drive_title" json:"drive_title"`

	RecruiterID    string `bson:"recruiter_id" json:"recruiter_id"`
	CandidateID    string `bson:"candidate_id" json:"candidate_id"`
	CandidateName  string `bson:"candidate_name" json:"candidate_name"`
	CandidateEmail string `bson:"candidate_email" json:"candidate_email"`

	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}
