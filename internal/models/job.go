package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "Open"
	JobStatusPaused JobStatus = "Paused"
	JobStatusClosed JobStatus = "Closed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusPaused, JobStatusClosed:
		return true
	}
	return false
}

type Job struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	JobID string             `bson:"job_id" json:"id"` // uuid v4

	Title           string   `bson:"title" json:"title"`
	Company         string   `bson:"company" json:"company"`
	Location        string   `bson:"location" json:"location"`
	Description     string   `bson:"description" json:"description"`
	Skills          []string `bson:"skills" json:"skills"`
	ExperienceLevel string   `bson:"experience_level" json:"experience_level"`

	// When set, candidates are routed to an outside system; the in-app
	// application record is still created for tracking.
	ExternalApplyLink string `bson:"external_apply_link,omitempty" json:"external_apply_link,omitempty"`

	RecruiterID  string    `bson:"recruiter_id" json:"recruiter_id"`
	Status       JobStatus `bson:"status" json:"status"`
	Applications int64     `bson:"applications" json:"applications"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
