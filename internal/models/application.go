package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	ApplicationApplied       ApplicationStatus = "Applied"
	ApplicationInReview      ApplicationStatus = "In Review"
	ApplicationInterviewing  ApplicationStatus = "Interviewing"
	ApplicationOfferExtended ApplicationStatus = "Offer Extended"
	ApplicationDeclined      ApplicationStatus = "Declined"
)

// applicationTransitions is the explicit transition table. Forward-only:
// Declined is terminal and nothing moves backwards.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationApplied:       {ApplicationInReview, ApplicationInterviewing, ApplicationOfferExtended, ApplicationDeclined},
	ApplicationInReview:      {ApplicationInterviewing, ApplicationOfferExtended, ApplicationDeclined},
	ApplicationInterviewing:  {ApplicationOfferExtended, ApplicationDeclined},
	ApplicationOfferExtended: {ApplicationDeclined},
	ApplicationDeclined:      {},
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application snapshots job title and company at apply time so the record
// stays meaningful after the job is edited or deleted.
type Application struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ApplicationID string             `bson:"application_id" json:"id"` // uuid v4

	JobID    string `bson:"job_id" json:"job_id"`
	JobTitle string `bson:"job_title" json:"job_title"`
	Company  string `bson:"company" json:"company"`

	RecruiterID    string `bson:"recruiter_id" json:"recruiter_id"`
	CandidateID    string `bson:"candidate_id" json:"candidate_id"`
	CandidateName  string `bson:"candidate_name" json:"candidate_name"`
	CandidateEmail string `bson:"candidate_email" json:"candidate_email"`

	Status    ApplicationStatus `bson:"status" json:"status"`
	AppliedAt time.Time         `bson:"applied_at" json:"applied_at"`
}

func (a Application) Active() bool {
	switch a.Status {
	case ApplicationApplied, ApplicationInReview, ApplicationInterviewing:
		return true
	}
	return false
}
