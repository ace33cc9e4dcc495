package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobFreelance  JobType = "freelance"
	JobInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobFreelance, JobInternship:
		return true
	}
	return false
}

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

func (s JobStatus) Valid() bool {
	return s == JobActive || s == JobClosed || s == JobDraft
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	return s == ApplicationPending || s == ApplicationAccepted || s == ApplicationRejected
}

const (
	DefaultJobLocation = "Remote"
	DefaultCurrency    = "USD"
)

type Budget struct {
	Min      float64 `bson:"min" json:"min"`
	Max      float64 `bson:"max" json:"max"`
	Currency string  `bson:"currency" json:"currency"`
}

// Application lives inside its JobPosting; there is at most one per applicant.
type Application struct {
	UserID    primitive.ObjectID `bson:"user" json:"-"`
	User      *UserSummary       `bson:"-" json:"user"`
	AppliedAt time.Time          `bson:"appliedAt" json:"appliedAt"`
	Status    ApplicationStatus  `bson:"status" json:"status"`
}

type JobPosting struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	RequiredSkills  []string           `bson:"requiredSkills" json:"requiredSkills"`
	Budget          Budget             `bson:"budget" json:"budget"`
	JobType         JobType            `bson:"jobType" json:"jobType"`
	ExperienceLevel ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
	Location        string             `bson:"location" json:"location"`
	Company         string             `bson:"company" json:"company"`
	Tags            []string           `bson:"tags" json:"tags"`
	Status          JobStatus          `bson:"status" json:"status"`
	Deadline        *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	PostedByID      primitive.ObjectID `bson:"postedBy" json:"-"`
	PostedBy        *UserSummary       `bson:"-" json:"postedBy"`
	Applicants      []Application      `bson:"applicants" json:"applicants"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasApplicant reports whether userID already applied.
func (j *JobPosting) HasApplicant(userID primitive.ObjectID) bool {
	for _, a := range j.Applicants {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
