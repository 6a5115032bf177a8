package db

import (
	"time"

	"github.com/google/uuid"
)

// DefaultApplicationListLimit caps how many applications a single listing returns
const DefaultApplicationListLimit = 50

// Score bounds for a validated application score
const (
	MinScore = 1
	MaxScore = 10
)

// JobPosting represents an open position that candidates email resumes for.
// At most one posting is active at a time; the pipeline only reads postings.
type JobPosting struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Application is one candidate email processed against a job posting.
// The (JobID, EmailID) pair is the natural key; the provider assigns EmailID.
type Application struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	EmailID        string    `json:"email_id"`
	ApplicantEmail string    `json:"applicant_email"`
	SubjectLine    string    `json:"subject_line"`
	ResumeText     string    `json:"resume_text"`
	Score          *int      `json:"score,omitempty"`
	Summary        *string   `json:"summary,omitempty"`
	MissingSkills  []string  `json:"missing_skills,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// HasValidScore reports whether the application carries a validated score.
// A record without one is incomplete and eligible for reprocessing; a record
// with one is terminal and must never be re-scored.
func (a *Application) HasValidScore() bool {
	return a.Score != nil && *a.Score >= MinScore && *a.Score <= MaxScore
}

// ApplicationInput holds the fields for an application upsert
type ApplicationInput struct {
	JobID          uuid.UUID
	EmailID        string
	ApplicantEmail string
	SubjectLine    string
	ResumeText     string
	Score          *int
	Summary        *string
	MissingSkills  []string
	Timestamp      time.Time
}
