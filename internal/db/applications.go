package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

// GetApplicationByEmailID retrieves the application stored for a provider
// message within one job, or nil when the message has never been processed
func (db *DB) GetApplicationByEmailID(ctx context.Context, jobID uuid.UUID, emailID string) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, email_id, applicant_email, subject_line, resume_text,
		        score, summary, missing_skills, timestamp
		 FROM applications WHERE job_id = $1 AND email_id = $2`,
		jobID, emailID,
	).Scan(&a.ID, &a.JobID, &a.EmailID, &a.ApplicantEmail, &a.SubjectLine,
		&a.ResumeText, &a.Score, &a.Summary, &a.MissingSkills, &a.Timestamp)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// UpsertApplication stores an application keyed by (job_id, email_id).
// Concurrent upserts for the same key converge to one record; content is
// deterministic per message so last-write-wins is acceptable.
func (db *DB) UpsertApplication(ctx context.Context, input ApplicationInput) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, email_id, applicant_email, subject_line,
		                           resume_text, score, summary, missing_skills, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (job_id, email_id) DO UPDATE SET
		     applicant_email = $3,
		     subject_line = $4,
		     resume_text = $5,
		     score = $6,
		     summary = $7,
		     missing_skills = $8,
		     timestamp = $9
		 RETURNING id, job_id, email_id, applicant_email, subject_line, resume_text,
		           score, summary, missing_skills, timestamp`,
		input.JobID, input.EmailID, input.ApplicantEmail, input.SubjectLine,
		input.ResumeText, input.Score, input.Summary, input.MissingSkills, input.Timestamp,
	).Scan(&a.ID, &a.JobID, &a.EmailID, &a.ApplicantEmail, &a.SubjectLine,
		&a.ResumeText, &a.Score, &a.Summary, &a.MissingSkills, &a.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByJob retrieves the stored applications for a job sorted
// by processing time, newest first
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = DefaultApplicationListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, email_id, applicant_email, subject_line, resume_text,
		        score, summary, missing_skills, timestamp
		 FROM applications WHERE job_id = $1
		 ORDER BY timestamp DESC LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.EmailID, &a.ApplicantEmail, &a.SubjectLine,
			&a.ResumeText, &a.Score, &a.Summary, &a.MissingSkills, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}
