package db

import (
	"context"
	"fmt"
)

// schemaStatements creates the tables the service reads and writes. All
// statements are idempotent so Setup can run on every deploy.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS job_postings (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		active      BOOLEAN NOT NULL DEFAULT false,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id          UUID NOT NULL REFERENCES job_postings(id),
		email_id        TEXT NOT NULL,
		applicant_email TEXT NOT NULL DEFAULT '',
		subject_line    TEXT NOT NULL DEFAULT '',
		resume_text     TEXT NOT NULL DEFAULT '',
		score           INTEGER,
		summary         TEXT,
		missing_skills  TEXT[],
		timestamp       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (job_id, email_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job_timestamp
		ON applications (job_id, timestamp DESC)`,
}

// Setup creates the database schema if it does not exist
func (db *DB) Setup(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
