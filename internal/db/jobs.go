package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

// GetJobPostingByID retrieves a job posting by its ID
func (db *DB) GetJobPostingByID(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, active, created_at, updated_at
		 FROM job_postings WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return &p, nil
}

// GetActiveJobPosting retrieves the currently active job posting, if any
func (db *DB) GetActiveJobPosting(ctx context.Context) (*JobPosting, error) {
	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, active, created_at, updated_at
		 FROM job_postings WHERE active ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active job posting: %w", err)
	}
	return &p, nil
}

// ListJobPostings retrieves all job postings, newest first
func (db *DB) ListJobPostings(ctx context.Context) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, active, created_at, updated_at
		 FROM job_postings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		var p JobPosting
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// CreateJobPosting inserts a new active posting and deactivates all others.
// Creation and deactivation happen in one transaction so at most one posting
// is active afterwards.
func (db *DB) CreateJobPosting(ctx context.Context, title, description string) (*JobPosting, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `UPDATE job_postings SET active = false, updated_at = NOW() WHERE active`); err != nil {
		return nil, fmt.Errorf("failed to deactivate job postings: %w", err)
	}

	var p JobPosting
	err = tx.QueryRow(ctx,
		`INSERT INTO job_postings (title, description, active)
		 VALUES ($1, $2, true)
		 RETURNING id, title, description, active, created_at, updated_at`,
		title, description,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit job posting: %w", err)
	}
	return &p, nil
}

// SetJobPostingActive updates a posting's active flag. When deactivateOthers
// is set, every other posting is deactivated in the same transaction.
func (db *DB) SetJobPostingActive(ctx context.Context, id uuid.UUID, active, deactivateOthers bool) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if deactivateOthers {
		if _, err := tx.Exec(ctx, `UPDATE job_postings SET active = false, updated_at = NOW() WHERE id <> $1 AND active`, id); err != nil {
			return fmt.Errorf("failed to deactivate job postings: %w", err)
		}
	}

	result, err := tx.Exec(ctx,
		`UPDATE job_postings SET active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting not found: %s", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit job posting update: %w", err)
	}
	return nil
}

// DeleteJobPosting deletes a posting and all of its applications
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) (deletedApplications int64, err error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	apps, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete applications: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("job posting not found: %s", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit job posting delete: %w", err)
	}
	return apps.RowsAffected(), nil
}
