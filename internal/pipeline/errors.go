package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// JobNotFoundError indicates the requested job posting does not exist
type JobNotFoundError struct {
	JobID uuid.UUID
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job posting not found: %s", e.JobID)
}

// MailboxListError indicates the candidate listing itself failed. Listing
// happens before any message is touched, so this aborts the whole run.
type MailboxListError struct {
	Cause error
}

func (e *MailboxListError) Error() string {
	return fmt.Sprintf("failed to list candidate messages: %v", e.Cause)
}

func (e *MailboxListError) Unwrap() error {
	return e.Cause
}
