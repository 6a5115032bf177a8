// Package pipeline orchestrates email ingestion and scoring for a job
// posting: credential refresh, candidate listing, dedup, extraction,
// scoring, and durable persistence.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	gmail "google.golang.org/api/gmail/v1"

	"github.com/jonathan/resume-screener/internal/credentials"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/extraction"
	"github.com/jonathan/resume-screener/internal/mailbox"
	"github.com/jonathan/resume-screener/internal/scoring"
)

// DefaultFanout bounds how many messages are processed concurrently
const DefaultFanout = 4

// HighScoreThreshold is the score at or above which the notifier fires
const HighScoreThreshold = 7

// JobStore is the read-only job posting lookup the pipeline needs
type JobStore interface {
	GetJobPostingByID(ctx context.Context, id uuid.UUID) (*db.JobPosting, error)
}

// ApplicationStore is the durable store boundary: upsert by natural key and
// list by job sorted by timestamp descending
type ApplicationStore interface {
	GetApplicationByEmailID(ctx context.Context, jobID uuid.UUID, emailID string) (*db.Application, error)
	UpsertApplication(ctx context.Context, input db.ApplicationInput) (*db.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]db.Application, error)
}

// SessionRefresher ensures a valid credential session before mailbox use
type SessionRefresher interface {
	EnsureSession(ctx context.Context, s credentials.Session) (credentials.Session, bool, error)
}

// MailClient is the mailbox provider boundary
type MailClient interface {
	ListCandidates(ctx context.Context, title string) ([]mailbox.MessageRef, error)
	FetchContent(ctx context.Context, messageID string) (*gmail.Message, error)
	FetchMetadata(ctx context.Context, messageID string) (mailbox.Metadata, error)
	MarkProcessed(ctx context.Context, messageID string) error
}

// MailFactory builds a mail client from a freshly ensured session
type MailFactory func(ctx context.Context, session credentials.Session) (MailClient, error)

// ResumeScorer is the scoring service boundary
type ResumeScorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) (scoring.Result, error)
}

// Notifier is an optional hook fired after a high-scoring application is
// stored. It is external to the core loop: it never affects the run result.
type Notifier interface {
	HighScore(ctx context.Context, job *db.JobPosting, app *db.Application)
}

// Options tunes a pipeline instance
type Options struct {
	Fanout    int      // concurrent message limit, DefaultFanout when zero
	ListLimit int      // stored-application listing cap
	Notifier  Notifier // optional high-score hook
}

// Pipeline drives one ingestion run per invocation. Runs for the same job
// must be serialized by the caller: session refresh mutates the token pair.
type Pipeline struct {
	jobs     JobStore
	apps     ApplicationStore
	sessions SessionRefresher
	newMail  MailFactory
	scorer   ResumeScorer
	opts     Options
}

// New creates a pipeline over the given collaborators
func New(jobs JobStore, apps ApplicationStore, sessions SessionRefresher, newMail MailFactory, scorer ResumeScorer, opts Options) *Pipeline {
	if opts.Fanout <= 0 {
		opts.Fanout = DefaultFanout
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = db.DefaultApplicationListLimit
	}
	return &Pipeline{
		jobs:     jobs,
		apps:     apps,
		sessions: sessions,
		newMail:  newMail,
		scorer:   scorer,
		opts:     opts,
	}
}

// RunResult is the aggregate outcome of one ingestion run
type RunResult struct {
	Message          string              `json:"message"`
	NewCount         int                 `json:"new_count"`
	Applications     []db.Application    `json:"applications"`
	Session          credentials.Session `json:"-"`
	SessionRefreshed bool                `json:"-"`
}

// messageOutcome is the per-message result inside one batch
type messageOutcome struct {
	app   *db.Application
	isNew bool
}

// Run processes the candidate emails for a job. Precondition failures (bad
// credentials, unknown job, list failure) abort before any message is
// touched; failures scoped to a single message are isolated and never stop
// the batch.
func (p *Pipeline) Run(ctx context.Context, jobID uuid.UUID, session credentials.Session) (*RunResult, error) {
	job, err := p.jobs.GetJobPostingByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve job posting: %w", err)
	}
	if job == nil {
		return nil, &JobNotFoundError{JobID: jobID}
	}

	sess, refreshed, err := p.sessions.EnsureSession(ctx, session)
	if err != nil {
		return nil, err
	}

	mail, err := p.newMail(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	refs, err := mail.ListCandidates(ctx, job.Title)
	if err != nil {
		return nil, &MailboxListError{Cause: err}
	}

	result := &RunResult{Session: sess, SessionRefreshed: refreshed}

	if len(refs) == 0 {
		// Cheap path: nothing new, return what is already stored without
		// touching the dedup store or the scorer.
		stored, err := p.apps.ListApplicationsByJob(ctx, jobID, p.opts.ListLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list stored applications: %w", err)
		}
		result.Message = "No new emails to process"
		result.Applications = stored
		return result, nil
	}

	log.Printf("[pipeline] job %q: %d candidate message(s)", job.Title, len(refs))

	outcomes := make([]messageOutcome, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Fanout)
	for i, ref := range refs {
		g.Go(func() error {
			// Per-message failures are logged inside processMessage and
			// never propagated: one bad email must not stop the others.
			outcomes[i] = p.processMessage(gctx, job, mail, ref)
			return nil
		})
	}
	_ = g.Wait()

	for _, out := range outcomes {
		if out.app == nil {
			continue
		}
		result.Applications = append(result.Applications, *out.app)
		if out.isNew {
			result.NewCount++
		}
	}
	result.Message = fmt.Sprintf("Processed %d email(s), %d new", len(result.Applications), result.NewCount)

	log.Printf("[pipeline] job %q: %s", job.Title, result.Message)
	return result, nil
}

// processMessage runs the seen -> (deduped | extracted -> scored ->
// persisted -> marked) state machine for one candidate message. A nil
// outcome.app means the message's result was omitted from this run.
func (p *Pipeline) processMessage(ctx context.Context, job *db.JobPosting, mail MailClient, ref mailbox.MessageRef) messageOutcome {
	existing, err := p.apps.GetApplicationByEmailID(ctx, job.ID, ref.ID)
	if err != nil {
		log.Printf("[pipeline] message %s: dedup lookup failed: %v", ref.ID, err)
		return messageOutcome{}
	}
	if existing != nil && existing.HasValidScore() {
		// Terminal record: reused as-is, never re-scored, even if the job
		// description has changed since. Bounded API cost over freshness.
		return messageOutcome{app: existing}
	}

	raw, err := mail.FetchContent(ctx, ref.ID)
	if err != nil {
		log.Printf("[pipeline] message %s: content fetch failed, skipping: %v", ref.ID, err)
		return messageOutcome{}
	}
	meta, err := mail.FetchMetadata(ctx, ref.ID)
	if err != nil {
		log.Printf("[pipeline] message %s: metadata fetch failed, skipping: %v", ref.ID, err)
		return messageOutcome{}
	}

	resumeText := extraction.Extract(raw)
	if resumeText == "" {
		log.Printf("[pipeline] message %s: no resume text extracted", ref.ID)
	}

	input := db.ApplicationInput{
		JobID:          job.ID,
		EmailID:        ref.ID,
		ApplicantEmail: meta.From,
		SubjectLine:    meta.Subject,
		ResumeText:     resumeText,
		Timestamp:      time.Now(),
	}

	scored, err := p.scorer.Score(ctx, resumeText, job.Description)
	if err != nil {
		// Transport failure: persist the record without a score so the next
		// run picks it up again. Parse failures never reach here; they
		// degrade to the default score inside the scorer.
		log.Printf("[pipeline] message %s: scoring failed, storing unscored record: %v", ref.ID, err)
	} else {
		input.Score = &scored.Score
		input.Summary = &scored.Summary
		input.MissingSkills = scored.MissingSkills
	}

	app, err := p.apps.UpsertApplication(ctx, input)
	if err != nil {
		log.Printf("[pipeline] message %s: persistence failed, omitting from result: %v", ref.ID, err)
		return messageOutcome{}
	}

	// Best-effort: the record is already durable, and re-listed messages
	// are caught by the dedup check rather than read state.
	if err := mail.MarkProcessed(ctx, ref.ID); err != nil {
		log.Printf("[pipeline] message %s: mark-as-read failed: %v", ref.ID, err)
	}

	if p.opts.Notifier != nil && app.HasValidScore() && *app.Score >= HighScoreThreshold {
		p.opts.Notifier.HighScore(ctx, job, app)
	}

	return messageOutcome{app: app, isNew: true}
}
