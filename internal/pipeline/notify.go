package pipeline

import (
	"context"
	"log"

	"github.com/jonathan/resume-screener/internal/db"
)

// LogNotifier is the default high-score hook: it records the candidate so a
// human can forward the application to HR. Wiring an actual forwarding
// integration stays outside the core.
type LogNotifier struct {
	Recipient string // optional HR address, informational only
}

// HighScore logs a high-scoring application
func (n *LogNotifier) HighScore(_ context.Context, job *db.JobPosting, app *db.Application) {
	recipient := n.Recipient
	if recipient == "" {
		recipient = "HR"
	}
	log.Printf("[pipeline] high score %d for %s on job %q: notify %s",
		*app.Score, app.ApplicantEmail, job.Title, recipient)
}
