package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/credentials"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/mailbox"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/scoring"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run one email ingestion pass for a job posting",
	Long: `Fetch unread application emails for a job posting, score each resume
against the posting, and store the results. Mailbox tokens are read from the
GOOGLE_ACCESS_TOKEN and GOOGLE_REFRESH_TOKEN environment variables.`,
	RunE: runProcess,
}

var (
	processJobID  string
	processFanout int
)

func init() {
	processCmd.Flags().StringVarP(&processJobID, "job", "j", "", "Job posting UUID (required)")
	processCmd.Flags().IntVar(&processFanout, "fanout", pipeline.DefaultFanout, "Concurrent message limit")
	_ = processCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jobID, err := uuid.Parse(processJobID)
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", processJobID, err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables are required")
	}

	session := credentials.Session{
		AccessToken:  os.Getenv("GOOGLE_ACCESS_TOKEN"),
		RefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewGeminiClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close()

	creds := credentials.NewManager(clientID, clientSecret, os.Getenv("GOOGLE_REDIRECT_URL"))

	mailFactory := func(ctx context.Context, session credentials.Session) (pipeline.MailClient, error) {
		return mailbox.NewClient(ctx, creds.HTTPClient(ctx, session), mailbox.DefaultPageSize)
	}

	p := pipeline.New(
		database,
		database,
		creds,
		mailFactory,
		scoring.NewScorer(llmClient),
		pipeline.Options{
			Fanout:   processFanout,
			Notifier: &pipeline.LogNotifier{Recipient: os.Getenv("HR_RECIPIENT")},
		},
	)

	result, err := p.Run(ctx, jobID, session)
	if err != nil {
		return fmt.Errorf("ingestion run failed: %w", err)
	}

	fmt.Println(result.Message)
	for _, app := range result.Applications {
		score := "unscored"
		if app.Score != nil {
			score = fmt.Sprintf("%d/10", *app.Score)
		}
		fmt.Printf("  %s  %s  %s\n", app.EmailID, app.ApplicantEmail, score)
	}
	return nil
}
