// Package scoring evaluates resume text against a job description with an
// LLM and parses the structured reply.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-screener/internal/llm"
)

// Result is the structured outcome of scoring one resume
type Result struct {
	Score         int
	Summary       string
	MissingSkills []string
}

// DefaultResult is returned whenever the model's reply deviates from the
// expected template. A visibly low score is preferred over a crash.
func DefaultResult() Result {
	return Result{
		Score:         1,
		Summary:       "Unable to generate summary",
		MissingSkills: []string{"Not available"},
	}
}

// Scorer issues one scoring request per resume. This is the only component
// that performs an external paid call; callers must dedup before invoking it.
type Scorer struct {
	client llm.Client
}

// NewScorer creates a scorer backed by the given LLM client
func NewScorer(client llm.Client) *Scorer {
	return &Scorer{client: client}
}

// Score evaluates a resume against a job description. The error is non-nil
// only for transport failures; a malformed reply degrades to DefaultResult
// so one bad response never aborts a batch.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDescription string) (Result, error) {
	prompt := buildScoringPrompt(resumeText, jobDescription)

	response, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get scoring response: %w", err)
	}

	result, ok := parseResponse(response)
	if !ok {
		return DefaultResult(), nil
	}
	return result, nil
}

// buildScoringPrompt constructs the fixed evaluation rubric
func buildScoringPrompt(resumeText, jobDescription string) string {
	var sb strings.Builder

	sb.WriteString("You are a recruiter assessing a resume against the provided job description. ")
	sb.WriteString("Analyze the resume objectively, highlighting matches and achievements as well as missing aspects.\n")
	sb.WriteString("Consider the following parameters, with more weight given to critical parameters like industry relevance, key skills, and years of experience:\n\n")
	sb.WriteString("1. Key Skills: Exact match with the job description (JD) should get the highest weight. Penalize for skills not listed in the JD or irrelevant skills.\n")
	sb.WriteString("2. Academic Qualifications: Compare the required qualifications with actual qualifications. Lower the score for qualifications that are not relevant to the field.\n")
	sb.WriteString("3. Achievements: Focus only on achievements directly related to the JD. Non-relevant achievements should significantly lower the score.\n")
	sb.WriteString("4. Responsibilities: Match the responsibilities listed in the JD with those in the resume.\n")
	sb.WriteString("5. Years of Experience: Exact experience in the required field and technologies is critical. Penalize if the experience is in a different field or irrelevant technology.\n")
	sb.WriteString("6. Industry: Relevance of the candidate's industry experience to the job opening is crucial. If the candidate has no relevant industry experience, the score should be low.\n\n")
	sb.WriteString("Base your analysis on current experience and capabilities, not future possibilities.\n\n")
	sb.WriteString("Respond in EXACTLY this format, with no additional text before or after:\n")
	sb.WriteString("Score: <single number from 1 to 10, where 1 is no match and 10 is a perfect match>\n")
	sb.WriteString("Summary: <two or three crisp sentences assessing the candidate>\n")
	sb.WriteString("Missing Skills:\n")
	sb.WriteString("- <missing skill>\n")
	sb.WriteString("- <missing skill>\n\n")

	sb.WriteString("Job Description:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\nResume:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n")

	return sb.String()
}
