package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned response or error
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

const wellFormedResponse = `Score: 8
Summary: Strong backend background with direct industry experience. Most required skills are present.
Missing Skills:
- Kubernetes
- Terraform`

func TestScore_WellFormedResponse(t *testing.T) {
	client := &fakeLLM{response: wellFormedResponse}
	s := NewScorer(client)

	result, err := s.Score(context.Background(), "resume text", "job description")
	require.NoError(t, err)

	assert.Equal(t, 8, result.Score)
	assert.Contains(t, result.Summary, "Strong backend background")
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, result.MissingSkills)
	assert.Equal(t, 1, client.calls)
}

func TestScore_MalformedResponsesDegradeToDefault(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"score below range", "Score: 0\nSummary: weak\nMissing Skills:\n- Go"},
		{"score above range", "Score: 15\nSummary: great\nMissing Skills:\n- Go"},
		{"non-numeric score", "Score: abc\nSummary: what\nMissing Skills:\n- Go"},
		{"missing score section", "Summary: fine\nMissing Skills:\n- Go"},
		{"missing summary section", "Score: 5\nMissing Skills:\n- Go"},
		{"missing skills section", "Score: 5\nSummary: fine"},
		{"free-form prose", "The candidate seems like a reasonable fit overall."},
		{"empty response", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(&fakeLLM{response: tt.response})
			result, err := s.Score(context.Background(), "resume", "job")
			require.NoError(t, err)
			assert.Equal(t, DefaultResult(), result)
		})
	}
}

func TestScore_TransportErrorIsSurfaced(t *testing.T) {
	s := NewScorer(&fakeLLM{err: errors.New("connection reset")})

	_, err := s.Score(context.Background(), "resume", "job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get scoring response")
}

func TestParseResponse_MultiLineSummary(t *testing.T) {
	response := `Score: 6
Summary: Good experience overall.
Some skills are adjacent rather than exact matches.
Missing Skills:
- GraphQL`

	result, ok := parseResponse(response)
	require.True(t, ok)
	assert.Equal(t, 6, result.Score)
	assert.Equal(t, "Good experience overall. Some skills are adjacent rather than exact matches.", result.Summary)
}

func TestParseResponse_EmptySkillListGetsPlaceholder(t *testing.T) {
	response := "Score: 10\nSummary: Perfect match.\nMissing Skills:"

	result, ok := parseResponse(response)
	require.True(t, ok)
	assert.Equal(t, []string{"None identified"}, result.MissingSkills)
}

func TestParseResponse_ScoreBounds(t *testing.T) {
	for score := 1; score <= 10; score++ {
		response := "Score: " + itoa(score) + "\nSummary: ok\nMissing Skills:\n- x"
		result, ok := parseResponse(response)
		require.True(t, ok, "score %d should parse", score)
		assert.Equal(t, score, result.Score)
	}
}

func itoa(n int) string {
	if n == 10 {
		return "10"
	}
	return string(rune('0' + n))
}

func TestBuildScoringPrompt_ContainsRubricAndInputs(t *testing.T) {
	prompt := buildScoringPrompt("RESUME BODY", "JOB BODY")

	assert.Contains(t, prompt, "Key Skills")
	assert.Contains(t, prompt, "Years of Experience")
	assert.Contains(t, prompt, "Industry")
	assert.Contains(t, prompt, "Score: <single number from 1 to 10")
	assert.Contains(t, prompt, "RESUME BODY")
	assert.Contains(t, prompt, "JOB BODY")
}
